package main

import (
	"fmt"
	"strings"
)

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Description string
}

// actionDefinitions contains all action definitions with default keybindings and descriptions
var actionDefinitions = []ActionDefinition{
	{"previous", []string{"PageUp"}, "Previous image"},
	{"next", []string{"PageDown"}, "Next image"},
}

// ActionExecutor maps action names onto InputActions calls
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
// Returns false for unknown actions.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	switch action {
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

// isKnownAction reports whether name is defined in actionDefinitions
func isKnownAction(name string) bool {
	for _, action := range actionDefinitions {
		if action.Name == name {
			return true
		}
	}
	return false
}

// actionNames returns action names in definition order
func actionNames() []string {
	names := make([]string, 0, len(actionDefinitions))
	for _, action := range actionDefinitions {
		names = append(names, action.Name)
	}
	return names
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// describeKeybindings renders one "keys  description" line per action
func describeKeybindings(keybindings map[string][]string) string {
	descriptions := GetActionDescriptions()
	var b strings.Builder
	for _, action := range actionNames() {
		keys := strings.Join(keybindings[action], ", ")
		if keys == "" {
			keys = "(unbound)"
		}
		fmt.Fprintf(&b, "  %-10s %s\n", keys, descriptions[action])
	}
	return b.String()
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keys := make([]string, len(action.Keys))
		copy(keys, action.Keys)
		keybindings[action.Name] = keys
	}
	return keybindings
}
