package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// SortStrategy defines the interface for different sorting strategies
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying its input
	Sort(images []ImagePath) []ImagePath
	// Name returns the human-readable name of the strategy
	Name() string
	// Key returns the identifier used in config files and flags
	Key() string
}

func cloneImagePaths(images []ImagePath) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	return result
}

// NaturalSortStrategy implements natural sorting using maruel/natural
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := cloneImagePaths(images)
	sort.SliceStable(result, func(i, j int) bool {
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) Key() string  { return "natural" }

// SimpleSortStrategy implements lexicographical sorting
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := cloneImagePaths(images)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) Key() string  { return "simple" }

// EntryOrderSortStrategy keeps filesystem enumeration order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(images []ImagePath) []ImagePath {
	return cloneImagePaths(images)
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) Key() string  { return "entry" }

// ModTimeSortStrategy orders by modification time, ties broken by natural path order
type ModTimeSortStrategy struct{}

func (s *ModTimeSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := cloneImagePaths(images)
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].ModTime.Equal(result[j].ModTime) {
			return result[i].ModTime.Before(result[j].ModTime)
		}
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result
}

func (s *ModTimeSortStrategy) Name() string { return "Modified Time" }
func (s *ModTimeSortStrategy) Key() string  { return "mtime" }

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
		&ModTimeSortStrategy{},
	}
}

// ParseSortStrategy looks a strategy up by its key, case-insensitively
func ParseSortStrategy(key string) (SortStrategy, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, strategy := range GetAllSortStrategies() {
		if strategy.Key() == key {
			return strategy, nil
		}
	}
	return nil, fmt.Errorf("unknown sort method %q", key)
}

// sortKeys lists the accepted sort keys, for help text and warnings
func sortKeys() []string {
	var keys []string
	for _, strategy := range GetAllSortStrategies() {
		keys = append(keys, strategy.Key())
	}
	return keys
}
