package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listStyles holds the styles for the list output
type listStyles struct {
	Title    lipgloss.Style
	Meta     lipgloss.Style
	Selected lipgloss.Style
	Entry    lipgloss.Style
	Empty    lipgloss.Style
}

func newListStyles(r *lipgloss.Renderer) listStyles {
	return listStyles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7B61FF")),
		Meta: r.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Selected: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73F59F")),
		Entry: r.NewStyle(),
		Empty: r.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#888888")),
	}
}

// NewListCmd creates the list command
func NewListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "Print the images the viewer would show",
		Long: `List resolves path the same way the viewer does and prints the
navigable images in order. The image the viewer would start on is marked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd.Flags(), opts)
			if err != nil {
				return err
			}

			session := prepareSession(firstArg(args), cfg)
			renderList(cmd.OutOrStdout(), session, cfg.SortStrategy())
			return nil
		},
	}
}

// renderList writes one line per entry, marking the cursor row with ">"
func renderList(w io.Writer, session *Session, strategy SortStrategy) {
	styles := newListStyles(lipgloss.NewRenderer(w))

	fmt.Fprintln(w, styles.Title.Render(session.Target.Dir))
	fmt.Fprintln(w, styles.Meta.Render(fmt.Sprintf("%d images, sorted %s", len(session.Entries), strategy.Name())))

	if len(session.Entries) == 0 {
		fmt.Fprintln(w, styles.Empty.Render("No image"))
		return
	}

	width := len(fmt.Sprint(len(session.Entries)))
	for i, entry := range session.Entries {
		line := fmt.Sprintf("%*d  %s", width, i+1, displayPath(session.Target.Dir, entry))
		if i == session.Cursor.Index() {
			fmt.Fprintln(w, styles.Selected.Render("> "+line))
		} else {
			fmt.Fprintln(w, styles.Entry.Render("  "+line))
		}
	}
}

// displayPath shortens an entry path to be relative to the browsed directory
func displayPath(dir string, entry ImagePath) string {
	rel, err := filepath.Rel(dir, entry.Path)
	if err != nil {
		return entry.Path
	}
	return rel
}
