package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/regexfav/internal/favorites"
	"github.com/five82/regexfav/internal/highlight"
	"github.com/five82/regexfav/internal/pattern"
)

func newPreviewCmd() *cobra.Command {
	var (
		maxLen  int
		asHTML  bool
		emStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	)
	cmd := &cobra.Command{
		Use:   "preview <pattern> <text>",
		Short: "Show how a /expression/flags pattern highlights text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pattern.Parse(args[0])
			if p.Empty() {
				return fmt.Errorf("pattern %q is not in /expression/flags form", args[0])
			}
			if _, err := pattern.Compile(p); err != nil {
				return err
			}
			markup := highlight.Highlight(args[1], p, maxLen)
			if asHTML {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), markup)
				return err
			}
			var b strings.Builder
			for _, seg := range highlight.Segments(markup) {
				if seg.Emphasis {
					b.WriteString(emStyle.Render(seg.Text))
				} else {
					b.WriteString(seg.Text)
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), b.String())
			return err
		},
	}
	cmd.Flags().IntVarP(&maxLen, "max", "m", favorites.DefaultPreviewLength, "preview length in cells (0 disables truncation)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "print HTML markup instead of styled text")
	return cmd
}
