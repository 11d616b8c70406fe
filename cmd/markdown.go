package cmd

import (
	"log/slog"

	"github.com/charmbracelet/glamour"
)

// GlamourMarkdown returns a markdown renderer styled for a terminal of the
// given width. Documents are printed raw if styling fails.
func GlamourMarkdown(width int, logger *slog.Logger) func(string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		logger.Warn("markdown styling disabled", "error", err)
		return func(doc string) string { return doc }
	}
	return func(doc string) string {
		out, err := r.Render(doc)
		if err != nil {
			logger.Warn("cannot render markdown", "error", err)
			return doc
		}
		return out
	}
}
