package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// NewLogger returns a structured logger writing to w as configured by cfg.
func NewLogger(w io.Writer, cfg Config) (*slog.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	formatters := map[string]log.Formatter{
		"text":   log.TextFormatter,
		"logfmt": log.LogfmtFormatter,
		"json":   log.JSONFormatter,
	}
	formatter, ok := formatters[cfg.LogFormat]
	if !ok {
		return nil, fmt.Errorf("invalid log format %q, want text, logfmt or json", cfg.LogFormat)
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "jnab",
		Formatter:       formatter,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERROR").Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Bold(true).Foreground(lipgloss.Color("#EE6FF8"))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString("INFO").Foreground(lipgloss.Color("#04B575"))
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("DEBUG").Foreground(lipgloss.Color("#7E57C2"))
	handler.SetStyles(styles)

	return slog.New(handler), nil
}

// OpenLog opens the log destination of cfg: a file opened in append mode, or stderr for "-".
func OpenLog(cfg Config) (io.WriteCloser, error) {
	if cfg.LogFile == "-" || cfg.LogFile == "" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %q: %w", cfg.LogFile, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
