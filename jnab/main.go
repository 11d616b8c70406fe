// Command jnab is an interactive shell to keep personal finance accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/jnab/cmd"
	"github.com/etnz/jnab/storage"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"golang.org/x/term"
)

func main() {
	completion := &complete.Command{
		Flags: map[string]complete.Predictor{
			"db":         predict.Files("*"),
			"log-level":  predict.Set{"debug", "info", "warn", "error"},
			"log-format": predict.Set{"text", "logfmt", "json"},
			"log-file":   predict.Files("*"),
		},
	}
	completion.Complete("jnab")

	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := cmd.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return 2
	}

	logw, err := cmd.OpenLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logw.Close()

	logger, err := cmd.NewLogger(logw, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	store, err := storage.Open(cfg.DB, true, logger)
	if err != nil {
		logger.Error("cannot open storage", "path", cfg.DB, "error", err)
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", cfg.DB, err)
		return 1
	}

	opts := []cmd.Option{cmd.WithLogger(logger.With("db", cfg.DB))}
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		width, _, err := term.GetSize(fd)
		if err != nil || width <= 0 {
			width = 80
		}
		opts = append(opts, cmd.WithMarkdown(cmd.GlamourMarkdown(width, logger)))
	}

	sh := cmd.NewShell(store, opts...)
	if err := sh.Run(context.Background(), os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
