// Package cmd implements the jnab interactive shell: a read loop dispatching
// each input line to one of the shell commands.
package cmd

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dbPath    = flag.String("db", "", "Path to the ledger storage, a .db sqlite file or a folder (default $JNAB_DB)")
	logLevel  = flag.String("log-level", "", "Log level: debug, info, warn or error (default $JNAB_LOG_LEVEL)")
	logFile   = flag.String("log-file", "", "File receiving the logs, - for stderr (default $JNAB_LOG_FILE)")
	logFormat = flag.String("log-format", "", "Log format: text, logfmt or json (default $JNAB_LOG_FORMAT)")
)

// Config holds the settings of a session.
type Config struct {
	DB        string `envconfig:"DB" default:"jnab.db"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogFile   string `envconfig:"LOG_FILE" default:"jnab.log"`
}

// LoadConfig reads the JNAB_* environment variables, after loading the
// optional .env file of the working directory.
func LoadConfig() (Config, error) {
	_ = godotenv.Load() // a missing .env is fine
	var cfg Config
	err := envconfig.Process("jnab", &cfg)
	return cfg, err
}

// Settings returns the environment configuration overridden by the global flags.
func Settings() (Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return cfg, err
	}
	override(&cfg.DB, *dbPath)
	override(&cfg.LogLevel, *logLevel)
	override(&cfg.LogFile, *logFile)
	override(&cfg.LogFormat, *logFormat)
	return cfg, nil
}

func override(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}
