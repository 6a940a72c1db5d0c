package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging points the global logger at w in console format. The
// CONNECTN_LOG_LEVEL environment variable wins over level.
func SetupLogging(level string, w io.Writer) error {
	if envLevel := os.Getenv("CONNECTN_LOG_LEVEL"); envLevel != "" {
		level = envLevel
	}
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	return nil
}

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}
