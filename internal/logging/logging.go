package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"totallines/internal/config"
)

var (
	base = newBase()

	// Logger is the root entry every component logger derives from.
	Logger = base.WithField("app", "totallines")
)

// newBase writes to stderr; stdout is reserved for the command result.
func newBase() *log.Logger {
	l := log.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(log.WarnLevel)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return l
}

// Setup applies level and format from cfg. Unknown values keep the default
// (warn, text) and are reported as warnings.
func Setup(cfg config.LogConfig) {
	level, err := parseLevel(cfg.Level)
	base.SetLevel(level)
	if err != nil {
		Logger.Warn(err.Error())
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		base.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	case "json":
		base.SetFormatter(&log.JSONFormatter{})
	default:
		base.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		Logger.Warnf("logging: unknown format %q, using text", cfg.Format)
	}
}

func parseLevel(raw string) (log.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRACE":
		return log.TraceLevel, nil
	case "DEBUG":
		return log.DebugLevel, nil
	case "INFO":
		return log.InfoLevel, nil
	case "", "WARN", "WARNING":
		return log.WarnLevel, nil
	case "ERROR":
		return log.ErrorLevel, nil
	case "FATAL":
		return log.FatalLevel, nil
	case "PANIC":
		return log.PanicLevel, nil
	}
	return log.WarnLevel, fmt.Errorf("logging: unknown level %q, using warn", raw)
}

// For returns a logger tagged with component.
func For(component string) *log.Entry {
	return Logger.WithField("component", component)
}

// SetOutput redirects log output; tests use it to capture lines.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}
