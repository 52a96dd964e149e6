package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/finhub/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type levelStyle struct {
	level  log.Level
	key    string
	symbol string
	color  lipgloss.AdaptiveColor
}

var levelStyles = []levelStyle{
	{log.ErrorLevel, "error", "ERR", lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}},
	{log.WarnLevel, "warn", "WRN", lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#F4D35E"}},
	{log.InfoLevel, "info", "INF", lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	{log.DebugLevel, "debug", "DBG", lipgloss.AdaptiveColor{Light: "#5E35B1", Dark: "#9575CD"}},
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	accent := lipgloss.AdaptiveColor{Light: "#5E35B1", Dark: "#9575CD"}
	for _, ls := range levelStyles {
		styles.Levels[ls.level] = lipgloss.NewStyle().
			SetString(ls.symbol).
			Bold(true).
			Padding(0, 1).
			Foreground(ls.color)
		styles.Keys[ls.key] = lipgloss.NewStyle().Foreground(ls.color)
		styles.Values[ls.key] = lipgloss.NewStyle().Bold(true)
	}
	for _, key := range []string{"service", "component", "loan_id", "user_id"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(accent)
	}
	return styles
}

func setupLogger(cfg *config.Log) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

// newLogger builds the charmbracelet handler and installs it as the slog
// default.
func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level <= int(log.DebugLevel),
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	if formatter == log.TextFormatter {
		handler.SetStyles(logStyles())
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
