package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yanqian/weatherfit/internal/infra/config"
)

// New constructs a JSON slog logger. When cfg.Log.File is set, output goes to a
// rotating file instead of stdout.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Log.Level)
	handler := slog.NewJSONHandler(output(cfg.Log), &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", "weatherfit")
}

func output(cfg config.LogConfig) io.Writer {
	if strings.TrimSpace(cfg.File) == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
