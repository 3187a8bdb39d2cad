package logger

import (
	"io"
	"log/slog"
	"os"
)

const service = "material-report-bot"

// New в dev пишем текстом с debug, в остальных окружениях JSON с info.
func New(env string) *slog.Logger {
	return newWith(os.Stdout, env)
}

func newWith(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo
	var h slog.Handler
	if env == "dev" {
		level = slog.LevelDebug
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h).With("service", service, "env", env)
}

// Component дочерний логгер подсистемы (bot, api, loader...).
func Component(log *slog.Logger, name string) *slog.Logger {
	return log.With("component", name)
}
