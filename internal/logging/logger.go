package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

const LogLevelEnv = "UNTILE_LOG_LEVEL"

type Logger struct {
	*slog.Logger
}

func BuildLogger() *Logger {
	logger := Logger{Logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromEnv()}))}
	return &logger
}

func BuildLoggerFromCtx(ctx *gin.Context) *Logger {
	logger := BuildLogger()
	return &Logger{Logger: logger.With("path", ctx.Request.URL.Path)}
}

func (l *Logger) WithError(err error) *Logger {
	modifiedLogger := Logger{Logger: l.With("error", err.Error())}
	return &modifiedLogger
}

func (l *Logger) WithPage(page string) *Logger {
	return &Logger{Logger: l.With("page", page)}
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv(LogLevelEnv)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
