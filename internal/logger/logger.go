package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

var log *slog.Logger

// Init sets up the global logger.
// env: "development" gives human readable text with debug level, anything else JSON.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

func InitWithWriter(env string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With returns a child logger, e.g. logger.With("wine_id", 12).Info("saved")
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// FileLog records a filesystem mutation made by the form handler or the arrival import.
func FileLog(operation, path string, err error) {
	fields := []any{
		"operation", operation,
		"path", path,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("file operation failed", fields...)
	} else {
		GetLogger().Info("file operation completed", fields...)
	}
}

// Gorm returns a gorm logger that writes through the global slog handler.
// Only slow queries and errors are reported.
func Gorm() gormlogger.Interface {
	return gormlogger.New(
		slog.NewLogLogger(GetLogger().Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
