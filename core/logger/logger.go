package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
)

// Init configures the package-level logger. level is one of
// debug|info|warn|error; anything else falls back to info.
func Init(level string) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var lvl zapcore.Level
	if err := lvl.Set(strings.ToLower(strings.TrimSpace(level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Last resort: write straight to stderr with a no-op logger
		os.Stderr.WriteString("logger init failed: " + err.Error() + "\n")
		l = zap.NewNop()
	}

	mu.Lock()
	sugar = l.Sugar()
	mu.Unlock()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s == nil {
		Init("info")
		mu.RLock()
		s = sugar
		mu.RUnlock()
	}
	return s
}

// normalize pairs up variadic args for zap's *w functions. A single bare
// error (the common call shape `logger.Error("Tag:Method", err)`) becomes
// an "error" key; a trailing odd value gets a "value" key.
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err}
		}
		return []any{"value", args[0]}
	}
	if len(args)%2 != 0 {
		return append(args, "(missing)")
	}
	return args
}

func Debug(msg string, args ...any) {
	get().Debugw(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Infow(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warnw(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Errorw(msg, normalize(args)...)
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = get().Sync()
}
