package utils

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	loggerMu sync.RWMutex
	logger   = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// InitLogger configures the process-wide zerolog logger to write JSON lines
// to a size-rotated file.
func InitLogger(file string, maxSizeMB, maxBackups, maxAgeDays int, compress bool, level string) {
	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   compress,
	}

	loggerMu.Lock()
	logger = zerolog.New(w).With().Timestamp().Logger()
	loggerMu.Unlock()

	SetLogLevel(level)
}

// SetLogLevel changes the minimum level. Unknown levels fall back to info.
func SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	loggerMu.Lock()
	logger = logger.Level(lvl)
	loggerMu.Unlock()
}

// SetLoggerForTest swaps the logger so tests can capture output.
func SetLoggerForTest(l zerolog.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Info logs at info level with alternating key/value pairs.
func Info(msg string, kv ...interface{}) {
	loggerMu.RLock()
	ev := logger.Info()
	loggerMu.RUnlock()
	logKV(ev, msg, kv)
}

// Warn logs at warn level with alternating key/value pairs.
func Warn(msg string, kv ...interface{}) {
	loggerMu.RLock()
	ev := logger.Warn()
	loggerMu.RUnlock()
	logKV(ev, msg, kv)
}

// Error logs at error level with alternating key/value pairs.
func Error(msg string, kv ...interface{}) {
	loggerMu.RLock()
	ev := logger.Error()
	loggerMu.RUnlock()
	logKV(ev, msg, kv)
}

// logKV attaches pairs to the event. A dangling key without a value is
// ignored rather than panicking.
func logKV(ev *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
