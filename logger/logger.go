package logger

import (
	"go.uber.org/zap"
)

// Log is the shared application logger. Services and repositories use it for
// structured error logging; boot-time messages in main/database keep stdlib log.
var Log *zap.Logger = zap.NewNop()

// Init replaces the no-op logger with a real one. Call once at startup.
func Init(ginMode string) {
	var err error
	if ginMode == "release" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		Log = zap.NewNop()
	}
}

// Sync flushes buffered log entries. Safe to defer from main.
func Sync() {
	_ = Log.Sync()
}
