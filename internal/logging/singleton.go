package logging

import (
	"os"
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// InitLogger builds the process logger from config and installs it as the
// global instance. Calling it again replaces the previous logger.
func InitLogger(config *LogConfig) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		_ = instance.Close()
	}
	instance = logger
	return nil
}

// GetGlobalLogger returns the process logger. Before InitLogger has run it
// falls back to an info-level stdout logger so packages can log from tests.
func GetGlobalLogger() *Logger {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = &Logger{Logger: NewWriterLogger(os.Stdout).Logger, minLevel: levelRank[LevelInfo]}
	}
	return instance
}
