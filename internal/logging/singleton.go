package logging

import (
	"sync"
)

var (
	instance  *Logger
	once      sync.Once
	mu        sync.Mutex
	logConfig *Config
)

// Configure sets the logging configuration.
// This should be called before any logger usage.
func Configure(config *Config) {
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
}

// GetLogger returns the singleton logger instance, initializing it on first
// use from the configuration set via Configure. Without prior configuration
// it falls back to an info-level logger writing to ./logs/api.log, so tests
// and early startup code can log without ceremony.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		if logConfig == nil {
			logConfig = &Config{
				Level:      LevelInfo,
				File:       "./logs/api.log",
				MaxSize:    100,
				MaxBackups: 3,
				MaxAge:     7,
			}
		}

		var err error
		instance, err = NewLogger(logConfig)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})

	return instance
}
