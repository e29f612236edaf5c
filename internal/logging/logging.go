package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ANSI color codes for terminal output
const (
	colorRed    = "\033[97;41m"
	colorGreen  = "\033[97;42m"
	colorYellow = "\033[90;43m"
	colorBlue   = "\033[97;44m"
	colorReset  = "\033[0m"
)

// Log levels in increasing severity.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

type Logger struct {
	*log.Logger
	minLevel int
	writer   *lumberjack.Logger
}

func NewLogger(config *Config) (*Logger, error) {
	logFile := config.File
	if strings.HasPrefix(logFile, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		logFile = filepath.Join(homeDir, logFile[2:])
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Rotate the log file so it can't grow without bound.
	writer := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    config.MaxSize, // MB
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge, // days
		Compress:   true,
	}

	// Write to both the rotated file and stdout.
	multiWriter := io.MultiWriter(writer, os.Stdout)

	rank, ok := levelRank[strings.ToLower(config.Level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}

	return &Logger{
		Logger:   log.New(multiWriter, "", log.LstdFlags),
		minLevel: rank,
		writer:   writer,
	}, nil
}

func (l *Logger) Close() error {
	return l.writer.Close()
}

func (l *Logger) Debug(format string, v ...interface{}) {
	if l.minLevel > levelRank[LevelDebug] {
		return
	}
	l.Printf(colorBlue+"[DEBUG]"+colorReset+" "+format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	if l.minLevel > levelRank[LevelInfo] {
		return
	}
	l.Printf(colorGreen+"[INFO]"+colorReset+" "+format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	if l.minLevel > levelRank[LevelWarn] {
		return
	}
	l.Printf(colorYellow+"[WARN]"+colorReset+" "+format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.Printf(colorRed+"[ERROR]"+colorReset+" "+format, v...)
}

// LogHTTPError logs a request that failed with an error response.
func (l *Logger) LogHTTPError(method, path, clientIP string, status int, message string, err error) {
	l.Printf("[HTTP-ERROR] %d | %15s | %-7s | %s | %s: %v",
		status,
		clientIP,
		method,
		path,
		message,
		err,
	)
}
