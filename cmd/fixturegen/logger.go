package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"csb/random-fixtures/fixtures"
)

type Logger struct {
	logFile *os.File
}

const logSuffix = "log"

// outputDir holds the current output directory, set by SetOutputDir
var outputDir = "output"

// SetOutputDir sets the output directory for all log and fixture files
func SetOutputDir(dir string) {
	outputDir = dir
}

// GetOutputDir returns the current output directory
func GetOutputDir() string {
	return outputDir
}

func ensureOutputDir() error {
	return os.MkdirAll(outputDir, 0755)
}

// outputPath prefixes the output directory to create a full file path.
func outputPath(filename string) string {
	return filepath.Join(outputDir, filename)
}

func NewLogger(prefix string) (*Logger, error) {
	if err := ensureOutputDir(); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(
		outputPath(fmt.Sprintf("%s-%s.txt", prefix, logSuffix)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return nil, err
	}

	return &Logger{logFile: logFile}, nil
}

func (l *Logger) Log(msg string) {
	timestamp := time.Now().Format(time.DateTime)
	logEntry := fmt.Sprintf("[%s] - %s\n", timestamp, msg)
	l.logFile.WriteString(logEntry)
}

func (l *Logger) Logf(format string, args ...any) {
	logEntry := fmt.Sprintf(format, args...)
	l.Log(logEntry)
	fmt.Println(logEntry)
}

// LogSummary records the value statistics of a named fixture.
func (l *Logger) LogSummary(name string, s fixtures.Summary) {
	l.Logf("%s: count=%d min=%.6f max=%.6f mean=%.6f stdDev=%.6f",
		name, s.Count, s.Min, s.Max, s.Mean, s.StdDev)
}

func (l *Logger) Close() {
	l.logFile.Close()
}
