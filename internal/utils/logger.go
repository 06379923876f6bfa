package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

type ScanLogger struct {
	file       *os.File
	logger     *log.Logger
	multiWrite io.Writer
}

func NewScanLogger(scanID string) (*ScanLogger, error) {
	// Create logs directory if it doesn't exist
	logsDir := filepath.Join("logs", "scans")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	// Create log file with timestamp
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logsDir, fmt.Sprintf("scan_%s_%s.log", scanID, timestamp))

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	// Create multi-writer for both file and stdout
	multiWrite := io.MultiWriter(os.Stdout, file)
	logger := log.New(multiWrite, "", log.Ldate|log.Ltime|log.Lmicroseconds)

	return &ScanLogger{
		file:       file,
		logger:     logger,
		multiWrite: multiWrite,
	}, nil
}

func (sl *ScanLogger) LogInfo(format string, v ...interface{}) {
	sl.log("INFO", format, v...)
}

func (sl *ScanLogger) LogError(format string, v ...interface{}) {
	sl.log("ERROR", format, v...)
}

func (sl *ScanLogger) log(level string, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	sl.logger.Printf("[%s] %s", level, message)
}

func (sl *ScanLogger) Close() error {
	return sl.file.Close()
}
