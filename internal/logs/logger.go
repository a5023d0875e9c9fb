package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const logFileName = "debug.log"

var (
	Logger    *log.Logger
	SessionID string
	logFile   *os.File
	mu        sync.Mutex
)

// Until Initialize is called nothing is written.
func init() {
	SessionID = uuid.New().String()
	Logger = newLogger(io.Discard)
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[quill "+SessionID[:8]+"] ", log.LstdFlags|log.Lshortfile)
}

// Initialize points the logger at <logDir>/debug.log, creating logDir if needed.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, logFileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Printf("Failed to open log file at %s: %v", logPath, err)
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = newLogger(f)

	Logger.Printf("Logger initialized at %s (session %s)", logPath, SessionID)

	return nil
}

// Close closes the log file and silences the logger.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	Logger = newLogger(io.Discard)
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
