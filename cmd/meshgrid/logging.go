package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	logDir      = "logs"
	logFileName = "meshgrid.log"
	logPrefix   = "meshgrid "
)

// setupLogging discards the standard logger unless debug is set, in which
// case it appends to logs/meshgrid.log. The terminal hosts own stdout and
// stderr, so log lines never go there. A previous log file is rotated to a
// timestamped name. The caller closes the returned file.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > 0 {
		rotated := filepath.Join(logDir, fmt.Sprintf("meshgrid-%s.log", time.Now().Format("20060102-150405.000")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "rotate log: %v\n", err)
		}
	}

	f, err := tea.LogToFile(logPath, logPrefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}
