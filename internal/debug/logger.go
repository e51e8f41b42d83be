// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

// EnvDebugLog enables file tracing. "1"/"true" logs to the state dir, a path logs there.
const EnvDebugLog = "GHFINDER_DEBUG_LOG"

var mu sync.Mutex

// enabled reports whether debug logging is turned on
func enabled() bool {
	v := os.Getenv(EnvDebugLog)
	return v != "" && v != "0" && v != "false"
}

// LogPath returns the debug log path, configurable via environment variable
func LogPath() string {
	debugEnv := os.Getenv(EnvDebugLog)

	// If it's a path (contains / or \), use it as the log path
	if debugEnv != "" && (filepath.IsAbs(debugEnv) || filepath.Dir(debugEnv) != ".") {
		return debugEnv
	}

	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		stateDir = xdg.StateHome
	}

	logsDir := filepath.Join(stateDir, "ghfinder")
	if err := os.MkdirAll(logsDir, 0o700); err != nil {
		return filepath.Join(os.TempDir(), "ghfinder_debug.log")
	}
	return filepath.Join(logsDir, "debug.log")
}

// LogToFile writes a debug message to the debug log file.
// The TUI owns stdout, so tracing never goes there.
func LogToFile(message string) {
	if !enabled() {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if f, err := os.OpenFile(LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
		defer func() { _ = f.Close() }()
		timestamp := time.Now().Format("2006-01-02 15:04:05.000")
		_, _ = fmt.Fprintf(f, "[%s] %s", timestamp, message)
	}
}

// LogToFilef writes a formatted debug message to the debug log file
func LogToFilef(format string, args ...interface{}) {
	if !enabled() {
		return
	}
	LogToFile(fmt.Sprintf(format, args...))
}
