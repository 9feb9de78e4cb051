/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable logger that can be silenced for LSP/MCP integrations.
package logger

import (
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

var (
	// Default logs to stderr. Set to io.Discard for silent mode (LSP, MCP).
	mu     sync.RWMutex
	logger = log.New(os.Stderr, "", 0)
	debug  atomic.Bool
)

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

// SetDebug enables or disables Debug output.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	printf("warning: "+format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	printf(format, args...)
}

// Debug logs a debug message when debug output is enabled.
func Debug(format string, args ...any) {
	if !debug.Load() {
		return
	}
	printf("debug: "+format, args...)
}

func printf(format string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Printf(format, args...)
}
