// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors and helpers the
// chat client uses everywhere.
//
// Logger embeds zerolog.Logger, so the whole zerolog API (Debug, Info, Warn,
// Error, Fatal and so on) is available on *Logger directly. Code that needs a
// scoped logger obtains one via FromContext or GetChildLogger.
package logger

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a zerolog.Logger with application-level helper methods.
type Logger struct {
	zerolog.Logger
}

// configureGlobals applies the process-wide zerolog settings shared by all
// constructors: debug level everywhere and a "func" caller field holding the
// fully-qualified function name instead of file:line.
func configureGlobals() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
}

// NewLogger builds a JSON logger writing to stdout. The role label (for
// example "client" or "worker") is stamped on every entry together with a
// timestamp and the caller.
func NewLogger(role string) *Logger {
	configureGlobals()

	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// NewClientLogger builds the logger for the interactive client. The terminal
// belongs to the TUI, so entries go to a "chat-client.log" file next to the
// executable. When the file cannot be opened the logger falls back to stdout.
func NewClientLogger(role string) *Logger {
	configureGlobals()

	execPath, _ := os.Executable()
	logPath := filepath.Join(filepath.Dir(execPath), "chat-client.log")
	out, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		out = os.Stdout
	}

	l := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards everything. Meant for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a *Logger inheriting all fields of the receiver.
// Extra fields added to the child do not leak into the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromContext returns the logger attached to ctx via zerolog's log.Ctx. When
// ctx carries no logger, zerolog hands back its global one, so the result is
// never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
