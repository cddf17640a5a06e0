// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvLevel selects the log level: trace, debug, info, warn, error or fatal.
const EnvLevel = "GRAPHDIFF_LOG"

const tracePrefix = "TRACE: "

var traceEnabled bool

// InitLogger installs the single-letter handler on stderr and sets the level
// from GRAPHDIFF_LOG. Unknown or empty levels mean error.
func InitLogger() {
	InitLoggerTo(os.Stderr, os.Getenv(EnvLevel))
}

// InitLoggerTo is InitLogger with an explicit destination and level.
func InitLoggerTo(w io.Writer, level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	traceEnabled = level == "trace"

	apexLevel := log.ErrorLevel
	switch level {
	case "trace", "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn":
		apexLevel = log.WarnLevel
	case "fatal":
		apexLevel = log.FatalLevel
	}

	log.SetHandler(&CustomHandler{Writer: w})
	log.SetLevel(apexLevel)
}

// CustomHandler writes one line per entry: timestamp, level letter, message
// and any fields as key=value pairs.
type CustomHandler struct {
	Writer io.Writer
	mu     sync.Mutex
}

// HandleLog implements log.Handler.
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	message := e.Message
	level := levelLetter(e.Level)
	if rest, ok := strings.CutPrefix(message, tracePrefix); ok {
		level = "T"
		message = rest
	}

	var sb strings.Builder
	sb.WriteString(message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&sb, " %s=%v", name, e.Fields.Get(name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.Writer, "%s %s %s\n", e.Timestamp.Format(time.DateTime), level, sb.String())
	return err
}

func levelLetter(l log.Level) string {
	switch l {
	case log.DebugLevel:
		return "D"
	case log.InfoLevel:
		return "I"
	case log.WarnLevel:
		return "W"
	case log.ErrorLevel:
		return "E"
	case log.FatalLevel:
		return "F"
	}
	return "?"
}

// Tracef logs below debug. It is only emitted when GRAPHDIFF_LOG is trace.
func Tracef(format string, args ...any) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}

// WithError returns an entry carrying err as a field.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
