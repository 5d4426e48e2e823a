// Package logger provides namespaced debug logging in the style of the npm
// debug package. Loggers print to stderr only when their namespace matches the
// DEBUG environment variable, for example DEBUG=roleci:* or DEBUG=*,-roleci:git.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	pattern           = os.Getenv("DEBUG")
	output  io.Writer = os.Stderr
)

// Logger writes debug output for one namespace
type Logger struct {
	namespace string

	mu   sync.Mutex
	last time.Time
}

// New creates a logger for namespace
func New(namespace string) *Logger {
	return &Logger{namespace: namespace}
}

// SetPattern replaces the DEBUG pattern for all loggers
func SetPattern(p string) {
	mu.Lock()
	defer mu.Unlock()
	pattern = p
}

// SetOutput redirects all loggers, returning the previous writer
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// Enabled reports whether the logger's namespace is selected by the pattern
func (l *Logger) Enabled() bool {
	mu.RLock()
	p := pattern
	mu.RUnlock()
	return matches(p, l.namespace)
}

// Printf logs a formatted message
func (l *Logger) Printf(format string, args ...interface{}) {
	if !l.Enabled() {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

func (l *Logger) write(msg string) {
	l.mu.Lock()
	now := time.Now()
	var delta time.Duration
	if !l.last.IsZero() {
		delta = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	mu.RLock()
	w := output
	mu.RUnlock()
	fmt.Fprintf(w, "%s %s +%s\n", l.namespace, msg, delta.Round(time.Millisecond))
}

// matches evaluates a comma-separated DEBUG pattern. Entries prefixed with
// "-" exclude, and exclusions win over inclusions.
func matches(p, namespace string) bool {
	if p == "" {
		return false
	}

	included := false
	for _, entry := range strings.Split(p, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, "-") {
			if matchesEntry(strings.TrimPrefix(entry, "-"), namespace) {
				return false
			}
			continue
		}
		if matchesEntry(entry, namespace) {
			included = true
		}
	}
	return included
}

func matchesEntry(entry, namespace string) bool {
	if entry == "*" {
		return true
	}
	if strings.HasSuffix(entry, "*") {
		return strings.HasPrefix(namespace, strings.TrimSuffix(entry, "*"))
	}
	return entry == namespace
}
