package logger

import (
	"fmt"
	"sync"
	"testing"
)

// Entry is a single line captured by a TestLogger
type Entry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// TestLogger records entries and echoes them to t.Log when T is set
type TestLogger struct {
	T *testing.T

	mu      *sync.Mutex
	entries *[]Entry
	fields  map[string]interface{}
}

// NewTestLogger creates a recording logger bound to t (t may be nil)
func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{
		T:       t,
		mu:      &sync.Mutex{},
		entries: &[]Entry{},
		fields:  map[string]interface{}{},
	}
}

func (l *TestLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, Entry{Level: level, Message: msg, Fields: l.fields})
	if l.T != nil {
		l.T.Logf("[%s] %s %v", level, msg, l.fields)
	}
}

func (l *TestLogger) Debug(msg string) { l.record("debug", msg) }
func (l *TestLogger) Info(msg string)  { l.record("info", msg) }
func (l *TestLogger) Warn(msg string)  { l.record("warn", msg) }
func (l *TestLogger) Error(msg string) { l.record("error", msg) }
func (l *TestLogger) Fatal(msg string) { l.record("fatal", msg) }

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{T: l.T, mu: l.mu, entries: l.entries, fields: merged}
}

// Entries returns a copy of everything logged through this logger and its children
func (l *TestLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(*l.entries))
	copy(out, *l.entries)
	return out
}

// HasEntry reports whether a line with the given level was recorded
func (l *TestLogger) HasEntry(level string) bool {
	for _, e := range l.Entries() {
		if e.Level == level {
			return true
		}
	}
	return false
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s %v", e.Level, e.Message, e.Fields)
}
