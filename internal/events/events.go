// Package events carries diagnostics out of the sync engine. Operations
// never write to the process log directly: they emit Events into a Sink the
// caller injects, so the CLI can render them with zerolog and tests can
// record and assert on them.
package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event is a single diagnostic produced by an operation.
type Event struct {
	Level   zerolog.Level
	File    string
	Section string
	Key     string
	Message string
}

// Sink receives events.
type Sink interface {
	Emit(e Event)
}

// Scope stamps a file (and optionally a section) on every event it forwards.
type Scope struct {
	sink    Sink
	file    string
	section string
}

// For returns a Scope emitting into sink on behalf of file.
func For(sink Sink, file string) Scope {
	if sink == nil {
		sink = Discard
	}
	return Scope{sink: sink, file: file}
}

// InSection returns a copy of the scope bound to a section.
func (s Scope) InSection(section string) Scope {
	s.section = section
	return s
}

func (s Scope) emit(level zerolog.Level, key, msg string) {
	s.sink.Emit(Event{Level: level, File: s.file, Section: s.section, Key: key, Message: msg})
}

// Debug, Info, Warn and Error emit msg about key at their level.
func (s Scope) Debug(key, msg string) { s.emit(zerolog.DebugLevel, key, msg) }
func (s Scope) Info(key, msg string)  { s.emit(zerolog.InfoLevel, key, msg) }
func (s Scope) Warn(key, msg string)  { s.emit(zerolog.WarnLevel, key, msg) }
func (s Scope) Error(key, msg string) { s.emit(zerolog.ErrorLevel, key, msg) }

type discard struct{}

func (discard) Emit(Event) {}

// Discard drops every event.
var Discard Sink = discard{}

// LogSink renders events as zerolog records.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a sink writing to logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit writes e with file/section/key fields when they are set.
func (ls *LogSink) Emit(e Event) {
	ev := ls.logger.WithLevel(e.Level)
	if e.File != "" {
		ev = ev.Str("file", e.File)
	}
	if e.Section != "" {
		ev = ev.Str("section", e.Section)
	}
	if e.Key != "" {
		ev = ev.Str("key", e.Key)
	}
	ev.Msg(e.Message)
}

// Recorder keeps every event in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit appends e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// AtLevel returns the recorded events with the given level.
func (r *Recorder) AtLevel(level zerolog.Level) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasKey reports whether an event at level mentions key.
func (r *Recorder) HasKey(level zerolog.Level, key string) bool {
	for _, e := range r.AtLevel(level) {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
