// Package logsink intercepts the host framework's message stream into a
// bounded, newest-first ring buffer, chained to any prior handler so host
// logging is never swallowed.
package logsink

import (
	"regexp"
	"sync"
)

// Capacity is the ring's fixed size.
const Capacity = 1000

// Entry is one captured message.
type Entry struct {
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Function    string `json:"function,omitempty"`
	TimestampMs int64  `json:"timestamp_ms"`
}

// PriorHandler is whatever the host installed before the probe; always
// invoked so host logging keeps working.
type PriorHandler func(Entry)

// Sink is the bounded ring buffer. Fields are protected by mu; this is
// position 3 in the lock hierarchy (Registry < Monitor < LogSink) —
// callers must never hold Sink.mu while acquiring a registry or monitor
// lock.
type Sink struct {
	mu    sync.Mutex
	ring  []Entry // newest-first; len capped at Capacity
	prior PriorHandler
}

// New creates an empty sink, optionally chaining to a prior handler.
func New(prior PriorHandler) *Sink {
	return &Sink{ring: make([]Entry, 0, Capacity), prior: prior}
}

// Record appends a new entry at the front, evicting the oldest if the ring
// is full, then chains to the prior handler outside the lock.
func (s *Sink) Record(e Entry) {
	s.mu.Lock()
	s.ring = append([]Entry{e}, s.ring...)
	if len(s.ring) > Capacity {
		s.ring = s.ring[:Capacity]
	}
	s.mu.Unlock()

	if s.prior != nil {
		s.prior(e)
	}
}

// Query filters entries at read time. pattern, if non-empty,
// is a regex matched against Message; errorsOnly restricts to "error"/
// "fatal"/"critical" severities; limit caps the result count (0 = no cap).
// clear empties the ring after reading.
func (s *Sink) Query(pattern string, errorsOnly bool, limit int, clear bool) ([]Entry, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.ring))
	for _, e := range s.ring {
		if errorsOnly && !isErrorSeverity(e.Severity) {
			continue
		}
		if re != nil && !re.MatchString(e.Message) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	if clear {
		s.ring = s.ring[:0]
	}
	return out, nil
}

func isErrorSeverity(sev string) bool {
	switch sev {
	case "error", "fatal", "critical":
		return true
	default:
		return false
	}
}

// Len returns the current number of buffered entries.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ring)
}
