// Package history keeps the append-only log of evaluations of one session and
// exports it.
//
// The log is an explicit object handed to whoever records results; the
// calculation packages never see it.
package history

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ja7ad/cutcond/pkg/condition"
)

// Entry is one recorded evaluation.
type Entry struct {
	ID     uuid.UUID        `json:"id"`
	At     time.Time        `json:"time"`
	Tool   string           `json:"tool"`
	Label  string           `json:"operation_label"`
	Params condition.Params `json:"params"`
	Result condition.Result `json:"result"`
}

// same compares the recorded content, ignoring id and timestamp.
func (e Entry) same(o Entry) bool {
	return e.Tool == o.Tool && e.Label == o.Label && e.Params == o.Params && e.Result == o.Result
}

// Log is an append-only, concurrency-safe list of entries.
type Log struct {
	mu      sync.Mutex
	entries []Entry

	now   func() time.Time
	newID func() uuid.UUID
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{now: time.Now, newID: uuid.New}
}

// Append records an evaluation. An entry identical to the last recorded one is
// skipped and ok is false.
func (l *Log) Append(tool, label string, p condition.Params, r condition.Result) (e Entry, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e = Entry{Tool: tool, Label: label, Params: p, Result: r}
	if n := len(l.entries); n > 0 && l.entries[n-1].same(e) {
		return l.entries[n-1], false
	}
	e.ID = l.newID()
	e.At = l.now()
	l.entries = append(l.entries, e)
	return e, true
}

// Entries returns a copy of the recorded entries in order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
