// internal/audit/audit.go

// Package audit persists the trail of generated fax documents. Recording is
// fire-and-forget from the engine's point of view: a failed sink is logged
// and counted, never surfaced to the fax job. The Redis reserver is the one
// exception with a real return value, since reference ID uniqueness feeds
// back into generation.
package audit

import (
	"context"
	"time"
)

// Entry is one generated-document record.
type Entry struct {
	ReferenceID string    `json:"referenceId"`
	FaxType     string    `json:"faxType"`
	Pages       int       `json:"pages"`
	Bytes       int       `json:"bytes"`
	UserID      string    `json:"userId,omitempty"`
	MessageID   string    `json:"messageId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Recorder writes one audit entry to a sink.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Fanout writes to every configured sink and returns the first error, after
// all sinks have been attempted.
type Fanout struct {
	recorders []Recorder
}

func NewFanout(recorders ...Recorder) *Fanout {
	return &Fanout{recorders: recorders}
}

func (f *Fanout) Record(ctx context.Context, entry Entry) error {
	var firstErr error
	for _, r := range f.recorders {
		if err := r.Record(ctx, entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
