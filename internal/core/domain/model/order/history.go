package order

import (
	"errors"
	"time"

	"grocery/internal/pkg/errs"
)

// HistoryEntry is one record of the append-only status audit log: which
// status the order entered, when, on whose request, and an optional note
// (cancellation reason, rejection note, and the like).
//
// Entries are never mutated after creation; the aggregate only appends.
type HistoryEntry struct {
	status Status
	at     time.Time
	actor  Actor
	note   string
}

// NewHistoryEntry creates a validated history entry.
func NewHistoryEntry(status Status, at time.Time, actor Actor, note string) (HistoryEntry, error) {
	if err := errors.Join(
		status.Validate(),
		actor.Validate(),
	); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history entry timestamp")
	}

	return HistoryEntry{
		status: status,
		at:     at.UTC(),
		actor:  actor,
		note:   note,
	}, nil
}

// Status returns the status the order entered.
func (h HistoryEntry) Status() Status {
	return h.status
}

// At returns when the transition was applied, in UTC.
func (h HistoryEntry) At() time.Time {
	return h.at
}

// Actor returns who triggered the transition.
func (h HistoryEntry) Actor() Actor {
	return h.actor
}

// Note returns the optional free-form note attached to the transition.
func (h HistoryEntry) Note() string {
	return h.note
}
