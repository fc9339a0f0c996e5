package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RowRef identifies a content row from the admin surface. A row that already
// round-tripped through the remote store is addressed by its server-assigned
// UUID (Persisted); a row the admin panel created optimistically and has not
// refetched yet is addressed by its title key (Pending). Keeping the two
// shapes distinct means no code path ever has to guess whether a string
// "looks like" a UUID.
type RowRef struct {
	id    uuid.UUID
	title string
}

func PersistedRef(id uuid.UUID) RowRef {
	return RowRef{id: id}
}

func PendingRef(title string) RowRef {
	return RowRef{title: title}
}

// ParseRowRef classifies a raw path parameter: a valid UUID becomes a
// Persisted ref, anything else a Pending ref resolved later by title+owner.
func ParseRowRef(raw string) (RowRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RowRef{}, fmt.Errorf("row reference is required")
	}
	if id, err := uuid.Parse(raw); err == nil {
		return PersistedRef(id), nil
	}
	return PendingRef(raw), nil
}

func (r RowRef) Persisted() bool {
	return r.id != uuid.Nil
}

func (r RowRef) ID() uuid.UUID {
	return r.id
}

func (r RowRef) Title() string {
	return r.title
}

func (r RowRef) String() string {
	if r.Persisted() {
		return r.id.String()
	}
	return "pending:" + r.title
}
