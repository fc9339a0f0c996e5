package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseRowRef(t *testing.T) {
	id := uuid.New()

	ref, err := ParseRowRef(id.String())
	if err != nil {
		t.Fatalf("ParseRowRef(%q) failed: %v", id, err)
	}
	if !ref.Persisted() {
		t.Error("a UUID parameter must produce a persisted ref")
	}
	if ref.ID() != id {
		t.Errorf("got ID %s, want %s", ref.ID(), id)
	}

	ref, err = ParseRowRef("Portfolio Website")
	if err != nil {
		t.Fatalf("ParseRowRef failed: %v", err)
	}
	if ref.Persisted() {
		t.Error("a title parameter must produce a pending ref")
	}
	if ref.Title() != "Portfolio Website" {
		t.Errorf("got title %q", ref.Title())
	}

	if _, err := ParseRowRef("   "); err == nil {
		t.Error("expected error for a blank reference")
	}
}

func TestRowRefString(t *testing.T) {
	id := uuid.New()
	if got := PersistedRef(id).String(); got != id.String() {
		t.Errorf("persisted ref string = %q, want %q", got, id)
	}
	if got := PendingRef("Go").String(); got != "pending:Go" {
		t.Errorf("pending ref string = %q", got)
	}
}
