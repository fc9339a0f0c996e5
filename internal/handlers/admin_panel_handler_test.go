package handlers

import (
	"testing"

	"github.com/joshua-takyi/portfolio/internal/models"
)

func TestPageOf(t *testing.T) {
	messages := make([]*models.ContactMessage, 5)
	for i := range messages {
		messages[i] = &models.ContactMessage{Subject: string(rune('a' + i))}
	}

	page := pageOf(messages, 1, 2)
	if len(page) != 2 || page[0].Subject != "a" {
		t.Errorf("page 1: got %d rows starting at %q", len(page), page[0].Subject)
	}

	page = pageOf(messages, 3, 2)
	if len(page) != 1 || page[0].Subject != "e" {
		t.Errorf("last partial page: got %d rows", len(page))
	}

	if page = pageOf(messages, 4, 2); len(page) != 0 {
		t.Errorf("out-of-range page must be empty, got %d rows", len(page))
	}

	// nonsense values normalize instead of panicking
	if page = pageOf(messages, 0, -1); len(page) != 5 {
		t.Errorf("normalized paging: got %d rows, want all 5", len(page))
	}
}
