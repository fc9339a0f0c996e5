package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) ListTimeline(ctx context.Context) ([]*TimelineEvent, error) {
	// order_index ascending; the start_date tiebreak for equal indexes is
	// applied in SortTimeline after unmarshalling.
	raw, _, err := su.supabaseClient.From(TimelineTable).
		Select("*", "", false).
		Order("order_index", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %v", TimelineTable, err)
	}

	var events []*TimelineEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timeline rows: %v", err)
	}

	if events == nil {
		events = []*TimelineEvent{}
	}
	SortTimeline(events)
	return events, nil
}

func (su *SupabaseRepo) InsertTimelineEvent(ctx context.Context, event *TimelineEvent) (*TimelineEvent, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.SkillTags == nil {
		event.SkillTags = []string{}
	}

	raw, count, err := su.supabaseClient.From(TimelineTable).
		Insert(event, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert timeline event: %v", err)
	}

	var rows []TimelineEvent
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inserted timeline event: %v", err)
	}

	if count == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("no timeline data returned after insert")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) UpdateTimelineEvent(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*TimelineEvent, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid timeline event ID")
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	changes["updated_at"] = time.Now()

	raw, count, err := su.supabaseClient.From(TimelineTable).
		Update(changes, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update timeline event: %v", err)
	}

	if count == 0 {
		return nil, fmt.Errorf("no timeline event found to update")
	}

	var rows []TimelineEvent
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated timeline event: %v", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no timeline data returned after update")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) DeleteTimelineEvent(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid timeline event ID")
	}

	_, count, err := su.supabaseClient.From(TimelineTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete timeline event: %v", err)
	}

	if count == 0 {
		return fmt.Errorf("no timeline event found to delete")
	}

	return nil
}

func (su *SupabaseRepo) FindTimelineEventByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*TimelineEvent, error) {
	query := su.supabaseClient.From(TimelineTable).
		Select("*", "", false).
		Eq("title", title)
	if ownerID != uuid.Nil {
		query = query.Eq("owner_id", ownerID.String())
	}

	raw, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to find timeline event by title: %v", err)
	}

	var rows []TimelineEvent
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timeline rows: %v", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("timeline event %q not found", title)
	}

	return &rows[0], nil
}
