package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (su *SupabaseRepo) ListSkills(ctx context.Context) ([]*Skill, error) {
	var skills []*Skill
	if err := su.selectAll(SkillsTable, "category", true, &skills); err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []*Skill{}
	}
	return skills, nil
}

func (su *SupabaseRepo) InsertSkill(ctx context.Context, skill *Skill) (*Skill, error) {
	if skill.ID == uuid.Nil {
		skill.ID = uuid.New()
	}
	now := time.Now()
	skill.CreatedAt = now
	skill.UpdatedAt = now

	raw, count, err := su.supabaseClient.From(SkillsTable).
		Insert(skill, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert skill: %v", err)
	}

	var rows []Skill
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inserted skill: %v", err)
	}

	if count == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("no skill data returned after insert")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) UpdateSkill(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*Skill, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid skill ID")
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	changes["updated_at"] = time.Now()

	raw, count, err := su.supabaseClient.From(SkillsTable).
		Update(changes, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update skill: %v", err)
	}

	if count == 0 {
		return nil, fmt.Errorf("no skill found to update")
	}

	var rows []Skill
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated skill: %v", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no skill data returned after update")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid skill ID")
	}

	_, count, err := su.supabaseClient.From(SkillsTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete skill: %v", err)
	}

	if count == 0 {
		return fmt.Errorf("no skill found to delete")
	}

	return nil
}

// FindSkillByName resolves a pending row reference after an optimistic create
// whose server-assigned ID has not been refetched yet.
func (su *SupabaseRepo) FindSkillByName(ctx context.Context, ownerID uuid.UUID, name string) (*Skill, error) {
	query := su.supabaseClient.From(SkillsTable).
		Select("*", "", false).
		Eq("name", name)
	if ownerID != uuid.Nil {
		query = query.Eq("owner_id", ownerID.String())
	}

	raw, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to find skill by name: %v", err)
	}

	var rows []Skill
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skill rows: %v", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("skill %q not found", name)
	}

	return &rows[0], nil
}
