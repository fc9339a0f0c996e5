package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) ListProjects(ctx context.Context) ([]*Project, error) {
	var projects []*Project
	if err := su.selectAll(ProjectsTable, "created_at", false, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []*Project{}
	}
	return projects, nil
}

func (su *SupabaseRepo) InsertProject(ctx context.Context, project *Project) (*Project, error) {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Technologies == nil {
		project.Technologies = []string{}
	}

	raw, count, err := su.supabaseClient.From(ProjectsTable).
		Insert(project, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %v", err)
	}

	var rows []Project
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inserted project: %v", err)
	}

	if count == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("no project data returned after insert")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) UpdateProject(ctx context.Context, id uuid.UUID, changes map[string]interface{}) (*Project, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid project ID")
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	changes["updated_at"] = time.Now()

	raw, count, err := su.supabaseClient.From(ProjectsTable).
		Update(changes, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %v", err)
	}

	if count == 0 {
		return nil, fmt.Errorf("no project found to update")
	}

	var rows []Project
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated project: %v", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no project data returned after update")
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid project ID")
	}

	_, count, err := su.supabaseClient.From(ProjectsTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}

	if count == 0 {
		return fmt.Errorf("no project found to delete")
	}

	return nil
}

func (su *SupabaseRepo) FindProjectByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*Project, error) {
	query := su.supabaseClient.From(ProjectsTable).
		Select("*", "", false).
		Eq("title", title).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if ownerID != uuid.Nil {
		query = query.Eq("owner_id", ownerID.String())
	}

	raw, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to find project by title: %v", err)
	}

	var rows []Project
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project rows: %v", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("project %q not found", title)
	}

	return &rows[0], nil
}
