package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (su *SupabaseRepo) GetProfile(ctx context.Context) (*Profile, error) {
	raw, _, err := su.supabaseClient.From(ProfilesTable).
		Select("*", "", false).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %v", err)
	}

	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile rows: %v", err)
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile not found")
	}

	return &profiles[0], nil
}

// UpsertProfile writes the single profile row, creating it on the first admin
// save.
func (su *SupabaseRepo) UpsertProfile(ctx context.Context, profile *Profile) (*Profile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
		profile.CreatedAt = time.Now()
	}
	profile.UpdatedAt = time.Now()

	profileData := map[string]interface{}{
		"id":         profile.ID,
		"name":       profile.Name,
		"title":      profile.Title,
		"email":      profile.Email,
		"phone":      profile.Phone,
		"location":   profile.Location,
		"bio":        profile.Bio,
		"avatar_url": profile.AvatarURL,
		"updated_at": profile.UpdatedAt,
	}

	raw, count, err := su.supabaseClient.From(ProfilesTable).
		Insert(profileData, true, "id", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %v", err)
	}

	var rows []Profile
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upserted profile: %v", err)
	}

	if count == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("no profile data returned after upsert")
	}

	saved := rows[0]
	saved.SocialLinks = profile.SocialLinks
	return &saved, nil
}

type socialLinkRow struct {
	ID       uuid.UUID `json:"id"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Platform string    `json:"platform"`
	URL      string    `json:"url"`
}

func (su *SupabaseRepo) ListSocialLinks(ctx context.Context, ownerID uuid.UUID) (map[string]string, error) {
	query := su.supabaseClient.From(SocialLinksTable).Select("*", "", false)
	if ownerID != uuid.Nil {
		query = query.Eq("owner_id", ownerID.String())
	}

	raw, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get social links: %v", err)
	}

	var rows []socialLinkRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal social link rows: %v", err)
	}

	links := make(map[string]string, len(rows))
	for _, row := range rows {
		links[row.Platform] = row.URL
	}
	return links, nil
}

// ReplaceSocialLinks rewrites the owner's social link rows wholesale. The
// admin form always submits the full map, so delete-then-insert keeps the
// table in step without per-row diffing.
func (su *SupabaseRepo) ReplaceSocialLinks(ctx context.Context, ownerID uuid.UUID, links map[string]string) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("invalid owner ID")
	}

	_, _, err := su.supabaseClient.From(SocialLinksTable).
		Delete("", "").
		Eq("owner_id", ownerID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to clear social links: %v", err)
	}

	if len(links) == 0 {
		return nil
	}

	rows := make([]socialLinkRow, 0, len(links))
	for platform, url := range links {
		rows = append(rows, socialLinkRow{
			ID:       uuid.New(),
			OwnerID:  ownerID,
			Platform: platform,
			URL:      url,
		})
	}

	_, _, err = su.supabaseClient.From(SocialLinksTable).
		Insert(rows, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert social links: %v", err)
	}

	return nil
}
