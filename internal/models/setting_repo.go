package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func (su *SupabaseRepo) ListSettings(ctx context.Context) (map[string]*SiteSetting, error) {
	raw, _, err := su.supabaseClient.From(SettingsTable).
		Select("*", "", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %v", SettingsTable, err)
	}

	var rows []*SiteSetting
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal setting rows: %v", err)
	}

	settings := make(map[string]*SiteSetting, len(rows))
	for _, row := range rows {
		settings[row.Key] = row
	}
	return settings, nil
}

func (su *SupabaseRepo) UpsertSetting(ctx context.Context, setting *SiteSetting) error {
	if setting.Key == "" {
		return fmt.Errorf("setting key is required")
	}
	setting.UpdatedAt = time.Now()

	_, _, err := su.supabaseClient.From(SettingsTable).
		Insert(setting, true, "key", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %v", setting.Key, err)
	}

	return nil
}

func (su *SupabaseRepo) DeleteSetting(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("setting key is required")
	}

	_, count, err := su.supabaseClient.From(SettingsTable).
		Delete("", "exact").
		Eq("key", key).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %v", key, err)
	}

	if count == 0 {
		return fmt.Errorf("no setting found to delete")
	}

	return nil
}
