package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/joshua-takyi/portfolio/internal/models"
)

const githubAPIBase = "https://api.github.com"

// StatsService refreshes the denormalized GitHub statistics and achievement
// badge rows in MongoDB. The HTTP surface reads the cached rows; only the
// manual refresh trigger (and the periodic sync loop) hits GitHub itself.
type StatsService struct {
	statsRepo models.StatsRepo
	username  string
	client    *http.Client
	baseURL   string
}

func NewStatsService(statsRepo models.StatsRepo, username string) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		username:  username,
		client:    &http.Client{Timeout: 15 * time.Second},
		baseURL:   githubAPIBase,
	}
}

type githubUser struct {
	PublicRepos int `json:"public_repos"`
	Followers   int `json:"followers"`
	Following   int `json:"following"`
}

type githubRepo struct {
	Name       string `json:"name"`
	Stars      int    `json:"stargazers_count"`
	Forks      int    `json:"forks_count"`
	Language   string `json:"language"`
	Fork       bool   `json:"fork"`
	PushedAt   string `json:"pushed_at"`
	Archived   bool   `json:"archived"`
	Visibility string `json:"visibility"`
}

func (ss *StatsService) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ss.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := ss.client.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode github response: %v", err)
	}
	return nil
}

// Refresh fetches the public profile and repository list from GitHub and
// upserts the cache rows.
func (ss *StatsService) Refresh(ctx context.Context) (*models.GithubStats, error) {
	if ss.username == "" {
		return nil, fmt.Errorf("github username is not configured")
	}

	var user githubUser
	if err := ss.getJSON(ctx, "/users/"+ss.username, &user); err != nil {
		return nil, err
	}

	var repos []githubRepo
	if err := ss.getJSON(ctx, "/users/"+ss.username+"/repos?per_page=100&sort=pushed", &repos); err != nil {
		return nil, err
	}

	stats := &models.GithubStats{
		Username:    ss.username,
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
		FetchedAt:   time.Now(),
	}

	languageSet := map[string]bool{}
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		stats.TotalStars += repo.Stars
		stats.TotalForks += repo.Forks
		if repo.Language != "" && !languageSet[repo.Language] {
			languageSet[repo.Language] = true
			stats.Languages = append(stats.Languages, repo.Language)
		}
	}

	saved, err := ss.statsRepo.UpsertGithubStats(ctx, stats)
	if err != nil {
		return nil, err
	}

	if err := ss.refreshAchievements(ctx, saved); err != nil {
		return nil, err
	}

	return saved, nil
}

// refreshAchievements derives the badge-progress rows from the cached stats.
func (ss *StatsService) refreshAchievements(ctx context.Context, stats *models.GithubStats) error {
	now := time.Now()
	badges := []*models.Achievement{
		{Slug: "ten-repos", Title: "10 Public Repositories", Progress: stats.PublicRepos, Target: 10},
		{Slug: "fifty-stars", Title: "50 Stars Earned", Progress: stats.TotalStars, Target: 50},
		{Slug: "polyglot", Title: "5 Languages Shipped", Progress: len(stats.Languages), Target: 5},
		{Slug: "hundred-followers", Title: "100 Followers", Progress: stats.Followers, Target: 100},
	}

	for _, badge := range badges {
		badge.Unlocked = badge.Progress >= badge.Target
		if badge.Progress > badge.Target {
			badge.Progress = badge.Target
		}
		badge.UpdatedAt = now
		if err := ss.statsRepo.UpsertAchievement(ctx, badge); err != nil {
			return err
		}
	}

	return nil
}

func (ss *StatsService) CachedStats(ctx context.Context) (*models.GithubStats, error) {
	if ss.username == "" {
		return nil, fmt.Errorf("github username is not configured")
	}
	return ss.statsRepo.GetGithubStats(ctx, ss.username)
}

func (ss *StatsService) Achievements(ctx context.Context) ([]*models.Achievement, error) {
	return ss.statsRepo.ListAchievements(ctx)
}

// RunPeriodic refreshes the cache on the given interval until the context is
// cancelled. Failures are returned through the callback so the caller can log
// them without stopping the loop.
func (ss *StatsService) RunPeriodic(ctx context.Context, interval time.Duration, onError func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := ss.Refresh(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
