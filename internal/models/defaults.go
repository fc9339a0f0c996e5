package models

import (
	"encoding/json"
	"time"
)

// DefaultSnapshot returns the hardcoded content the public site renders when
// the remote store is empty or unreachable. No field is ever left nil.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Profile:        DefaultProfile(),
		Skills:         DefaultSkills(),
		Projects:       DefaultProjects(),
		Certifications: DefaultCertifications(),
		Timeline:       []*TimelineEvent{},
		Messages:       []*ContactMessage{},
		Settings:       DefaultSettings(),
		FetchedAt:      time.Time{},
	}
}

func DefaultProfile() *Profile {
	return &Profile{
		Name:     "Your Name",
		Title:    "Software Engineer",
		Email:    "hello@example.com",
		Location: "Remote",
		Bio:      "Welcome to my portfolio. Content has not been published yet.",
		SocialLinks: map[string]string{
			"github":   "https://github.com",
			"linkedin": "https://linkedin.com",
		},
	}
}

func DefaultSkills() []*Skill {
	return []*Skill{
		{Name: "Go", Category: "Programming Languages", Level: 80},
		{Name: "TypeScript", Category: "Programming Languages", Level: 70},
		{Name: "PostgreSQL", Category: "Databases", Level: 65},
	}
}

func DefaultProjects() []*Project {
	return []*Project{
		{
			Title:        "Portfolio Website",
			Description:  "This site. Content management backed by a hosted database.",
			Technologies: []string{"Go", "Supabase"},
		},
	}
}

func DefaultCertifications() []*Certification {
	return []*Certification{
		{
			Title:     "Certification Showcase",
			Issuer:    "Add your certifications from the admin panel",
			IssueDate: "In Progress",
		},
	}
}

func DefaultSettings() map[string]*SiteSetting {
	return map[string]*SiteSetting{
		"site_title": {
			Key:         "site_title",
			Value:       json.RawMessage(`"Portfolio"`),
			Description: "Browser tab and SEO title",
		},
	}
}
