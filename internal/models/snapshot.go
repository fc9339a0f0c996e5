package models

import "time"

// Snapshot is the in-memory mirror of every content table. Every field is
// always non-nil once DefaultSnapshot or a refresh has run; the public site
// renders straight from it and must never see an undefined slice.
type Snapshot struct {
	Profile        *Profile                `json:"profile"`
	Skills         []*Skill                `json:"skills"`
	Projects       []*Project              `json:"projects"`
	Certifications []*Certification        `json:"certifications"`
	Timeline       []*TimelineEvent        `json:"timeline"`
	Messages       []*ContactMessage       `json:"messages"`
	Settings       map[string]*SiteSetting `json:"settings"`
	FetchedAt      time.Time               `json:"fetched_at"`
}

// Clone returns a deep copy. Mutations rewrite rows in place under the store
// lock, so readers must never share row memory with the live snapshot.
func (s *Snapshot) Clone() *Snapshot {
	var profile *Profile
	if s.Profile != nil {
		p := *s.Profile
		p.SocialLinks = make(map[string]string, len(s.Profile.SocialLinks))
		for k, v := range s.Profile.SocialLinks {
			p.SocialLinks[k] = v
		}
		profile = &p
	}

	out := &Snapshot{
		Profile:        profile,
		Skills:         make([]*Skill, len(s.Skills)),
		Projects:       make([]*Project, len(s.Projects)),
		Certifications: make([]*Certification, len(s.Certifications)),
		Timeline:       make([]*TimelineEvent, len(s.Timeline)),
		Messages:       make([]*ContactMessage, len(s.Messages)),
		Settings:       make(map[string]*SiteSetting, len(s.Settings)),
		FetchedAt:      s.FetchedAt,
	}
	for i, row := range s.Skills {
		out.Skills[i] = row.Copy()
	}
	for i, row := range s.Projects {
		out.Projects[i] = row.Copy()
	}
	for i, row := range s.Certifications {
		out.Certifications[i] = row.Copy()
	}
	for i, row := range s.Timeline {
		out.Timeline[i] = row.Copy()
	}
	for i, row := range s.Messages {
		out.Messages[i] = row.Copy()
	}
	for k, row := range s.Settings {
		out.Settings[k] = row.Copy()
	}
	return out
}
