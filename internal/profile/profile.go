// Package profile builds a matching profile from raw CV text.
package profile

import "strings"

// Profile is what we extracted from the uploaded CV. It is rebuilt from
// scratch on every upload or edit; nothing mutates an existing instance.
type Profile struct {
	RawText         string   `json:"-"`
	Skills          []string `json:"skills"` // lowercase, unique, sorted
	YearsExperience *float64 `json:"years_experience"`
	RoleHints       []string `json:"role_hints"`
	Summary         string   `json:"summary"`
}

// IsEmpty reports whether there is any CV text to match against.
func (p *Profile) IsEmpty() bool {
	return p == nil || strings.TrimSpace(p.RawText) == ""
}

// SkillSet returns the skills as a lowercase lookup set.
func (p *Profile) SkillSet() map[string]bool {
	set := make(map[string]bool, len(p.Skills))
	for _, s := range p.Skills {
		set[strings.ToLower(s)] = true
	}
	return set
}
