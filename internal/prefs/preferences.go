// Package prefs holds the user's stated job preferences.
package prefs

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Preferences describe what the user wants. Empty lists and unset values mean
// "no constraint": filters treat them as inclusive, never exclusive.
type Preferences struct {
	TargetTitles     []string `json:"target_titles" mapstructure:"target_titles"`
	RequiredSkills   []string `json:"required_skills" mapstructure:"required_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills" mapstructure:"nice_to_have_skills"`
	Locations        []string `json:"locations" mapstructure:"locations"`
	Country          string   `json:"country" mapstructure:"country"` // ISO-style: "UK", "US", "DE", ...
	RemoteTypes      []string `json:"remote_types" mapstructure:"remote_types"`
	SeniorityLevels  []string `json:"seniority_levels" mapstructure:"seniority_levels"`
	MinSalary        *float64 `json:"min_salary" mapstructure:"min_salary"`
	SalaryCurrency   string   `json:"salary_currency" mapstructure:"salary_currency"`
	Industries       []string `json:"industries" mapstructure:"industries"`
	AlsoRemoteIn     []string `json:"also_remote_in" mapstructure:"also_remote_in"` // extra countries for remote-only listings
}

// RemoteType returns the single-value remote preference older callers expect.
func (p *Preferences) RemoteType() string {
	if len(p.RemoteTypes) == 0 {
		return ""
	}
	return p.RemoteTypes[0]
}

// Seniority returns the single-value seniority preference older callers expect.
func (p *Preferences) Seniority() string {
	if len(p.SeniorityLevels) == 0 {
		return ""
	}
	return p.SeniorityLevels[0]
}

// Migrate converts a legacy-shaped preferences map into the current schema.
// Old saved profiles carried single-value "remote_type" and "seniority"
// fields; they become one-element lists unless the list fields are already
// present, in which case the legacy keys are simply dropped.
func Migrate(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}

	migrateSingle(out, "remote_type", "remote_types")
	migrateSingle(out, "seniority", "seniority_levels")

	return out
}

func migrateSingle(data map[string]any, legacyKey, currentKey string) {
	v, ok := data[legacyKey]
	if !ok {
		return
	}
	delete(data, legacyKey)
	if _, has := data[currentKey]; has {
		return
	}
	if s, _ := v.(string); s != "" {
		data[currentKey] = []string{s}
	} else {
		data[currentKey] = []string{}
	}
}

// FromMap decodes a (possibly legacy-shaped) preferences map.
func FromMap(data map[string]any) (*Preferences, error) {
	var p Preferences

	cfg := &mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(Migrate(data)); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}

	if p.SalaryCurrency == "" {
		p.SalaryCurrency = "USD"
	}

	return &p, nil
}
