package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JaimeV365/job-seeker-cheater/internal/prefs"
	"github.com/JaimeV365/job-seeker-cheater/internal/profile"
)

// persistedProfile is the on-disk shape. The raw CV text is deliberately
// absent; only the derived fields survive a restart.
type persistedProfile struct {
	Skills          []string `json:"skills"`
	YearsExperience *float64 `json:"years_experience"`
	RoleHints       []string `json:"role_hints"`
	Summary         string   `json:"summary"`
}

type persistedState struct {
	Profile     persistedProfile `json:"profile"`
	Preferences map[string]any   `json:"preferences"`
}

// ProfileStore saves the derived profile and preferences as a JSON file.
type ProfileStore struct {
	path string
}

func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{path: path}
}

// IsPersisted reports whether a saved state file exists.
func (s *ProfileStore) IsPersisted() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Save writes the profile and preferences to disk. RawText is never written.
func (s *ProfileStore) Save(p *profile.Profile, preferences *prefs.Preferences) error {
	state := persistedState{Preferences: map[string]any{}}
	if p != nil {
		state.Profile = persistedProfile{
			Skills:          p.Skills,
			YearsExperience: p.YearsExperience,
			RoleHints:       p.RoleHints,
			Summary:         p.Summary,
		}
	}
	if preferences != nil {
		data, err := json.Marshal(preferences)
		if err != nil {
			return fmt.Errorf("encoding preferences: %w", err)
		}
		if err := json.Unmarshal(data, &state.Preferences); err != nil {
			return fmt.Errorf("encoding preferences: %w", err)
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Load reads the saved state. Preferences go through the legacy-key
// migration, so files written by older versions still load.
func (s *ProfileStore) Load() (*profile.Profile, *prefs.Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, err
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, nil, fmt.Errorf("decoding profile store %s: %w", s.path, err)
	}

	p := &profile.Profile{
		Skills:          state.Profile.Skills,
		YearsExperience: state.Profile.YearsExperience,
		RoleHints:       state.Profile.RoleHints,
		Summary:         state.Profile.Summary,
	}

	preferences, err := prefs.FromMap(state.Preferences)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding preferences: %w", err)
	}

	return p, preferences, nil
}

// DeleteAll removes the saved state file. Missing file is not an error.
func (s *ProfileStore) DeleteAll() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Export streams the raw saved state to w so the user can inspect exactly
// what is kept about them.
func (s *ProfileStore) Export(w io.Writer) error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// Import replaces the saved state with the JSON read from r, validating the
// shape before writing anything.
func (s *ProfileStore) Import(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("invalid profile export: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}
