package profile

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed skills_seed.yaml
var skillsSeed []byte

// DefaultSkillsDict returns the embedded skills dictionary, keyed by category.
func DefaultSkillsDict() (map[string][]string, error) {
	return parseSkillsDict(skillsSeed)
}

// LoadSkillsDict reads a skills dictionary from a YAML file with the same
// category -> skills shape as the embedded seed.
func LoadSkillsDict(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skills dictionary %q: %w", path, err)
	}
	return parseSkillsDict(data)
}

func parseSkillsDict(data []byte) (map[string][]string, error) {
	var dict map[string][]string
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parsing skills dictionary: %w", err)
	}
	if len(dict) == 0 {
		return nil, fmt.Errorf("skills dictionary is empty")
	}
	return dict, nil
}
