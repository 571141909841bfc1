package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// Env names an environment variable holding the secret. When set and
	// non-empty in the environment it takes precedence over Value.
	Env string
	// File points to a file containing the secret value. When set it takes
	// precedence over both Env and Value.
	File string
}

// Load returns the resolved secret value from the provided source, with
// File taking precedence over Env, and Env over Value. The returned secret
// is always trimmed. An error is returned when no part of the source
// contains a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	} else if env := strings.TrimSpace(src.Env); env != "" {
		if v := os.Getenv(env); strings.TrimSpace(v) != "" {
			src.Value = v
		}
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}

// LoadOptional is Load for secrets the program can run without. It returns
// an empty string instead of an error when nothing is configured; an Env
// source whose variable is unset or blank counts as not configured.
func LoadOptional(src Source) (string, error) {
	envSet := false
	if env := strings.TrimSpace(src.Env); env != "" {
		envSet = strings.TrimSpace(os.Getenv(env)) != ""
	}
	if strings.TrimSpace(src.File) == "" && !envSet && strings.TrimSpace(src.Value) == "" {
		return "", nil
	}
	return Load(src)
}
