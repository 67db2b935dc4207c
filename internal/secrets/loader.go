// Package secrets resolves sensitive values referenced from configuration.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret comes from. File wins over Value so API
// keys can stay out of the config file itself.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name  string
	Value string
	File  string
}

// Load resolves the secret from the source and trims surrounding whitespace.
// An error names the source when neither File nor Value yield a usable value.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
