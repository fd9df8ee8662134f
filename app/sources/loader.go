package sources

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the source groups from a YAML file and validates them.
// Every endpoint group may be empty; individual sources require a URL.
func Load(path string) (*Groups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var groups Groups
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	for groupName, group := range map[string][]Source{
		"news":     groups.News,
		"traffic":  groups.Traffic,
		"industry": groups.Industry,
	} {
		for i := range group {
			if err := validate(&group[i]); err != nil {
				return nil, fmt.Errorf("invalid source in group '%s': %w", groupName, err)
			}
		}
	}

	return &groups, nil
}

func validate(s *Source) error {
	if s.URL == "" {
		return fmt.Errorf("source URL is required")
	}

	parsed, err := url.Parse(s.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("source URL '%s' is not an absolute URL", s.URL)
	}

	if s.Name == "" {
		s.Name = parsed.Hostname()
	}
	if s.Weight == 0 {
		s.Weight = 1
	}

	return nil
}
