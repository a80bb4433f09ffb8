package club

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the club settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read club settings: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse club settings: %w", err)
	}

	setDefaults(&settings)

	if err := validate(&settings); err != nil {
		return nil, fmt.Errorf("invalid club settings %s: %w", path, err)
	}

	return &settings, nil
}

func setDefaults(settings *Settings) {
	if settings.Competition == "" {
		settings.Competition = "Championnat"
	}
	if settings.VenuePlaceholder == "" {
		settings.VenuePlaceholder = "Lieu à définir"
	}
	if len(settings.ConsentLabels) == 0 {
		settings.ConsentLabels = []string{"Tout accepter", "Accepter"}
	}
}

func validate(settings *Settings) error {
	if len(settings.Keywords) == 0 {
		return fmt.Errorf("at least one club keyword is required")
	}
	for _, keyword := range settings.Keywords {
		if keyword == "" {
			return fmt.Errorf("club keywords must not be empty")
		}
	}
	return nil
}
