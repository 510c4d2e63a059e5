package holidays

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
)

// seedEntry is one row of the YAML seed file:
//
//	holidays:
//	  - date: "2024-01-26"
//	    reason: "Republic Day"
type seedEntry struct {
	Date   string `yaml:"date"`
	Reason string `yaml:"reason"`
}

type seedFile struct {
	Holidays []seedEntry `yaml:"holidays"`
}

// LoadSeedFile reads holiday declarations from a YAML file.
func LoadSeedFile(path string) ([]v1.HolidayDeclaration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var parsed seedFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	declarations := make([]v1.HolidayDeclaration, 0, len(parsed.Holidays))
	for _, entry := range parsed.Holidays {
		declarations = append(declarations, v1.HolidayDeclaration{
			Date:   entry.Date,
			Reason: entry.Reason,
		})
	}
	return declarations, nil
}
