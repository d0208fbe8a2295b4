// Package importer reads directory data from outside sources: YAML seed
// files and project CSV sheets.
package importer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptySeed is returned when a seed file defines no employees or projects
var ErrEmptySeed = errors.New("seed file defines no employees or projects")

// SeedEmployee is an employee record in a seed file.
type SeedEmployee struct {
	Name  string `yaml:"name"`
	Badge string `yaml:"badge,omitempty"`
	PIN   string `yaml:"pin,omitempty"`
}

// SeedProject is a project record in a seed file.
type SeedProject struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Seed is the content of a seed file.
type Seed struct {
	Employees []SeedEmployee `yaml:"employees"`
	Projects  []SeedProject  `yaml:"projects"`
}

// DefaultSeed is the demo directory used when no seed file is configured.
func DefaultSeed() Seed {
	return Seed{
		Employees: []SeedEmployee{
			{Name: "Alex Byrne", Badge: "1001", PIN: "1234"},
			{Name: "Jamie Walsh", Badge: "1002"},
			{Name: "Sam Doyle", Badge: "1003"},
		},
		Projects: []SeedProject{
			{Code: "PRJ-1", Name: "Assembly line A"},
			{Code: "PRJ-2", Name: "Paint shop"},
			{Code: "MAINT", Name: "Maintenance"},
		},
	}
}

// ParseSeed decodes YAML seed data.
func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed data: %w", err)
	}

	for i := range s.Employees {
		s.Employees[i].Name = strings.TrimSpace(s.Employees[i].Name)
		s.Employees[i].Badge = strings.TrimSpace(s.Employees[i].Badge)
	}
	for i := range s.Projects {
		s.Projects[i].Code = strings.TrimSpace(s.Projects[i].Code)
		s.Projects[i].Name = strings.TrimSpace(s.Projects[i].Name)
	}

	if len(s.Employees) == 0 && len(s.Projects) == 0 {
		return Seed{}, ErrEmptySeed
	}
	return s, nil
}

// LoadSeed reads and decodes the seed file at path.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, err
	}
	return ParseSeed(data)
}

// Marshal encodes the seed as YAML.
func (s Seed) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
