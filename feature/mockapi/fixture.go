package mockapi

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture lists the hosts the mock service knows.
type Fixture struct {
	Hosts []FixtureHost `yaml:"hosts"`
}

// FixtureHost is one known host and the service tag its hardware reports.
type FixtureHost struct {
	ID          int64  `yaml:"id"`
	Description string `yaml:"description"`
	ServiceTag  string `yaml:"serviceTag"`
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return ParseFixture(f)
}

// ParseFixture decodes and validates a fixture. Host ids must be unique.
func ParseFixture(r io.Reader) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	seen := make(map[int64]struct{}, len(fx.Hosts))
	for i, h := range fx.Hosts {
		if _, dup := seen[h.ID]; dup {
			return nil, fmt.Errorf("fixture host %d: duplicate id %d", i, h.ID)
		}
		seen[h.ID] = struct{}{}
		fx.Hosts[i].ServiceTag = strings.TrimSpace(h.ServiceTag)
	}
	return &fx, nil
}
