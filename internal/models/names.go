package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NicknameChance is the probability that a generated name uses a nickname
// instead of a first name.
const NicknameChance = 0.3

// Rand is the randomness a NameGenerator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// LoadNameCatalog reads and validates the name lists at path. The file is
// YAML; JSON documents are accepted as well.
func LoadNameCatalog(path string) (*NameCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names %s: %w", path, err)
	}

	var catalog NameCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse names %s: %w", path, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("names %s: %w", path, err)
	}
	return &catalog, nil
}

// Validate checks that every list has at least one entry.
func (c *NameCatalog) Validate() error {
	var errs []error
	if len(c.FirstNames) == 0 {
		errs = append(errs, errors.New("first_names is empty"))
	}
	if len(c.LastNames) == 0 {
		errs = append(errs, errors.New("last_names is empty"))
	}
	if len(c.Nicknames) == 0 {
		errs = append(errs, errors.New("nicknames is empty"))
	}
	return errors.Join(errs...)
}

// NameGenerator produces random swimmer names from a catalog.
type NameGenerator struct {
	catalog *NameCatalog
	rng     Rand
}

func NewNameGenerator(catalog *NameCatalog, rng Rand) *NameGenerator {
	return &NameGenerator{catalog: catalog, rng: rng}
}

// GenerateName returns either `"Nickname" Last` or `First Last`.
func (g *NameGenerator) GenerateName() string {
	if g.rng.Float64() < NicknameChance {
		nickname := g.pick(g.catalog.Nicknames)
		return fmt.Sprintf("\"%s\" %s", nickname, g.pick(g.catalog.LastNames))
	}
	first := g.pick(g.catalog.FirstNames)
	return first + " " + g.pick(g.catalog.LastNames)
}

func (g *NameGenerator) pick(list []string) string {
	return list[g.rng.IntN(len(list))]
}
