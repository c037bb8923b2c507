package models

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testCatalog = &NameCatalog{
	FirstNames: []string{"Ada", "Grace", "Katie"},
	LastNames:  []string{"Ledecky", "Phelps"},
	Nicknames:  []string{"Torpedo", "Flipper"},
}

// scriptedRand replays fixed draws.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) IntN(n int) int {
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

func TestGenerateNameForms(t *testing.T) {
	rng := &scriptedRand{
		floats: []float64{0.1, 0.9},
		ints:   []int{1, 0, 2, 1},
	}
	g := NewNameGenerator(testCatalog, rng)

	if got := g.GenerateName(); got != `"Flipper" Ledecky` {
		t.Errorf("Expected nickname form, got %s", got)
	}
	if got := g.GenerateName(); got != "Katie Phelps" {
		t.Errorf("Expected first-name form, got %s", got)
	}
}

func TestGenerateNameDistribution(t *testing.T) {
	g := NewNameGenerator(testCatalog, rand.New(rand.NewPCG(7, 11)))

	const draws = 20000
	nicknames := 0
	for i := 0; i < draws; i++ {
		name := g.GenerateName()
		first, last, ok := strings.Cut(name, " ")
		if !ok {
			t.Fatalf("Expected two parts, got %q", name)
		}
		if !contains(testCatalog.LastNames, last) {
			t.Fatalf("Unknown last name in %q", name)
		}
		if strings.HasPrefix(first, `"`) {
			nicknames++
			if !contains(testCatalog.Nicknames, strings.Trim(first, `"`)) {
				t.Fatalf("Unknown nickname in %q", name)
			}
			continue
		}
		if !contains(testCatalog.FirstNames, first) {
			t.Fatalf("Unknown first name in %q", name)
		}
	}

	rate := float64(nicknames) / draws
	if rate < 0.28 || rate > 0.32 {
		t.Errorf("Expected nickname rate near 0.3, got %.3f", rate)
	}
}

func TestLoadNameCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.yaml")
	data := "first_names: [Ada]\nlast_names: [Ledecky, Phelps]\nnicknames: [Torpedo]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadNameCatalog(path)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	if len(catalog.LastNames) != 2 {
		t.Errorf("Expected 2 last names, got %d", len(catalog.LastNames))
	}
}

func TestLoadNameCatalogJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.json")
	data := `{"first_names": ["Ada"], "last_names": ["Ledecky"], "nicknames": ["Torpedo"]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadNameCatalog(path)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	if catalog.Nicknames[0] != "Torpedo" {
		t.Errorf("Expected Torpedo, got %s", catalog.Nicknames[0])
	}
}

func TestLoadNameCatalogErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadNameCatalog(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	malformed := filepath.Join(dir, "malformed.yaml")
	os.WriteFile(malformed, []byte("first_names: {broken"), 0644)
	if _, err := LoadNameCatalog(malformed); err == nil {
		t.Error("Expected error for malformed file")
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("first_names: [Ada]\nlast_names: [Ledecky]\nnicknames: []\n"), 0644)
	_, err := LoadNameCatalog(empty)
	if err == nil || !strings.Contains(err.Error(), "nicknames is empty") {
		t.Errorf("Expected empty nicknames error, got %v", err)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestShippedCatalogLoads(t *testing.T) {
	catalog, err := LoadNameCatalog(filepath.Join("..", "..", "data", "swimmer_names.yaml"))
	if err != nil {
		t.Fatalf("Failed to load shipped names: %v", err)
	}
	if len(catalog.FirstNames) < 10 || len(catalog.LastNames) < 10 || len(catalog.Nicknames) < 5 {
		t.Errorf("Expected a reasonable catalog, got %d/%d/%d names",
			len(catalog.FirstNames), len(catalog.LastNames), len(catalog.Nicknames))
	}
}
