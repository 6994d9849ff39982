package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store is the catalog lookup surface the battle engine depends on. The
// in-memory Registry and the Postgres-backed store both satisfy it.
type Store interface {
	// Move returns the move definition for id, or (zero, false) if unknown.
	Move(id string) (Move, bool)
	// Species returns the species definition for id, or (zero, false) if unknown.
	Species(id string) (Species, bool)
}

// Registry is an in-memory Store keyed by ID.
type Registry struct {
	moves   map[string]Move
	species map[string]Species
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		moves:   make(map[string]Move),
		species: make(map[string]Species),
	}
}

// RegisterMove adds m to the registry, overwriting any existing entry with
// the same ID.
//
// Precondition: m must pass Validate.
func (r *Registry) RegisterMove(m Move) {
	r.moves[m.ID] = m
}

// RegisterSpecies adds s to the registry, overwriting any existing entry with
// the same ID.
//
// Precondition: s must pass Validate.
func (r *Registry) RegisterSpecies(s Species) {
	r.species[s.ID] = s
}

// Move returns the move definition for id, or (zero, false) if not found.
func (r *Registry) Move(id string) (Move, bool) {
	m, ok := r.moves[id]
	return m, ok
}

// Species returns the species definition for id, or (zero, false) if not found.
func (r *Registry) Species(id string) (Species, bool) {
	s, ok := r.species[id]
	return s, ok
}

// Moves returns a snapshot of all registered moves, sorted by ID.
func (r *Registry) Moves() []Move {
	out := make([]Move, 0, len(r.moves))
	for _, m := range r.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllSpecies returns a snapshot of all registered species, sorted by ID.
func (r *Registry) AllSpecies() []Species {
	out := make([]Species, 0, len(r.species))
	for _, s := range r.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// catalogFile is the document shape of a content YAML file. A file may carry
// moves, species, or both.
type catalogFile struct {
	Moves   []Move    `yaml:"moves"`
	Species []Species `yaml:"species"`
}

// LoadDirectory reads every *.yaml file in dir, parses each as a catalog
// document, validates every entry, and returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to
// parse or any entry fails validation.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		if err := reg.LoadBytes(data); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
	}
	return reg, nil
}

// LoadBytes parses one catalog document and registers its entries.
//
// Postcondition: On error the registry may hold a prefix of the document's
// valid entries; callers treat any error as fatal.
func (r *Registry) LoadBytes(data []byte) error {
	var doc catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	for _, m := range doc.Moves {
		if err := m.Validate(); err != nil {
			return err
		}
		r.RegisterMove(m)
	}
	for _, s := range doc.Species {
		if err := s.Validate(); err != nil {
			return err
		}
		r.RegisterSpecies(s)
	}
	return nil
}
