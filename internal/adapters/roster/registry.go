package roster

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"gopkg.in/yaml.v3"
)

const currentRosterVersion = 1

//go:embed personas.yaml
var defaultRoster []byte

type Registry struct {
	personas []domain.Persona
}

var _ ports.PersonaRegistry = (*Registry)(nil)

type rosterFile struct {
	Version  int             `yaml:"version"`
	Personas []personaSchema `yaml:"personas"`
}

type personaSchema struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Title  string `yaml:"title"`
	Style  string `yaml:"style"`
	Prompt string `yaml:"prompt"`
}

// MustDefault returns the roster compiled into the binary.
func MustDefault() *Registry {
	registry, err := Parse(defaultRoster)
	if err != nil {
		panic(fmt.Sprintf("roster: embedded personas are invalid: %v", err))
	}
	return registry
}

func Parse(data []byte) (*Registry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("roster: payload is empty")
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("roster: decode: %w", err)
	}
	if file.Version > currentRosterVersion {
		return nil, fmt.Errorf("roster: unsupported version %d (current %d)", file.Version, currentRosterVersion)
	}
	if len(file.Personas) == 0 {
		return nil, errors.New("roster: no personas defined")
	}

	seen := make(map[string]struct{}, len(file.Personas))
	personas := make([]domain.Persona, 0, len(file.Personas))
	for i, entry := range file.Personas {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("roster: persona %d: %w", i, err)
		}
		id := strings.TrimSpace(entry.ID)
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("roster: duplicate persona id %q", id)
		}
		seen[id] = struct{}{}
		personas = append(personas, entry.toDomain())
	}

	return &Registry{personas: personas}, nil
}

// All returns the personas in roster order. Callers receive their own copy.
func (r *Registry) All() []domain.Persona {
	out := make([]domain.Persona, len(r.personas))
	copy(out, r.personas)
	return out
}

func (r *Registry) Get(id domain.PersonaID) (domain.Persona, error) {
	for _, persona := range r.personas {
		if persona.ID == id {
			return persona, nil
		}
	}
	return domain.Persona{}, fmt.Errorf("%w: %q", domain.ErrPersonaNotFound, id)
}

func (p personaSchema) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"id", p.ID},
		{"name", p.Name},
		{"title", p.Title},
		{"style", p.Style},
		{"prompt", p.Prompt},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s is empty", field.name)
		}
	}
	return nil
}

func (p personaSchema) toDomain() domain.Persona {
	return domain.Persona{
		ID:               domain.PersonaID(strings.TrimSpace(p.ID)),
		DisplayName:      strings.TrimSpace(p.Name),
		Title:            strings.TrimSpace(p.Title),
		StyleDescription: strings.TrimSpace(p.Style),
		PromptTemplate:   strings.TrimSpace(p.Prompt),
	}
}
