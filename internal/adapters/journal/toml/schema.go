package toml

import (
	"fmt"
	"time"
)

const currentSchemaVersion = 1

type sessionFileSchema struct {
	Version int           `toml:"version"`
	SavedAt time.Time     `toml:"saved_at"`
	Journal journalSchema `toml:"journal"`
}

type journalSchema struct {
	Date       string `toml:"date" validate:"notblank"`
	Journal    string `toml:"journal" validate:"notblank"`
	Reflection string `toml:"reflection" validate:"notblank"`
}

func (s sessionFileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s *sessionFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}
