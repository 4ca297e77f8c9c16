package ports

import "github.com/roeshane/life-coach-reflections/internal/domain"

type PersonaRegistry interface {
	All() []domain.Persona
}
