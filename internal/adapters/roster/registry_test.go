package roster

import (
	"testing"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRosterHasFiveOrderedPersonas(t *testing.T) {
	registry := MustDefault()

	personas := registry.All()
	require.Len(t, personas, 5)

	names := make([]string, 0, len(personas))
	for _, persona := range personas {
		names = append(names, persona.DisplayName)
		assert.NotEmpty(t, persona.PromptTemplate)
		assert.NotEmpty(t, persona.Title)
		assert.NotEmpty(t, persona.StyleDescription)
	}
	assert.Equal(t, []string{"윤미래", "김성공", "이지혜", "박창의", "최균형"}, names)
}

func TestAllIsRestartableAndReturnsCopies(t *testing.T) {
	registry := MustDefault()

	first := registry.All()
	first[0].DisplayName = "mutated"

	second := registry.All()
	assert.Equal(t, "윤미래", second[0].DisplayName)
	assert.Equal(t, registry.All(), second)
}

func TestGetPersona(t *testing.T) {
	registry := MustDefault()

	persona, err := registry.Get("yoon-mirae")
	require.NoError(t, err)
	assert.Equal(t, "마인드풀니스 코치", persona.Title)

	_, err = registry.Get("nobody")
	assert.ErrorIs(t, err, domain.ErrPersonaNotFound)
}

func TestParseRejectsInvalidRosters(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		wantErr string
	}{
		{name: "empty", payload: "  ", wantErr: "payload is empty"},
		{name: "no personas", payload: "version: 1\npersonas: []\n", wantErr: "no personas defined"},
		{name: "future version", payload: "version: 2\npersonas: []\n", wantErr: "unsupported version"},
		{
			name:    "missing prompt",
			payload: "personas:\n  - {id: a, name: A, title: T, style: S}\n",
			wantErr: "prompt is empty",
		},
		{
			name:    "duplicate id",
			payload: "personas:\n  - {id: a, name: A, title: T, style: S, prompt: P}\n  - {id: a, name: B, title: T, style: S, prompt: P}\n",
			wantErr: "duplicate persona id",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.payload))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
