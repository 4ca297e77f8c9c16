package domain

import (
	"fmt"
	"strings"
	"time"
)

type JournalSnapshot struct {
	Date           string
	JournalText    string
	ReflectionText string
}

func (s JournalSnapshot) IsZero() bool {
	return s == JournalSnapshot{}
}

// BuildPrompt interpolates the persona template with the journal and reflection text.
func BuildPrompt(persona Persona, snapshot JournalSnapshot) string {
	var b strings.Builder
	b.Grow(len(persona.PromptTemplate) + len(snapshot.JournalText) + len(snapshot.ReflectionText) + 64)
	b.WriteString(persona.PromptTemplate)
	b.WriteString("\n\n사용자의 저널: ")
	b.WriteString(snapshot.JournalText)
	b.WriteString("\n\n사용자의 회고: ")
	b.WriteString(snapshot.ReflectionText)
	return b.String()
}

// FormatJournalDate renders t the way journal entries are dated, e.g. "2026년 10월 19일".
func FormatJournalDate(t time.Time) string {
	return fmt.Sprintf("%d년 %02d월 %02d일", t.Year(), int(t.Month()), t.Day())
}
