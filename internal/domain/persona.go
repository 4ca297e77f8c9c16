package domain

type PersonaID string

type Persona struct {
	ID               PersonaID
	DisplayName      string
	Title            string
	StyleDescription string
	PromptTemplate   string
}

// Initials mirrors the avatar fallback: first rune of every space separated word.
func (p Persona) Initials() string {
	var out []rune
	inWord := false
	for _, r := range p.DisplayName {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			out = append(out, r)
			inWord = true
		}
	}
	return string(out)
}
