package domain

import "strings"

// CredentialKey is the fixed secret-store key the completion credential lives under.
const CredentialKey = "life-coach/geminiApiKey"

const (
	maskMarker     = '*'
	maskVisibleLen = 4
)

type Credential string

func (c Credential) Present() bool {
	return strings.TrimSpace(string(c)) != ""
}

func (c Credential) String() string {
	return MaskCredential(string(c))
}

// MaskCredential reveals at most the last four runes. Values of four runes or
// fewer are masked entirely.
func MaskCredential(value string) string {
	runes := []rune(value)
	if len(runes) == 0 {
		return ""
	}
	if len(runes) <= maskVisibleLen {
		return strings.Repeat(string(maskMarker), len(runes))
	}

	hidden := len(runes) - maskVisibleLen
	return strings.Repeat(string(maskMarker), hidden) + string(runes[hidden:])
}
