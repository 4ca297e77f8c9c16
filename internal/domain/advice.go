package domain

import "time"

type Phase string

const (
	PhaseAwaitingCredential Phase = "awaiting_credential"
	PhaseLoading            Phase = "loading"
	PhaseSucceeded          Phase = "succeeded"
	PhaseFailed             Phase = "failed"
)

func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

func (p Phase) Label() string {
	switch p {
	case PhaseAwaitingCredential:
		return "API 키 필요"
	case PhaseLoading:
		return "불러오는 중"
	case PhaseSucceeded:
		return "완료"
	case PhaseFailed:
		return "실패"
	default:
		return string(p)
	}
}

type ErrorKind string

const (
	ErrorKindNone          ErrorKind = ""
	ErrorKindTransport     ErrorKind = "transport"
	ErrorKindProtocol      ErrorKind = "protocol"
	ErrorKindEmptyResponse ErrorKind = "empty_response"
	ErrorKindUnknown       ErrorKind = "unknown"
)

// Guidance is the user-facing message shown for a failed persona.
func (k ErrorKind) Guidance() string {
	switch k {
	case ErrorKindProtocol:
		return "조언을 불러오는 데 실패했습니다. API 키가 올바른지 확인해주세요."
	case ErrorKindTransport:
		return "조언을 불러오는 데 실패했습니다. 네트워크 연결을 확인한 뒤 다시 시도해주세요."
	case ErrorKindNone:
		return ""
	default:
		return "조언을 불러오는 데 실패했습니다. 다시 시도해주세요."
	}
}

type GenerationID string

// Generation is one (JournalSnapshot, Credential) pairing.
type Generation struct {
	ID         GenerationID
	Snapshot   JournalSnapshot
	Credential Credential
	BoundAt    time.Time
}

// AdviceState is the projection one persona exposes to callers.
type AdviceState struct {
	PersonaID      PersonaID
	Phase          Phase
	Text           string
	ErrorKind      ErrorKind
	StatusCode     int
	Generation     GenerationID
	CredentialHint string
	UpdatedAt      time.Time
}

// AdviceResult is the terminal outcome of one persona in one generation.
type AdviceResult struct {
	PersonaID PersonaID
	Text      string
	ErrorKind ErrorKind
}

func (s AdviceState) Result() (AdviceResult, bool) {
	switch s.Phase {
	case PhaseSucceeded:
		return AdviceResult{PersonaID: s.PersonaID, Text: s.Text}, true
	case PhaseFailed:
		return AdviceResult{PersonaID: s.PersonaID, ErrorKind: s.ErrorKind}, true
	default:
		return AdviceResult{}, false
	}
}

type FailureNotice struct {
	PersonaID   PersonaID
	DisplayName string
	Generation  GenerationID
	Kind        ErrorKind
	StatusCode  int
	At          time.Time
}

// GenerationPolicy holds the fixed sampling parameters sent with every request.
type GenerationPolicy struct {
	Temperature     float32
	TopK            int
	TopP            float32
	MaxOutputTokens int
}

var DefaultGenerationPolicy = GenerationPolicy{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 500,
}
