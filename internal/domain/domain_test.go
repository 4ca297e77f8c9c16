package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaskCredential(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: ""},
		{name: "short value fully masked", value: "abcd", want: "****"},
		{name: "reveals last four", value: "VALIDKEY", want: "****DKEY"},
		{name: "counts runes not bytes", value: "키키키키키", want: "*키키키키"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskCredential(tt.value))
		})
	}
}

func TestCredentialPresent(t *testing.T) {
	assert.False(t, Credential("").Present())
	assert.False(t, Credential(" \t\n").Present())
	assert.True(t, Credential("VALIDKEY").Present())
	assert.Equal(t, "****DKEY", fmt.Sprint(Credential("VALIDKEY")))
}

func TestBuildPromptInterpolatesJournalAndReflection(t *testing.T) {
	persona := Persona{ID: "yoon", PromptTemplate: "당신은 코치입니다."}
	snapshot := JournalSnapshot{Date: "2024-01-01", JournalText: "오늘은 힘들었다", ReflectionText: "그래도 배운 게 있다"}

	got := BuildPrompt(persona, snapshot)

	assert.Equal(t, "당신은 코치입니다.\n\n사용자의 저널: 오늘은 힘들었다\n\n사용자의 회고: 그래도 배운 게 있다", got)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   ErrorKind
		wantStatus int
	}{
		{name: "nil", err: nil, wantKind: ErrorKindNone},
		{name: "protocol", err: &ProtocolError{StatusCode: 403}, wantKind: ErrorKindProtocol, wantStatus: 403},
		{name: "wrapped protocol", err: fmt.Errorf("persona yoon: %w", &ProtocolError{StatusCode: 400}), wantKind: ErrorKindProtocol, wantStatus: 400},
		{name: "empty", err: &EmptyResponseError{}, wantKind: ErrorKindEmptyResponse},
		{name: "transport", err: &TransportError{Err: errors.New("dial tcp: refused")}, wantKind: ErrorKindTransport},
		{name: "anything else", err: errors.New("boom"), wantKind: ErrorKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, status := ClassifyError(tt.err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestTransportErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("complete: %w", &TransportError{Err: cause})

	assert.ErrorIs(t, err, cause)
}

func TestAdviceStateResult(t *testing.T) {
	_, ok := AdviceState{Phase: PhaseLoading}.Result()
	assert.False(t, ok)

	result, ok := AdviceState{PersonaID: "yoon", Phase: PhaseSucceeded, Text: "괜찮아질 거예요."}.Result()
	assert.True(t, ok)
	assert.Equal(t, AdviceResult{PersonaID: "yoon", Text: "괜찮아질 거예요."}, result)

	result, ok = AdviceState{PersonaID: "kim", Phase: PhaseFailed, ErrorKind: ErrorKindProtocol}.Result()
	assert.True(t, ok)
	assert.Equal(t, ErrorKindProtocol, result.ErrorKind)
}

func TestPersonaInitials(t *testing.T) {
	assert.Equal(t, "윤", Persona{DisplayName: "윤미래"}.Initials())
	assert.Equal(t, "MF", Persona{DisplayName: "Mirae  Future"}.Initials())
}

func TestPhaseTerminal(t *testing.T) {
	assert.True(t, PhaseSucceeded.Terminal())
	assert.True(t, PhaseFailed.Terminal())
	assert.False(t, PhaseLoading.Terminal())
	assert.False(t, PhaseAwaitingCredential.Terminal())
}

func TestFormatJournalDate(t *testing.T) {
	assert.Equal(t, "2026년 03월 07일", FormatJournalDate(time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)))
}
