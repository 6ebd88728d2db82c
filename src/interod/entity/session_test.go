package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlive(t *testing.T) {
	tests := []struct {
		state SessionState
		want  bool
	}{
		{StateAbsent, false},
		{StateInstalling, false},
		{StateStarting, true},
		{StateReady, true},
		{StateRestarting, false},
		{StateGivenUp, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.state), func(t *testing.T) {
			s := &Session{State: tt.state}
			assert.Equal(t, tt.want, s.Alive())
		})
	}
}

func TestTreatAsAbsent(t *testing.T) {
	var nilSession *Session
	assert.True(t, nilSession.TreatAsAbsent())
	assert.True(t, (&Session{State: StateAbsent}).TreatAsAbsent())
	assert.True(t, (&Session{State: StateRestarting}).TreatAsAbsent())
	assert.False(t, (&Session{State: StateReady}).TreatAsAbsent())
	assert.False(t, (&Session{State: StateGivenUp}).TreatAsAbsent())
}

func TestDiagnosticSameAs(t *testing.T) {
	base := Diagnostic{
		Severity: SeverityWarning,
		File:     "src/Lib.hs",
		Line:     3,
		Column:   1,
		Message:  "Defined but not used: ‘x’",
	}

	same := base
	same.Suggestions = []Suggestion{{Kind: SuggestionFixTypo}}
	assert.True(t, base.SameAs(same))

	moved := base
	moved.Line = 4
	assert.False(t, base.SameAs(moved))

	promoted := base
	promoted.Severity = SeverityError
	assert.False(t, base.SameAs(promoted))
}
