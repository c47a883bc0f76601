package chatwoot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset("")
	require.NoError(t, err)
	assert.Equal(t, PresetStandard, p)

	p, err = LookupPreset("STRICT")
	require.NoError(t, err)
	assert.Equal(t, PresetStrict, p)

	_, err = LookupPreset("nope")
	assert.Error(t, err)
}

func TestConfirmsUninstall_Strict(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes", true},
		{"YES", false}, // case-sensitive literal token
		{"y", false},
		{"no", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PresetStrict.ConfirmsUninstall(tt.input), "input %q", tt.input)
	}
}

func TestConfirmsUninstall_Lenient(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"YES", true},
		{"no", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PresetStandard.ConfirmsUninstall(tt.input), "input %q", tt.input)
	}
}
