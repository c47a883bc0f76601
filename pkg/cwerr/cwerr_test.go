package cwerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserError(t *testing.T) {
	err := NewUserError("port %d already in use", 6698)
	assert.Error(t, err)
	assert.Equal(t, "port 6698 already in use", err.Error())
	assert.True(t, IsUserError(err))
}

func TestIsUserError_PlainError(t *testing.T) {
	assert.False(t, IsUserError(errors.New("disk full")))
	assert.False(t, IsUserError(nil))
}

func TestIsUserError_Wrapped(t *testing.T) {
	inner := NewUserError("declined")
	wrapped := fmt.Errorf("uninstall: %w", inner)
	assert.True(t, IsUserError(wrapped))
}

func TestWrapUserError_Nil(t *testing.T) {
	assert.NoError(t, WrapUserError(nil))
}

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "empty output",
			output: "   \n  ",
			want:   "no output",
		},
		{
			name:   "picks error line",
			output: "pulling image\nError response from daemon: not found\ndone",
			want:   "Error response from daemon: not found",
		},
		{
			name:   "falls back to first line",
			output: "all services healthy\nnothing else",
			want:   "all services healthy",
		},
		{
			name:   "joins multiple candidates",
			output: "step failed: one\nfatal: two\nok",
			want:   "step failed: one - fatal: two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSummary(tt.output, 2))
		})
	}
}

func TestExtractSummary_CandidateLimit(t *testing.T) {
	out := "error: a\nerror: b\nerror: c"
	assert.Equal(t, "error: a", ExtractSummary(out, 1))
}
