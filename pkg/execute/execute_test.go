package execute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Capture(t *testing.T) {
	out, err := Run(context.Background(), Options{
		Command: "echo",
		Args:    []string{"hello"},
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRun_MissingBinary(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Command: "definitely-not-a-real-binary-xyz",
		Capture: true,
	})
	assert.Error(t, err)
}

func TestRun_Timeout(t *testing.T) {
	start := time.Now()
	_, err := Run(context.Background(), Options{
		Command: "sleep",
		Args:    []string{"5"},
		Capture: true,
		Timeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestRun_NonZeroExit(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Command: "false",
		Capture: true,
	})
	assert.Error(t, err)
}

func TestLookPath(t *testing.T) {
	assert.True(t, LookPath("echo"))
	assert.False(t, LookPath("definitely-not-a-real-binary-xyz"))
}
