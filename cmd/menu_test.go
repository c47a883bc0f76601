package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/chatwootops/chatwootctl/pkg/cwio"
	"github.com/chatwootops/chatwootctl/pkg/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withScriptedPrompter(t *testing.T, input string) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	old := prompter
	prompter = interaction.NewPrompterWith(strings.NewReader(input), &out)
	t.Cleanup(func() { prompter = old })
	return &out
}

func TestRunMenu_InvalidChoiceThenExit(t *testing.T) {
	out := withScriptedPrompter(t, "9\n5\n")

	rc := cwio.NewContext(context.Background(), "menu")
	require.NoError(t, runMenu(rc, RootCmd, nil))

	// Both selections were read through the one shared prompter, so the
	// select label was printed once per loop iteration.
	assert.Equal(t, 2, strings.Count(out.String(), "Select [1-5]: "))
}

func TestRunMenu_EOFEndsSession(t *testing.T) {
	withScriptedPrompter(t, "")

	rc := cwio.NewContext(context.Background(), "menu")
	assert.NoError(t, runMenu(rc, RootCmd, nil))
}
