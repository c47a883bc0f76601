package platform

import (
	"testing"

	"github.com/chatwootops/chatwootctl/pkg/cwerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireEUID_Root(t *testing.T) {
	assert.NoError(t, requireEUID(0))
}

func TestRequireEUID_NonRootIsFatal(t *testing.T) {
	err := requireEUID(1000)
	require.Error(t, err)
	// Missing privilege must surface as a system failure so the process
	// exits non-zero, not as a soft user error.
	assert.False(t, cwerr.IsUserError(err))
}
