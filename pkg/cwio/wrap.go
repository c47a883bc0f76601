package cwio

import (
	"context"

	"github.com/chatwootops/chatwootctl/pkg/platform"
	"github.com/spf13/cobra"
)

// Wrap adapts an operation to a cobra RunE: it builds the RuntimeContext,
// enforces the root-privilege requirement, recovers panics, and logs the
// outcome with timing. Every command in cmd/ goes through here.
func Wrap(fn func(rc *RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		if err := platform.RequireRoot(); err != nil {
			return err
		}

		return fn(rc, cmd, args)
	}
}
