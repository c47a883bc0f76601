package cmd

import (
	"github.com/chatwootops/chatwootctl/pkg/cwio"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the Chatwoot services",
	RunE:  cwio.Wrap(runStatus),
}

func runStatus(rc *cwio.RuntimeContext, cmd *cobra.Command, args []string) error {
	inst, err := buildInstaller()
	if err != nil {
		return err
	}
	return inst.Status(rc.Ctx)
}
