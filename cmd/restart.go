package cmd

import (
	"github.com/chatwootops/chatwootctl/pkg/cwio"
	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the Chatwoot services",
	Long:  `Stop and start the stack. Data volumes and images are kept.`,
	RunE:  cwio.Wrap(runRestart),
}

func runRestart(rc *cwio.RuntimeContext, cmd *cobra.Command, args []string) error {
	inst, err := buildInstaller()
	if err != nil {
		return err
	}
	return inst.Restart(rc.Ctx)
}
