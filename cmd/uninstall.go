package cmd

import (
	"github.com/chatwootops/chatwootctl/pkg/cwio"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove Chatwoot and all of its data",
	Long: `Tear down the Chatwoot installation after confirmation.

This removes the services, their containers, images, the compose network, and
the installation directory including the database. There is no undo.`,
	RunE: cwio.Wrap(runUninstall),
}

func runUninstall(rc *cwio.RuntimeContext, cmd *cobra.Command, args []string) error {
	inst, err := buildInstaller()
	if err != nil {
		return err
	}
	return inst.Uninstall(rc.Ctx)
}
