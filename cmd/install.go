package cmd

import (
	"github.com/chatwootops/chatwootctl/pkg/cwio"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install Chatwoot, or converge an existing installation",
	Long: `Install Chatwoot with docker compose.

Checks for docker and docker compose and installs them when missing, collects
settings on first run (domain, port, credentials), writes the environment file
and compose manifest, prepares the database once, and brings the stack up.

Re-running install is safe: existing settings are kept, the manifest is
regenerated, and running services are converged in place.`,
	RunE: cwio.Wrap(runInstall),
}

func runInstall(rc *cwio.RuntimeContext, cmd *cobra.Command, args []string) error {
	inst, err := buildInstaller()
	if err != nil {
		return err
	}
	return inst.Install(rc.Ctx)
}
