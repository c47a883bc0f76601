// Package cmd defines the chatwootctl command tree. Each command is a thin
// shell around the chatwoot package; running the bare binary opens the
// interactive menu.
package cmd

import (
	"fmt"
	"os"

	"github.com/chatwootops/chatwootctl/pkg/chatwoot"
	"github.com/chatwootops/chatwootctl/pkg/container"
	"github.com/chatwootops/chatwootctl/pkg/cwerr"
	"github.com/chatwootops/chatwootctl/pkg/cwio"
	"github.com/chatwootops/chatwootctl/pkg/interaction"
	"github.com/chatwootops/chatwootctl/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RootCmd is the base command for chatwootctl.
var RootCmd = &cobra.Command{
	Use:   "chatwootctl",
	Short: "Install and manage a Chatwoot deployment on this host",
	Long: `chatwootctl installs Chatwoot with docker compose and manages its
lifecycle: install or update, status, restart, and uninstall.

Run without a subcommand to get the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          cwio.Wrap(runMenu),
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().String("install-dir", chatwoot.DefaultInstallDir,
		"directory the installation lives in")
	RootCmd.PersistentFlags().String("preset", "standard",
		"behaviour preset: standard, strict, or full")
	_ = viper.BindPFlag("install_dir", RootCmd.PersistentFlags().Lookup("install-dir"))
	_ = viper.BindPFlag("preset", RootCmd.PersistentFlags().Lookup("preset"))

	for _, sub := range []*cobra.Command{
		installCmd,
		statusCmd,
		restartCmd,
		uninstallCmd,
	} {
		RootCmd.AddCommand(sub)
	}
}

// initConfig layers configuration: defaults, then /etc/chatwootctl/config.yaml,
// then CHATWOOTCTL_* environment variables, then flags.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/chatwootctl")
	viper.SetEnvPrefix("CHATWOOTCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.L().Debug("Loaded config file", zap.String("file", viper.ConfigFileUsed()))
	}
}

// prompter is shared by the menu and every dispatched action. A single
// buffered reader over stdin means read-ahead from one prompt can never eat
// input meant for the next, which separate readers would do on piped input.
var prompter = interaction.NewPrompter()

// buildInstaller assembles the lifecycle controller from the effective
// configuration.
func buildInstaller() (*chatwoot.Installer, error) {
	preset, err := chatwoot.LookupPreset(viper.GetString("preset"))
	if err != nil {
		return nil, cwerr.WrapUserError(err)
	}
	cfg := chatwoot.NewConfig(viper.GetString("install_dir"), preset)
	orch := container.NewComposeCLI(cfg.ComposeFile(), cfg.InstallDir)
	return chatwoot.NewInstaller(cfg, orch, prompter), nil
}

// Execute runs the command tree. User errors (bad input, preconditions the
// operator can fix) print a plain message and exit cleanly; everything else
// is an operational failure.
func Execute() {
	defer func() { _ = logger.Sync() }()

	if err := RootCmd.Execute(); err != nil {
		if cwerr.IsUserError(err) {
			logger.L().Warn("Completed with user error", zap.Error(err))
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(0)
		}
		logger.L().Error("Command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
