package cmd

import (
	"fmt"

	"github.com/chatwootops/chatwootctl/pkg/cwerr"
	"github.com/chatwootops/chatwootctl/pkg/cwio"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// runMenu is the interactive dispatcher behind the bare invocation. It loops
// until the operator picks exit; a failed action is reported and the menu is
// shown again rather than aborting the session.
func runMenu(rc *cwio.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	for {
		fmt.Println()
		fmt.Println("Chatwoot management")
		fmt.Println("  1) Install or update")
		fmt.Println("  2) Status")
		fmt.Println("  3) Restart")
		fmt.Println("  4) Uninstall")
		fmt.Println("  5) Exit")

		choice, err := prompter.ReadLine("Select [1-5]: ")
		if err != nil {
			// EOF on stdin ends the session like exit does.
			return nil
		}

		var action func(*cwio.RuntimeContext, *cobra.Command, []string) error
		switch choice {
		case "1":
			action = runInstall
		case "2":
			action = runStatus
		case "3":
			action = runRestart
		case "4":
			action = runUninstall
		case "5", "q", "exit":
			fmt.Println("Bye.")
			return nil
		default:
			fmt.Printf("Unrecognized option %q, pick a number between 1 and 5.\n", choice)
			continue
		}

		if err := action(rc, cmd, args); err != nil {
			if cwerr.IsUserError(err) {
				fmt.Printf("%v\n", err)
			} else {
				logger.Error("Menu action failed", zap.String("choice", choice), zap.Error(err))
				fmt.Printf("Action failed: %v\n", err)
			}
		}
	}
}
