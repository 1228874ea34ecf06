package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/holotask/internal/store"
	"github.com/spf13/cobra"
)

// ConfigFlag names the persistent flag selecting a config file. main reads
// it before building the command tree; it is registered here so cobra
// accepts it.
const ConfigFlag = "config"

// annotationTolerateCorrupt marks commands that still run when the stored
// user data cannot be decoded, so the store can be inspected and the
// current-user marker cleared.
const annotationTolerateCorrupt = "holotask.tolerate-corrupt"

func tolerateCorrupt(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationTolerateCorrupt] = "true"
	return cmd
}

// NewRootCmd creates the top-level "holotask" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "holotask",
		Short: "Per-user task list with subtasks and AI decomposition",
		Long: `HOLOTASK keeps a task list per commander. Tasks carry a priority and
subtasks; a task can be decomposed into suggested subtasks by a language
model. Run without a command on a terminal to open the interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.Session.Resume(cmd.Context())
			if err == nil {
				return nil
			}
			if errors.Is(err, store.ErrCorrupt) && cmd.Annotations[annotationTolerateCorrupt] != "" {
				app.logger().Warn("session not restored", "command", cmd.Name(), "error", err)
				return nil
			}
			return fmt.Errorf("restoring session: %w", err)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().String(ConfigFlag, "", "config file (default ~/.holotask/config.yaml, or $HOLOTASK_CONFIG)")

	root.AddCommand(
		newLoginCmd(app),
		tolerateCorrupt(newLogoutCmd(app)),
		newWhoamiCmd(app),
		tolerateCorrupt(newUsersCmd(app)),
		tolerateCorrupt(newForgetCmd(app)),
		newListCmd(app),
		newAddCmd(app),
		newToggleCmd(app),
		newRemoveCmd(app),
		newPriorityCmd(app),
		newSubCmd(app),
		newDecomposeCmd(app),
		newStatsCmd(app),
		tolerateCorrupt(newDoctorCmd(app)),
		newTUICmd(app),
	)

	return root
}
