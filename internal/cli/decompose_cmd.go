package cli

import (
	"fmt"

	"github.com/alexanderramin/holotask/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDecomposeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "decompose <task>",
		Aliases: []string{"refine"},
		Short:   "Ask the language model to split a task into subtasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			task, err := currentTask(app, args[0])
			if err != nil {
				return err
			}

			pending, err := app.Session.Decompose(ctx, task.ID)
			if err != nil {
				return sessionErr(err)
			}
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Decomposing "+task.Text)
			}
			r, err := pending.Wait(ctx)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatRefinement(task, r.Subtasks, r.EstimatedTime, r.Category))
			if r.IsFallback() {
				if app.LLM == nil {
					fmt.Fprintln(out, formatter.Dim("Decomposition is disabled; set llm.enabled in the config to use a model."))
				} else {
					fmt.Fprintln(out, formatter.Dim("The model could not be reached; run `holotask doctor` to check the connection."))
				}
			}
			return nil
		},
	}
}
