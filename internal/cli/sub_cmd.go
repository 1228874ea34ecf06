package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/spf13/cobra"
)

func newSubCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Manage a task's subtasks",
	}

	cmd.AddCommand(
		newSubAddCmd(app),
		newSubToggleCmd(app),
		newSubRemoveCmd(app),
	)

	return cmd
}

func newSubAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task> <text...>",
		Short: "Append a subtask",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := currentTask(app, args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" {
				return errors.New("subtask text is empty")
			}
			if err := app.Session.AddSubtask(cmd.Context(), task.ID, text); err != nil {
				return sessionErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added sub-directive %d to %s: %s\n", len(task.Subtasks)+1, task.Text, text)
			return nil
		},
	}
}

func newSubToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task> <subtask>",
		Short: "Mark a subtask done or not done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, sub, err := currentSubtask(app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Session.ToggleSubtask(cmd.Context(), task.ID, sub.ID); err != nil {
				return sessionErr(err)
			}
			updated, _ := app.Session.Task(task.ID)
			verb := "Completed"
			if sub.Completed {
				verb = "Reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s now %d%%)\n", verb, sub.Text, task.Text, updated.PercentComplete())
			return nil
		},
	}
}

func newSubRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task> <subtask>",
		Aliases: []string{"delete"},
		Short:   "Delete a subtask",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, sub, err := currentSubtask(app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Session.DeleteSubtask(cmd.Context(), task.ID, sub.ID); err != nil {
				return sessionErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted sub-directive: %s\n", sub.Text)
			return nil
		},
	}
}

func currentSubtask(app *App, taskRef, subRef string) (domain.Task, domain.Subtask, error) {
	task, err := currentTask(app, taskRef)
	if err != nil {
		return domain.Task{}, domain.Subtask{}, err
	}
	sub, err := resolveSubtask(task, subRef)
	if err != nil {
		return domain.Task{}, domain.Subtask{}, err
	}
	return task, sub, nil
}
