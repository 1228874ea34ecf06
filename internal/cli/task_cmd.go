package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/holotask/internal/cli/formatter"
	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			tasks := app.Session.Tasks()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s  %s  %s\n\n",
				formatter.StyleHeader.Render("HOLOTASK"),
				formatter.Bold(user),
				formatter.RenderProgress(domain.CompletionRate(tasks), 16))
			fmt.Fprint(out, formatter.FormatTaskList(tasks, formatter.ListOptions{ExpandAll: all, Now: time.Now()}))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show subtasks of every task")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task at the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, ok, err := app.Session.AddTask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return sessionErr(err)
			}
			if !ok {
				return errors.New("task text is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #1 %s  %s\n", task.Text, formatter.TruncID(task.ID))
			return nil
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task>",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := currentTask(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Session.ToggleTask(cmd.Context(), task.ID); err != nil {
				return sessionErr(err)
			}
			verb := "Completed"
			if task.Completed {
				verb = "Reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, task.Text)
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task>",
		Aliases: []string{"delete"},
		Short:   "Delete a task and its subtasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := currentTask(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Session.DeleteTask(cmd.Context(), task.ID); err != nil {
				return sessionErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", task.Text)
			return nil
		},
	}
}

func newPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priority <task> [low|medium|high]",
		Short: "Set a task's priority, or cycle it when no level is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := currentTask(app, args[0])
			if err != nil {
				return err
			}
			p := task.Priority.Next()
			if len(args) == 2 {
				if p, err = domain.ParsePriority(args[1]); err != nil {
					return err
				}
			}
			if err := app.Session.SetPriority(cmd.Context(), task.ID, p); err != nil {
				return sessionErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", formatter.PriorityBadge(p), task.Text)
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(user, app.Session.Tasks()))
			return nil
		},
	}
}

// currentTask resolves ref against the logged-in user's list.
func currentTask(app *App, ref string) (domain.Task, error) {
	if _, err := app.requireUser(); err != nil {
		return domain.Task{}, err
	}
	return resolveTask(app.Session.Tasks(), ref)
}
