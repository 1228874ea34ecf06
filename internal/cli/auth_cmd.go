package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/holotask/internal/cli/formatter"
	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Log in, creating the user on first use",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			switch {
			case len(args) == 1:
				name = args[0]
			case app.PromptUsername != nil:
				var err error
				if name, err = app.PromptUsername(); err != nil {
					return err
				}
			case app.interactive():
				var err error
				if name, err = promptUsername(); err != nil {
					return err
				}
			default:
				return errors.New("username required")
			}

			if err := app.Session.Login(cmd.Context(), name); err != nil {
				return err
			}
			user, _ := app.Session.User()
			n := len(app.Session.Tasks())
			fmt.Fprintf(cmd.OutOrStdout(), "Uplink established. Welcome, %s. %d objective(s) on record.\n",
				formatter.Bold(user), n)
			return nil
		},
	}
}

func promptUsername() (string, error) {
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Commander ID").
				Placeholder("nova").
				Value(&name).
				Validate(validateUsername),
		),
	).WithTheme(holoHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return name, nil
}

func validateUsername(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("commander ID is required")
	}
	return nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out (stored tasks are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := app.Session.User()
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Uplink closed for %s.\n", user)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			}
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := app.Session.User()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List stored users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.GetUsers(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users stored.")
				return nil
			}

			names := make([]string, 0, len(users))
			for name := range users {
				names = append(names, name)
			}
			sort.Strings(names)

			current, _ := app.Session.User()
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				tasks := users[name].Tasks
				label := name
				if name == current {
					label = formatter.StyleCyan.Render("● " + name)
				}
				rows = append(rows, []string{
					label,
					fmt.Sprintf("%d", len(tasks)),
					formatter.RenderProgress(domain.CompletionRate(tasks), 10),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"USER", "TASKS", "COMPLETION"}, rows))
			return nil
		},
	}
}

func newForgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <username>",
		Short: "Delete a stored user and all their tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := domain.NormalizeUsername(args[0])
			if current, ok := app.Session.User(); ok && current == name {
				if err := app.Session.Logout(ctx); err != nil {
					return err
				}
			}
			if err := app.Users.DeleteUser(ctx, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s.\n", name)
			return nil
		},
	}
}
