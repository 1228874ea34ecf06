package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/holotask/internal/cli/formatter"
	"github.com/alexanderramin/holotask/internal/store"
	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check storage and language model settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LLMConfig
			rows := [][]string{
				{"Database", app.DBPath},
				{"Users", usersStatus(cmd.Context(), app.Users)},
			}

			status := formatter.Dim("disabled")
			if app.LLM != nil {
				if app.LLM.Available(cmd.Context()) {
					status = formatter.StyleGreen.Render("reachable")
				} else {
					status = formatter.StyleRed.Render("unreachable")
				}
				rows = append(rows,
					[]string{"Provider", string(cfg.Provider)},
					[]string{"Endpoint", cfg.Endpoint},
					[]string{"Model", cfg.Model},
					[]string{"Timeout", timeoutLabel(cfg.TimeoutMs)},
				)
			}
			rows = append(rows, []string{"Decomposition", status})

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"CHECK", "VALUE"}, rows))
			return nil
		},
	}
}

func timeoutLabel(ms int) string {
	if ms <= 0 {
		return "none"
	}
	return fmt.Sprintf("%dms", ms)
}

func usersStatus(ctx context.Context, users UserDirectory) string {
	stored, err := users.GetUsers(ctx)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		return formatter.StyleRed.Render("corrupt (move the database aside to start over)")
	case err != nil:
		return formatter.StyleRed.Render(err.Error())
	default:
		return fmt.Sprintf("%d stored", len(stored))
	}
}
