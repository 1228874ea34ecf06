package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/alexanderramin/holotask/internal/llm"
	"github.com/alexanderramin/holotask/internal/session"
)

var errNotLoggedIn = errors.New("not logged in (run `holotask login <username>`)")

// UserDirectory lists and removes stored users. *store.HoloStore implements it.
type UserDirectory interface {
	GetUsers(ctx context.Context) (map[string]domain.User, error)
	DeleteUser(ctx context.Context, username string) error
}

// App holds everything the commands and the TUI need.
type App struct {
	Session *session.Controller
	Users   UserDirectory

	// LLM is nil when decomposition is disabled.
	LLM       llm.LLMClient
	LLMConfig llm.LLMConfig
	DBPath    string
	Logger    *slog.Logger

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// PromptUsername asks for a username when login gets no argument.
	// Nil uses a huh form.
	PromptUsername func() (string, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// requireUser returns the logged-in username or errNotLoggedIn.
func (a *App) requireUser() (string, error) {
	name, ok := a.Session.User()
	if !ok {
		return "", errNotLoggedIn
	}
	return name, nil
}

// sessionErr replaces session.ErrNoSession with the user-facing hint.
func sessionErr(err error) error {
	if errors.Is(err, session.ErrNoSession) {
		return errNotLoggedIn
	}
	return err
}
