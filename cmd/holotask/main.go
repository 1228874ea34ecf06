package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alexanderramin/holotask/internal/cli"
	"github.com/alexanderramin/holotask/internal/config"
	"github.com/alexanderramin/holotask/internal/db"
	"github.com/alexanderramin/holotask/internal/decompose"
	"github.com/alexanderramin/holotask/internal/llm"
	"github.com/alexanderramin/holotask/internal/logging"
	"github.com/alexanderramin/holotask/internal/repository"
	"github.com/alexanderramin/holotask/internal/session"
	"github.com/alexanderramin/holotask/internal/store"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(configFlag(args))
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	kv := repository.NewSQLiteKVRepoWithUoW(database, db.NewSQLiteUnitOfWork(database))
	holoStore := store.New(kv)

	// A nil client means decomposition always falls back.
	llmCfg := cfg.LLMSettings()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	llmClient, err := llm.NewClient(llmCfg, observer)
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			logger.Warn("language model unavailable, decomposition will fall back", "error", err)
		}
		llmClient = nil
	}

	app := &cli.App{
		Session:   session.New(holoStore, decompose.NewService(llmClient, logger), session.WithLogger(logger)),
		Users:     holoStore,
		LLM:       llmClient,
		LLMConfig: llmCfg,
		DBPath:    cfg.DBPath,
		Logger:    logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// configFlag picks --config out of args before the command tree exists,
// since the tree is built from the loaded configuration.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("holotask", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String(cli.ConfigFlag, "", "")
	_ = fs.Parse(args)
	return *path
}
