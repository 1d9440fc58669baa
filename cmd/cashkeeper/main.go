package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path"

	"github.com/SscSPs/cashkeeper/internal/cli"
	"github.com/SscSPs/cashkeeper/internal/platform/config"
	"github.com/SscSPs/cashkeeper/internal/utils"
	"github.com/google/subcommands"
)

func main() {
	currency := flag.String("currency", utils.LedgerCurrency, "ISO currency code used to display amounts")
	verbose := flag.Bool("v", false, "Log store activity to stderr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var app cli.App
	cli.Register(commander, &app)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	app = *cli.NewApp(cfg, os.Stdout, os.Stderr, *currency, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
