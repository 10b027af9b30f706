package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"Switchback/commands"
	"Switchback/internal/items"
	"Switchback/internal/logic"
	"Switchback/internal/settings"
)

func main() {
	flags := pflag.NewFlagSet("switchback", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	settingsPath := flags.String("settings", "", "YAML settings file consulted by item classification")
	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	noColor := flags.Bool("no-color", false, "Disable ANSI styling in command output")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: switchback [flags] <command> [args]\n\n%s", flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(*logLevel))); err != nil {
		fmt.Fprintf(os.Stderr, "invalid --log-level %q\n", *logLevel)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := settings.Default()
	if path := strings.TrimSpace(*settingsPath); path != "" {
		loaded, err := settings.Load(path)
		if err != nil {
			logger.Error("load settings", "path", path, "err", err)
			os.Exit(1)
		}
		cfg = loaded
		logger.Info("loaded settings", "path", path)
	}

	registry, err := items.DefaultRegistry()
	if err != nil {
		logger.Error("load item table", "err", err)
		os.Exit(1)
	}

	env := commands.Env{
		Registry: registry,
		Settings: cfg,
		Compiler: logic.NewCompiler(registry),
		Logger:   logger,
		Out:      os.Stdout,
		Color:    !*noColor && os.Getenv("NO_COLOR") == "",
	}
	if err := commands.Dispatch(env, flags.Args()); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}
