package cli

import (
	"context"
	"fmt"
	"strings"

	"taskchat/internal/api"
	"taskchat/internal/config"
	"taskchat/internal/format"
	"taskchat/internal/logging"
	"taskchat/internal/thread"
	"taskchat/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	Server     string
	Token      string
	DebugLog   string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskchat",
		Short:        "Task comment threads, in your terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskchat

  # Scriptable commands
  taskchat login me@example.test --password secret
  taskchat tasks list
  taskchat comments list task-1a2b3c4d

  # Local dev server with seeded accounts
  taskchat serve --db taskchat.db --seed
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&app.Server, "server", "", "Server base URL (overrides config/env)")
	cmd.PersistentFlags().StringVar(&app.Token, "token", "", "Bearer token (overrides config/env)")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", "", "Write a debug log to this path")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// loadConfig resolves effective settings: flags beat env beats file.
func loadConfig(app *App) (config.Config, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if app.Server != "" {
		cfg.ServerURL = strings.TrimRight(strings.TrimSpace(app.Server), "/")
	}
	if app.Token != "" {
		cfg.Token = app.Token
	}
	if app.DebugLog != "" {
		cfg.DebugLog = app.DebugLog
	}
	return cfg, nil
}

func apiClient(app *App) (*api.Client, config.Config, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, cfg, err
	}
	if cfg.ServerURL == "" {
		return nil, cfg, errNotConfigured("server")
	}
	client := api.New(cfg.ServerURL, api.WithToken(cfg.Token))
	return client, cfg, nil
}

func runTUI(app *App) error {
	client, cfg, err := apiClient(app)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.DebugLog, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	viewer, err := client.Profile(context.Background())
	if err != nil {
		if api.IsAuth(err) {
			return fmt.Errorf("not logged in: run `taskchat login <email>` first")
		}
		return err
	}

	return tui.Run(thread.NewRepo(client), client, viewer, logger)
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
