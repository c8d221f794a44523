package cli

import (
	"fmt"
	"strings"

	"taskchat/internal/config"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := apiClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			email := strings.TrimSpace(args[0])

			sess, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return writeErr(cmd, err)
			}

			cfg.Token = sess.Token
			if err := config.Save(app.ConfigPath, cfg); err != nil {
				return writeErr(cmd, fmt.Errorf("save config: %w", err))
			}
			return writeOut(cmd, app, map[string]any{"data": sess.Viewer})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
