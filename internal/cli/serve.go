package cli

import (
	"net/http"
	"os"

	"taskchat/internal/devserver"
	"taskchat/internal/logging"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr     string
		dbPath   string
		seed     bool
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local task manager API for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(os.Stderr, logging.ParseLevel(logLevel))

			st, err := devserver.OpenStore(cmd.Context(), dbPath)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = st.Close() }()

			if seed {
				res, err := devserver.Seed(cmd.Context(), st)
				if err != nil {
					return writeErr(cmd, err)
				}
				logger.Info("seeded accounts",
					"admin", res.AdminEmail,
					"member", res.MemberEmail,
					"password", res.Password,
					"tasks", res.TaskIDs)
			}

			srv := devserver.New(st, logger)
			logger.Info("listening", "addr", addr, "db", dbPath)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8787", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "taskchat.db", "SQLite database path (:memory: for ephemeral)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Seed demo accounts and tasks")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	return cmd
}
