package cli

import (
	"taskchat/internal/thread"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Comment commands",
	}
	cmd.AddCommand(newCommentsListCmd(app))
	cmd.AddCommand(newCommentsAddCmd(app))
	cmd.AddCommand(newCommentsEditCmd(app))
	cmd.AddCommand(newCommentsDeleteCmd(app))
	cmd.AddCommand(newCommentsClearCmd(app))
	return cmd
}

// commentRepo applies the same client-side rules as the TUI (blank-text
// rejection, display ordering) so scripts see identical behavior.
func commentRepo(app *App) (*thread.Repo, error) {
	client, _, err := apiClient(app)
	if err != nil {
		return nil, err
	}
	return thread.NewRepo(client), nil
}

func newCommentsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's comments, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := commentRepo(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			comments, err := repo.FetchAll(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": comments})
		},
	}
}

func newCommentsAddCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := commentRepo(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := repo.Add(cmd.Context(), args[0], text)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Comment text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newCommentsEditCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "edit <task-id> <comment-id>",
		Short: "Replace a comment's text (author only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := commentRepo(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := repo.Edit(cmd.Context(), args[0], args[1], text)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Replacement text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newCommentsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id> <comment-id>",
		Short: "Delete a comment (author only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := commentRepo(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := repo.Remove(cmd.Context(), args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[1]}})
		},
	}
}

func newCommentsClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear <task-id>",
		Short: "Delete every comment in a thread (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errConfirmRequired("clear thread", args[0]))
			}
			repo, err := commentRepo(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := repo.RemoveAll(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"cleared": args[0]}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation check")
	return cmd
}
