package tui

import (
	"log/slog"

	"taskchat/internal/model"
	"taskchat/internal/thread"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive thread client. Mouse cell motion is enabled so
// outside clicks can dismiss transient surfaces like the emoji picker.
func Run(repo *thread.Repo, tasks taskLister, viewer model.Viewer, logger *slog.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(repo, tasks, viewer, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
