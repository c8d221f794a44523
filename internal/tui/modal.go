package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const modalMaxBodyWidth = 60

// modalBodyWidth is the usable content width inside a modal box for the
// given terminal width.
func modalBodyWidth(termWidth int) int {
	w := termWidth - 10
	if w > modalMaxBodyWidth {
		w = modalMaxBodyWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderModalBox renders a titled modal surface sized for the given terminal
// width. Callers overlay the result on the main view with overlayCenter.
func renderModalBox(termWidth int, title string, content string) string {
	bodyW := modalBodyWidth(termWidth)

	header := lipgloss.NewStyle().
		Bold(true).
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Render(content)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Render(header + "\n\n" + body)
}

// overlayCenter centers the modal in a termWidth x termHeight canvas.
// The base view is not composited underneath; drawing the modal on a blank
// canvas avoids background-color artifacts on terminals with patchy ANSI
// support.
func overlayCenter(termWidth, termHeight int, modal string) string {
	if termWidth <= 0 || termHeight <= 0 {
		return modal
	}
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, modal)
}

func modalButtonRow(focus confirmModalFocus, confirmLabel, cancelLabel string) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)
}

func renderConfirmModal(termWidth int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	bodyW := modalBodyWidth(termWidth)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		modalButtonRow(focus, confirmLabel, cancelLabel),
		"",
		help,
	}, "\n")
	return renderModalBox(termWidth, title, content)
}
