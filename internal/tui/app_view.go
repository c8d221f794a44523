package tui

import (
	"fmt"
	"strings"
	"time"

	"taskchat/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirmOpen {
		n := m.sess.State.Len()
		body := fmt.Sprintf("Delete all %d comments in this thread? This cannot be undone.", n)
		modal := renderConfirmModal(m.width, "Delete all comments", body, "Delete all", "Cancel", m.confirmFocus)
		return overlayCenter(m.width, m.height, modal)
	}
	switch m.view {
	case viewTasks:
		return m.tasksList.View()
	case viewThread:
		return m.viewThreadScreen()
	}
	return ""
}

func (m appModel) viewThreadScreen() string {
	// Bottom-up budget: flash on the last row, compose above it, the emoji
	// surface (when open) above that at the rect it registered with the
	// dismissal watcher. Everything else is thread body.
	bodyRows := m.height - 2
	var emojiBox string
	if m.emoji.open {
		emojiBox = m.emoji.render()
		bodyRows = m.emoji.y
	}
	if bodyRows < 0 {
		bodyRows = 0
	}

	lines := fitLines(m.renderHeaderAndThread(), bodyRows, m.width)
	if m.emoji.open {
		for _, l := range strings.Split(emojiBox, "\n") {
			lines = append(lines, "  "+l)
		}
	}
	lines = append(lines, m.renderComposeLine(), m.renderFlashLine())
	return strings.Join(lines, "\n")
}

func (m appModel) renderHeaderAndThread() []string {
	title := lipgloss.NewStyle().Bold(true).Render(m.taskTitle)
	who := styleMuted().Render(fmt.Sprintf("%s (%s)", m.viewer().Name, m.viewer().Role))
	header := title + "  " + who

	lines := []string{header, ""}
	if m.loadingThread {
		lines = append(lines, styleMuted().Render("Loading thread…"))
		return lines
	}
	cs := m.sess.State.Comments()
	if len(cs) == 0 {
		lines = append(lines, styleMuted().Render("No comments yet. Say something."))
		return lines
	}
	for i, c := range cs {
		lines = append(lines, m.renderCommentRows(c, i)...)
	}
	return lines
}

func (m appModel) renderCommentRows(c model.Comment, idx int) []string {
	atCursor := m.focus == focusThread && idx == m.cursor
	selected := m.sess.Sel.ID() == c.ID
	editing := m.sess.Edit.Active() && m.sess.Edit.CommentID() == c.ID

	authorStyle := lipgloss.NewStyle().Bold(true)
	if c.OwnedBy(m.viewer().ID) {
		authorStyle = authorStyle.Foreground(colorOwnAuthor)
	}
	meta := authorStyle.Render(c.Author.Name) + "  " + styleMuted().Render(relTime(c.CreatedAt, time.Now()))
	if c.Edited {
		meta += " " + styleMuted().Render("(edited)")
	}

	marker := "  "
	if atCursor {
		marker = lipgloss.NewStyle().Foreground(colorAccent).Render("> ")
	}

	rows := []string{marker + meta}
	if editing {
		rows = append(rows, "  "+m.editInput.View())
		rows = append(rows, "  "+styleMuted().Render("enter: save   esc: cancel   ctrl+e: emoji"))
	} else {
		bodyW := m.width - 4
		for _, l := range strings.Split(renderMarkdown(c.Text, bodyW), "\n") {
			rows = append(rows, "  "+l)
		}
		if selected {
			rows = append(rows, "  "+styleMuted().Render("[e] edit   [d] delete"))
		}
	}
	rows = append(rows, "")
	return rows
}

func (m appModel) renderComposeLine() string {
	if m.sess.Edit.Active() {
		return styleMuted().Render("  editing a comment above…")
	}
	prompt := "> "
	if m.focus != focusCompose {
		prompt = styleMuted().Render("  tab: compose   e: edit   d: delete   ctrl+d: delete all   ctrl+e: emoji")
		return prompt
	}
	return prompt + m.compose.View()
}

func (m appModel) renderFlashLine() string {
	if m.flashText == "" {
		return ""
	}
	if m.flashErr {
		return styleError().Render(m.flashText)
	}
	return styleMuted().Render(m.flashText)
}

// fitLines clips each line to the pane width and pads or truncates the slice
// to exactly n rows so content below it lands at a fixed screen position.
func fitLines(lines []string, n, width int) []string {
	out := make([]string, 0, n)
	start := 0
	if len(lines) > n {
		start = len(lines) - n
	}
	for _, l := range lines[start:] {
		out = append(out, xansi.Truncate(l, width, "…"))
	}
	for len(out) < n {
		out = append(out, "")
	}
	return out
}
