package tui

import (
	"strings"

	"taskchat/internal/thread"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark-emoji/definition"
)

// The picker offers a curated subset of the GitHub emoji table rather than
// all ~1800 entries; a full searchable picker is not worth the screen estate
// in a thread pane.
var emojiShortNames = []string{
	"smile", "grin", "joy", "wink", "sweat_smile",
	"thinking", "sob", "heart", "tada", "sparkles",
	"thumbsup", "thumbsdown", "clap", "wave", "pray",
	"muscle", "fire", "rocket", "eyes", "100",
}

const emojiColumns = 5

func emojiGlyphs() []string {
	table := definition.Github()
	out := make([]string, 0, len(emojiShortNames))
	for _, name := range emojiShortNames {
		e, ok := table.Get(name)
		if !ok || !e.IsUnicode() {
			continue
		}
		out = append(out, string(e.Unicode))
	}
	return out
}

// emojiSurface is the transient emoji-insertion overlay. While open it holds
// a DismissalWatcher subscription covering its on-screen rectangle; an
// outside pointer-down drops the subscription, which the update loop
// translates into closing the surface.
type emojiSurface struct {
	open   bool
	sel    int
	glyphs []string
	handle thread.Handle

	// Rectangle in screen cells, fixed at open time.
	x, y, w, h int
}

func (e *emojiSurface) openAt(w *thread.Watcher, x, y, width, height int) {
	if e.open {
		return
	}
	if len(e.glyphs) == 0 {
		e.glyphs = emojiGlyphs()
	}
	e.open = true
	e.sel = 0
	e.x, e.y, e.w, e.h = x, y, width, height
	e.handle = w.Subscribe(e.contains, nil)
}

func (e *emojiSurface) close(w *thread.Watcher) {
	if !e.open {
		return
	}
	e.open = false
	w.Unsubscribe(e.handle)
}

func (e *emojiSurface) contains(x, y int) bool {
	return x >= e.x && x < e.x+e.w && y >= e.y && y < e.y+e.h
}

// selected returns the glyph under the cursor.
func (e *emojiSurface) selected() string {
	if e.sel < 0 || e.sel >= len(e.glyphs) {
		return ""
	}
	return e.glyphs[e.sel]
}

func (e *emojiSurface) move(dx, dy int) {
	n := len(e.glyphs)
	if n == 0 {
		return
	}
	next := e.sel + dx + dy*emojiColumns
	if next < 0 || next >= n {
		return
	}
	e.sel = next
}

func (e *emojiSurface) render() string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	cur := cell.
		Background(colorSelectedBg).
		Foreground(colorSelectedFg)

	var rows []string
	for start := 0; start < len(e.glyphs); start += emojiColumns {
		end := start + emojiColumns
		if end > len(e.glyphs) {
			end = len(e.glyphs)
		}
		var cells []string
		for i := start; i < end; i++ {
			st := cell
			if i == e.sel {
				st = cur
			}
			cells = append(cells, st.Render(e.glyphs[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	help := styleMuted().Render("enter: insert  esc: close")
	body := strings.Join(append(rows, "", help), "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Render(body)
}
