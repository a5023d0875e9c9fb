package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"quill/internal/notes/operations"
	"quill/internal/notes/service"
	"quill/internal/tui/theme"
)

// browserModel lists the notes directory with a search filter
type browserModel struct {
	search   textinput.Model
	entries  []string
	selected int
	preview  string
	err      error
	width    int
	height   int
}

func newBrowserModel() browserModel {
	ti := textinput.New()
	ti.Placeholder = "Search notes..."
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return browserModel{search: ti}
}

func (b *browserModel) setSize(width, height int) {
	b.width = width
	b.height = height
	b.search.Width = max(10, width-6)
}

// refresh re-reads the catalog; the selection stays on the same index
func (b *browserModel) refresh(svc *service.Service) {
	entries, err := svc.ListNotes(b.search.Value())
	b.err = err
	b.entries = entries
	if b.selected >= len(b.entries) {
		b.selected = max(0, len(b.entries)-1)
	}
	b.updatePreview(svc)
}

func (b *browserModel) move(delta int, svc *service.Service) {
	if len(b.entries) == 0 {
		return
	}
	b.selected = min(max(b.selected+delta, 0), len(b.entries)-1)
	b.updatePreview(svc)
}

func (b *browserModel) selectName(name string, svc *service.Service) {
	for i, entry := range b.entries {
		if entry == name {
			b.selected = i
			b.updatePreview(svc)
			return
		}
	}
}

func (b *browserModel) updatePreview(svc *service.Service) {
	name, ok := b.current()
	if !ok {
		b.preview = ""
		return
	}
	note, err := svc.ReadNote(name)
	if err != nil {
		b.preview = "unreadable"
		return
	}
	b.preview = note.Date.String() + "  " + operations.Preview(note.Content, max(20, b.width*2))
}

func (b browserModel) current() (string, bool) {
	if b.selected < 0 || b.selected >= len(b.entries) {
		return "", false
	}
	return b.entries[b.selected], true
}

func (b browserModel) view(focused, searching bool) string {
	var s strings.Builder

	s.WriteString(theme.Title.Render("Notes") + "\n")
	if searching || b.search.Value() != "" {
		s.WriteString(b.search.View() + "\n")
	}
	s.WriteString("\n")

	listHeight := max(1, b.height-8)

	switch {
	case b.err != nil:
		s.WriteString(theme.Error.Render("No notes found.") + "\n")
		s.WriteString(theme.Muted.Render(b.err.Error()) + "\n")
	case len(b.entries) == 0:
		s.WriteString(theme.Muted.Render("No notes found.") + "\n")
	default:
		start := 0
		if b.selected >= listHeight {
			start = b.selected - listHeight + 1
		}
		end := min(len(b.entries), start+listHeight)
		for i := start; i < end; i++ {
			name := truncate(operations.DisplayName(b.entries[i]), b.width-6)
			if i == b.selected {
				cursor := "  "
				if focused {
					cursor = theme.Cursor.Render("> ")
				}
				s.WriteString(cursor + theme.SelectedBg.Render(name) + "\n")
			} else {
				s.WriteString("  " + name + "\n")
			}
		}
		if len(b.entries) > listHeight {
			s.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d", b.selected+1, len(b.entries))) + "\n")
		}
	}

	if b.preview != "" {
		s.WriteString("\n" + theme.Muted.Width(max(10, b.width-4)).Render(b.preview))
	}

	style := theme.Pane
	if focused {
		style = theme.PaneFocused
	}
	return style.Width(max(10, b.width-2)).Height(max(1, b.height-2)).Render(strings.TrimRight(s.String(), "\n"))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
