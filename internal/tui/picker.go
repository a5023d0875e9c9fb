package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"quill/internal/notes/operations"
	"quill/internal/tui/theme"
)

const pickerRows = 10

// pickerModel is the quick-open overlay: fuzzy search over every note
type pickerModel struct {
	input    textinput.Model
	names    []string
	filtered []int // indices into names
	selected int
}

// pickerResultMsg is sent when the picker closes
type pickerResultMsg struct {
	Name      string
	Cancelled bool
}

func newPickerModel(names []string) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Jump to note..."
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	p := pickerModel{input: ti, names: names}
	p.applyFilter()
	return p
}

// rankNames orders names by fuzzy match against their display names
func rankNames(query string, names []string) []int {
	if query == "" {
		idx := make([]int, len(names))
		for i := range names {
			idx[i] = i
		}
		return idx
	}

	display := make([]string, len(names))
	for i, name := range names {
		display[i] = operations.DisplayName(name)
	}
	matches := fuzzy.Find(query, display)
	idx := make([]int, len(matches))
	for i, match := range matches {
		idx[i] = match.Index
	}
	return idx
}

func (p *pickerModel) applyFilter() {
	p.filtered = rankNames(p.input.Value(), p.names)
	if p.selected >= len(p.filtered) {
		p.selected = max(0, len(p.filtered)-1)
	}
}

func (p pickerModel) update(msg tea.Msg) (pickerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return p, func() tea.Msg { return pickerResultMsg{Cancelled: true} }
		case "enter":
			if len(p.filtered) == 0 {
				return p, nil
			}
			name := p.names[p.filtered[p.selected]]
			return p, func() tea.Msg { return pickerResultMsg{Name: name} }
		case "down", "ctrl+n":
			if p.selected < len(p.filtered)-1 {
				p.selected++
			}
			return p, nil
		case "up", "ctrl+p":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
		p.applyFilter()
	}
	return p, cmd
}

func (p pickerModel) view(width, height int) string {
	var s strings.Builder

	s.WriteString(theme.ModalTitle.Render("Open note") + "\n\n")
	s.WriteString(p.input.View() + "\n\n")

	if len(p.filtered) == 0 {
		s.WriteString(theme.Muted.Render("No matches") + "\n")
	}

	start := 0
	if p.selected >= pickerRows {
		start = p.selected - pickerRows + 1
	}
	end := min(len(p.filtered), start+pickerRows)
	for i := start; i < end; i++ {
		name := operations.DisplayName(p.names[p.filtered[i]])
		if i == p.selected {
			s.WriteString(theme.Cursor.Render("> ") + theme.SelectedBg.Render(name) + "\n")
		} else {
			s.WriteString("  " + name + "\n")
		}
	}

	s.WriteString("\n" + theme.HelpHint.Render("enter:open  ↑/↓:move  esc:cancel"))

	box := theme.ModalBox.Render(s.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
