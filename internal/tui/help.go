package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quill/internal/tui/theme"
)

type helpBind struct {
	Key  string
	Desc string
}

type helpSection struct {
	Title string
	Binds []helpBind
}

var helpSections = []helpSection{
	{
		Title: "Global",
		Binds: []helpBind{
			{"ctrl+s", "Save note"},
			{"ctrl+n/ctrl+w", "New note"},
			{"ctrl+p", "Quick open"},
			{"tab/shift+tab", "Next/previous field"},
			{"ctrl+q", "Quit"},
		},
	},
	{
		Title: "Notes list",
		Binds: []helpBind{
			{"j/k, ↑/↓", "Move selection"},
			{"enter", "Open note"},
			{"d/ctrl+d", "Delete note"},
			{"/", "Search"},
			{"esc", "Clear search"},
			{"?", "Show this help"},
			{"q", "Quit"},
		},
	},
}

// renderHelpPopup renders a centered help popup with the given sections
func renderHelpPopup(sections []helpSection, width, height int) string {
	line := func(key, desc string) string {
		return "  " + theme.HelpKey.Width(16).Render(key) + lipgloss.NewStyle().Foreground(theme.Text).Render(desc)
	}

	var content strings.Builder
	content.WriteString(theme.Title.Render("Quill - Keyboard Shortcuts") + "\n\n")
	for i, section := range sections {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(theme.Subtitle.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			content.WriteString(line(bind.Key, bind.Desc) + "\n")
		}
	}
	content.WriteString("\n" + theme.Muted.Render("Press any key to close"))

	box := theme.ModalBox.Render(content.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
