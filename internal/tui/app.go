package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quill/internal/logs"
	"quill/internal/notes/operations"
	"quill/internal/notes/service"
	"quill/internal/tui/theme"
)

// focus identifies which pane or input receives key presses
type focus int

const (
	focusBrowser focus = iota
	focusSearch
	focusTitle
	focusContent
	focusSavePath
)

// cycle order for tab / shift+tab
var focusOrder = []focus{focusBrowser, focusTitle, focusContent, focusSavePath}

const browserWidthRatio = 3 // browser takes 1/3 of the screen

// AppModel is the root model: a notes list beside a single-note editor
type AppModel struct {
	svc           *service.Service
	browser       browserModel
	editor        editorModel
	picker        pickerModel
	picking       bool
	focus         focus
	pendingDelete string
	showHelp      bool
	width         int
	height        int
	ready         bool
}

// NewAppModel creates the root application model around an open session
func NewAppModel(svc *service.Service) AppModel {
	m := AppModel{
		svc:     svc,
		browser: newBrowserModel(),
		editor:  newEditorModel(),
		focus:   focusBrowser,
	}
	m.browser.refresh(svc)
	m.editor.load(svc)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // Reserve space for status bar
		browserWidth := max(20, msg.Width/browserWidthRatio)
		m.browser.setSize(browserWidth, contentHeight)
		m.editor.setSize(max(20, msg.Width-browserWidth), contentHeight)
		return m, nil

	case pickerResultMsg:
		m.picking = false
		if msg.Cancelled {
			return m, nil
		}
		return m.open(msg.Name)

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.pendingDelete != "" {
			return m.confirmDelete(msg)
		}
		if m.picking {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.update(msg)
			return m, cmd
		}
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}

		switch m.focus {
		case focusBrowser:
			return m.handleBrowserKey(msg)
		case focusSearch:
			return m.handleSearchKey(msg)
		}
	}

	// Remaining messages (blink ticks, typed keys) go to the focused input
	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.update(msg)
		return m, cmd
	}
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.browser.search, cmd = m.browser.search.Update(msg)
		return m, cmd
	}
	return m, m.editor.update(msg, m.focus, m.svc)
}

func (m AppModel) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+q", "ctrl+c":
		return m, tea.Quit, true

	case "ctrl+s":
		m.save()
		return m, nil, true

	case "ctrl+n", "ctrl+w":
		m.svc.NewNote()
		m.editor.load(m.svc)
		cmd := m.setFocus(focusTitle)
		return m, cmd, true

	case "ctrl+p":
		m.browser.search.Blur()
		names, err := m.svc.ListNotes("")
		if err != nil {
			logs.Logger.Printf("Quick open: %v", err)
		}
		m.picker = newPickerModel(names)
		m.picking = true
		return m, textinput.Blink, true

	case "tab":
		cmd := m.setFocus(m.nextFocus(1))
		return m, cmd, true

	case "shift+tab":
		cmd := m.setFocus(m.nextFocus(-1))
		return m, cmd, true
	}
	return m, nil, false
}

func (m AppModel) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "j", "down":
		m.browser.move(1, m.svc)
	case "k", "up":
		m.browser.move(-1, m.svc)
	case "g", "home":
		m.browser.move(-len(m.browser.entries), m.svc)
	case "G", "end":
		m.browser.move(len(m.browser.entries), m.svc)
	case "enter":
		if name, ok := m.browser.current(); ok {
			return m.open(name)
		}
	case "d", "ctrl+d":
		if name, ok := m.browser.current(); ok {
			m.pendingDelete = name
		}
	case "/":
		cmd := m.setFocus(focusSearch)
		return m, cmd
	case "esc":
		m.clearSearch()
	}
	return m, nil
}

func (m AppModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearSearch()
		cmd := m.setFocus(focusBrowser)
		return m, cmd
	case "enter", "down":
		cmd := m.setFocus(focusBrowser)
		return m, cmd
	}

	var cmd tea.Cmd
	before := m.browser.search.Value()
	m.browser.search, cmd = m.browser.search.Update(msg)
	if m.browser.search.Value() != before {
		m.browser.selected = 0
		m.browser.refresh(m.svc)
	}
	return m, cmd
}

func (m AppModel) confirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := m.pendingDelete
	m.pendingDelete = ""
	switch msg.String() {
	case "y", "Y", "enter":
		_ = m.svc.DeleteNote(name)
		m.browser.refresh(m.svc)
	}
	return m, nil
}

// open loads name into the editor; a failed load keeps the current note
func (m AppModel) open(name string) (tea.Model, tea.Cmd) {
	if _, err := m.svc.Load(name); err != nil {
		return m, nil
	}
	m.editor.load(m.svc)
	m.browser.selectName(name, m.svc)
	cmd := m.setFocus(focusContent)
	return m, cmd
}

func (m *AppModel) save() {
	if err := m.svc.Save(""); err != nil {
		return
	}
	m.editor.syncSavePath(m.svc)
	m.browser.refresh(m.svc)
	m.browser.selectName(m.svc.SavePath(), m.svc)
}

func (m *AppModel) clearSearch() {
	if m.browser.search.Value() == "" {
		return
	}
	m.browser.search.SetValue("")
	m.browser.selected = 0
	m.browser.refresh(m.svc)
}

func (m *AppModel) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusSearch {
		m.editor.focus(focusBrowser)
		return m.browser.search.Focus()
	}
	m.browser.search.Blur()
	return m.editor.focus(f)
}

func (m AppModel) nextFocus(delta int) focus {
	current := 0
	for i, f := range focusOrder {
		if f == m.focus {
			current = i
			break
		}
	}
	n := len(focusOrder)
	return focusOrder[((current+delta)%n+n)%n]
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return renderHelpPopup(helpSections, m.width, m.height)
	}
	if m.picking {
		return m.picker.view(m.width, m.height)
	}

	browserFocused := m.focus == focusBrowser || m.focus == focusSearch
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.browser.view(browserFocused, m.focus == focusSearch),
		m.editor.view(m.svc, m.focus),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m AppModel) renderStatusBar() string {
	var statusText string

	switch {
	case m.pendingDelete != "":
		statusText = theme.Error.Render("Delete " + operations.DisplayName(m.pendingDelete) + "? (y/n)")
	case m.svc.Status().Failed():
		statusText = theme.Error.Render(m.svc.Status().Message)
	case m.svc.Status().Message != "":
		statusText = theme.Ok.Render(m.svc.Status().Message)
	}

	var hints string
	switch m.focus {
	case focusBrowser:
		hints = "enter:open d:delete /:search | ctrl+s:save ctrl+n:new ctrl+p:open | ?:help q:quit"
	case focusSearch:
		hints = "type to filter | enter:done esc:clear"
	default:
		hints = "tab:next field | ctrl+s:save ctrl+n:new ctrl+p:open | ctrl+q:quit"
	}

	if statusText != "" {
		statusText += "  "
	}
	return theme.StatusBar.Width(m.width).Render(statusText + theme.HelpHint.Render(hints))
}
