package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/notes/models"
	"quill/internal/notes/service"
	"quill/internal/tui/theme"
)

const maxFileNameLen = 255

// editorModel holds the inputs bound to the open note and its save path
type editorModel struct {
	title    textinput.Model
	content  textarea.Model
	savePath textinput.Model
	width    int
	height   int
}

func newEditorModel() editorModel {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = models.MaxTitleLen

	content := textarea.New()
	content.Placeholder = "Write something..."
	content.CharLimit = models.MaxContentLen
	content.ShowLineNumbers = false
	content.SetHeight(15)

	savePath := textinput.New()
	savePath.Placeholder = "file name"
	savePath.Prompt = ""
	savePath.CharLimit = maxFileNameLen

	return editorModel{title: title, content: content, savePath: savePath}
}

func (e *editorModel) setSize(width, height int) {
	e.width = width
	e.height = height
	inner := max(10, width-4)
	e.title.Width = inner
	e.savePath.Width = inner
	e.content.SetWidth(inner)
	e.content.SetHeight(max(3, height-12))
}

// load copies the open note and save path into the inputs
func (e *editorModel) load(svc *service.Service) {
	note := svc.Note()

	// Stored notes may already exceed the soft limits; widen the cap so
	// nothing is cut on load.
	e.title.CharLimit = 0
	e.title.SetValue(note.Title)
	e.title.CharLimit = max(models.MaxTitleLen, utf8.RuneCountInString(e.title.Value()))
	e.title.CursorEnd()

	e.content.CharLimit = 0
	e.content.SetValue(note.Content)
	e.content.CharLimit = max(models.MaxContentLen, e.content.Length())

	e.syncSavePath(svc)
}

func (e *editorModel) syncSavePath(svc *service.Service) {
	e.savePath.SetValue(svc.SavePath())
	e.savePath.CursorEnd()
}

// focus moves keyboard focus to the input for f, blurring the others
func (e *editorModel) focus(f focus) tea.Cmd {
	e.title.Blur()
	e.content.Blur()
	e.savePath.Blur()

	switch f {
	case focusTitle:
		return e.title.Focus()
	case focusContent:
		return e.content.Focus()
	case focusSavePath:
		return e.savePath.Focus()
	}
	return nil
}

// update feeds msg to the focused input and pushes edits into the service
func (e *editorModel) update(msg tea.Msg, f focus, svc *service.Service) tea.Cmd {
	var cmd tea.Cmd

	switch f {
	case focusTitle:
		before := e.title.Value()
		e.title, cmd = e.title.Update(msg)
		if e.title.Value() != before {
			svc.SetTitle(e.title.Value())
			if !svc.SavePathRecord().Overridden() {
				e.syncSavePath(svc)
			}
		}
	case focusContent:
		before := e.content.Value()
		e.content, cmd = e.content.Update(msg)
		if e.content.Value() != before {
			svc.SetContent(e.content.Value())
		}
	case focusSavePath:
		before := e.savePath.Value()
		e.savePath, cmd = e.savePath.Update(msg)
		if e.savePath.Value() != before {
			svc.SetSavePath(e.savePath.Value())
		}
	}

	return cmd
}

func (e editorModel) view(svc *service.Service, f focus) string {
	var s strings.Builder

	s.WriteString(theme.Title.Render("Journal Entry") + "\n\n")

	s.WriteString(theme.Label.Render("Title:") + "\n")
	s.WriteString(e.title.View() + "\n\n")

	s.WriteString(theme.Label.Render("Content:") + "\n")
	s.WriteString(e.content.View() + "\n\n")

	date := svc.Note().Date
	dateText := "Date: " + date.String()
	if !date.IsValid() {
		dateText += " (invalid)"
	}
	s.WriteString(theme.Date.Render(dateText) + "\n\n")

	pathLabel := "Save Path:"
	if svc.SavePathRecord().Overridden() {
		pathLabel = "Save Path (pinned):"
	}
	s.WriteString(theme.Label.Render(pathLabel) + "\n")
	s.WriteString(e.savePath.View())

	style := theme.Pane
	if f == focusTitle || f == focusContent || f == focusSavePath {
		style = theme.PaneFocused
	}
	return style.Width(max(10, e.width-2)).Render(s.String())
}
