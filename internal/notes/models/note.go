package models

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidTitle is returned for an empty or whitespace-only title.
var ErrInvalidTitle = errors.New("invalid title")

// Soft limits enforced by the editing surfaces, not by the codecs.
const (
	MaxTitleLen   = 100
	MaxContentLen = 1000
)

// DefaultTitle is the title of a freshly created note
const DefaultTitle = "New Note"

// Note is a short dated text document
type Note struct {
	Title   string
	Content string
	Date    Date
}

// NewDefaultAt returns a note titled "New Note" with empty content, dated
// from the given clock reading.
func NewDefaultAt(now time.Time) Note {
	return Note{
		Title:   DefaultTitle,
		Content: "",
		Date:    DateOf(now),
	}
}

// Validate checks the structural invariants of the note. The stored date is
// not checked here: notes loaded with an out-of-range date are kept as-is.
func (n Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

// WithinLimits reports whether title and content respect the soft length limits
func (n Note) WithinLimits() bool {
	return len([]rune(n.Title)) <= MaxTitleLen && len([]rune(n.Content)) <= MaxContentLen
}
