package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"quill/internal/notes/models"
)

const (
	legacyTitlePrefix = "Title:"
	legacyDatePrefix  = "Date:"
)

// Legacy is the positional plain-text encoding:
//
//	Title: <title>
//	Date: dd-mm-yyyy
//
//	<content>
type Legacy struct{}

func (Legacy) Format() Format { return FormatLegacy }
func (Legacy) Ext() string    { return ".txt" }

func (Legacy) Encode(note models.Note) ([]byte, error) {
	if strings.ContainsAny(note.Title, "\r\n") {
		return nil, fmt.Errorf("%w: plain-text notes cannot have a multi-line title", ErrEncode)
	}
	var b strings.Builder
	b.WriteString(legacyTitlePrefix + " " + note.Title + "\n")
	b.WriteString(legacyDatePrefix + " " + note.Date.String() + "\n")
	b.WriteString("\n")
	b.WriteString(note.Content)
	return []byte(b.String()), nil
}

func (Legacy) Decode(data []byte) (models.Note, error) {
	if !utf8.Valid(data) {
		return models.Note{}, fmt.Errorf("%w: not UTF-8 text", ErrDecode)
	}

	// title, date, blank separator, content
	lines := strings.SplitN(string(data), "\n", 4)
	if len(lines) < 2 {
		return models.Note{}, missing("date")
	}

	titleLine := strings.TrimSuffix(lines[0], "\r")
	if !strings.HasPrefix(titleLine, legacyTitlePrefix) {
		return models.Note{}, missing("title")
	}
	title := strings.TrimPrefix(strings.TrimPrefix(titleLine, legacyTitlePrefix), " ")

	dateLine := strings.TrimSuffix(lines[1], "\r")
	if !strings.HasPrefix(dateLine, legacyDatePrefix) {
		return models.Note{}, missing("date")
	}
	date, err := models.ScanDate(strings.TrimPrefix(dateLine, legacyDatePrefix))
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrSchema, err)
	}

	var content string
	if len(lines) > 2 {
		if strings.TrimSpace(lines[2]) != "" {
			return models.Note{}, fmt.Errorf("%w: expected blank line after date", ErrDecode)
		}
		if len(lines) == 4 {
			content = lines[3]
		}
	}

	return models.Note{Title: title, Content: content, Date: date}, nil
}
