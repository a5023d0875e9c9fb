package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"quill/internal/notes/models"
)

// JSON is the canonical structured encoding:
//
//	{"title": "...", "content": "...", "date": {"day": 1, "month": 2, "year": 2024}}
type JSON struct{}

// Pointers distinguish a missing field from its zero value.
type jsonNote struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Date    *jsonDate `json:"date"`
}

type jsonDate struct {
	Day   *int `json:"day"`
	Month *int `json:"month"`
	Year  *int `json:"year"`
}

func (JSON) Format() Format { return FormatJSON }
func (JSON) Ext() string    { return ".json" }

func (JSON) Encode(note models.Note) ([]byte, error) {
	wire := jsonNote{
		Title:   &note.Title,
		Content: &note.Content,
		Date: &jsonDate{
			Day:   &note.Date.Day,
			Month: &note.Date.Month,
			Year:  &note.Date.Year,
		},
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return append(data, '\n'), nil
}

// Decode does not validate the date; out-of-range values are returned verbatim.
func (JSON) Decode(data []byte) (models.Note, error) {
	var wire jsonNote
	if err := json.Unmarshal(data, &wire); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "note"
			}
			return models.Note{}, fmt.Errorf("%w: %s must not be %s", ErrSchema, field, typeErr.Value)
		}
		return models.Note{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	switch {
	case wire.Title == nil:
		return models.Note{}, missing("title")
	case wire.Content == nil:
		return models.Note{}, missing("content")
	case wire.Date == nil:
		return models.Note{}, missing("date")
	case wire.Date.Day == nil:
		return models.Note{}, missing("date.day")
	case wire.Date.Month == nil:
		return models.Note{}, missing("date.month")
	case wire.Date.Year == nil:
		return models.Note{}, missing("date.year")
	}

	return models.Note{
		Title:   *wire.Title,
		Content: *wire.Content,
		Date: models.Date{
			Day:   *wire.Date.Day,
			Month: *wire.Date.Month,
			Year:  *wire.Date.Year,
		},
	}, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing required field %q", ErrSchema, field)
}
