package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"quill/internal/notes/models"
)

var (
	// ErrDecode means the bytes are not well-formed in the codec's format.
	ErrDecode = errors.New("decode error")
	// ErrSchema means the bytes are well-formed but a required field is missing or mistyped.
	ErrSchema = errors.New("schema error")
	// ErrEncode means the note cannot be represented in the codec's format.
	ErrEncode = errors.New("encode error")
	// ErrUnsupportedFormat is a decode error for files no codec claims.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported note format", ErrDecode)
)

// Format names an on-disk note encoding
type Format string

const (
	FormatJSON   Format = "json"
	FormatLegacy Format = "txt"
)

// DefaultFormat is the canonical encoding for new saves
const DefaultFormat = FormatJSON

// Codec converts a Note to and from its on-disk bytes
type Codec interface {
	Format() Format
	// Ext returns the filename extension including the dot
	Ext() string
	Encode(note models.Note) ([]byte, error)
	Decode(data []byte) (models.Note, error)
}

var codecs = map[Format]Codec{
	FormatJSON:   JSON{},
	FormatLegacy: Legacy{},
}

// Formats lists the supported formats, canonical first
func Formats() []Format {
	return []Format{FormatJSON, FormatLegacy}
}

// ParseFormat accepts a format name with or without a leading dot
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	if _, ok := codecs[f]; !ok {
		return "", fmt.Errorf("unknown note format %q", s)
	}
	return f, nil
}

// ForFormat returns the codec registered for f
func ForFormat(f Format) (Codec, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return c, nil
}

// ForFile picks the codec from a file name's extension
func ForFile(name string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, c := range codecs {
		if c.Ext() == ext {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}
