package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSavePathFor(t *testing.T) {
	assert.Equal(t, "New Note.json", SavePathFor("New Note", ".json"))
	assert.Equal(t, "Ideas.txt", SavePathFor("Ideas", ".txt"))
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ideas.json", "Ideas"},
		{"Old.TXT", "Old"},
		{"archive.tar.json", "archive.tar"},
		{"photo.png", "photo.png"},
		{"README", "README"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DisplayName(tt.input), tt.input)
	}
}

func TestFileSafe(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Plans 2024/2025", "Plans 2024_2025"},
		{`back\slash`, "back_slash"},
		{"  spaced  ", "spaced"},
		{"", "note"},
		{"..", "note"},
		{"Ünïcode", "Ünïcode"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FileSafe(tt.input), tt.input)
	}
}

func TestUniqueFileName(t *testing.T) {
	taken := map[string]bool{"Ideas.json": true, "Ideas_2.json": true}
	exists := func(name string) bool { return taken[name] }

	assert.Equal(t, "Fresh.json", UniqueFileName("Fresh", ".json", "", exists))
	assert.Equal(t, "Ideas_3.json", UniqueFileName("Ideas", ".json", "", exists))
	assert.Equal(t, "Ideas.json", UniqueFileName("Ideas", ".json", "Ideas.json", exists))
}
