package operations

import (
	"path/filepath"
	"strconv"
	"strings"

	"quill/internal/notes/codec"
)

// SavePathFor derives the default file name of a note: "<title><ext>".
// The title is used verbatim; names the catalog cannot store fail at save time.
func SavePathFor(title, ext string) string {
	return title + ext
}

// DisplayName strips a known note extension for listing
// "Ideas.json" -> "Ideas", "photo.png" -> "photo.png"
func DisplayName(fileName string) string {
	if _, err := codec.ForFile(fileName); err != nil {
		return fileName
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// FileSafe replaces characters that cannot appear in a flat file name
// "Plans 2024/2025" -> "Plans 2024_2025"
func FileSafe(title string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(title))

	if s == "" || s == "." || s == ".." {
		s = "note"
	}
	return s
}

// UniqueFileName finds a free name for base+ext.
// If base.json exists (and isn't currentFile), tries base_2.json, base_3.json, etc.
func UniqueFileName(base, ext, currentFile string, exists func(string) bool) string {
	candidate := base + ext
	if !exists(candidate) || candidate == currentFile {
		return candidate
	}

	for i := 2; ; i++ {
		candidate = base + "_" + strconv.Itoa(i) + ext
		if !exists(candidate) || candidate == currentFile {
			return candidate
		}
	}
}
