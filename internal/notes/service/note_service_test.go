package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/notes/codec"
	"quill/internal/notes/fs"
	"quill/internal/notes/models"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.Local)

func newTestService(t *testing.T, format codec.Format) (*Service, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "notes")
	svc, err := NewService(fs.NewCatalog(dir, ""), format, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return svc, dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewService_UnknownFormat(t *testing.T) {
	_, err := NewService(fs.NewCatalog(t.TempDir(), ""), codec.Format("xml"))
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
}

func TestNewNote_Defaults(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)

	n := svc.Note()
	assert.Equal(t, "New Note", n.Title)
	assert.Equal(t, "", n.Content)
	assert.Equal(t, models.Date{Day: 19, Month: 10, Year: 2026}, n.Date)
	assert.Equal(t, "New Note.json", svc.SavePath())
	assert.False(t, svc.SavePathRecord().Overridden())
	assert.Equal(t, Status{}, svc.Status())

	// no filesystem access until something is saved or listed
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveDefault_ThenLoad(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	saved := svc.Note()

	require.NoError(t, svc.Save(""))
	assert.Equal(t, "Note saved successfully!", svc.Status().Message)

	path := filepath.Join(dir, "New Note.json")
	decoded, err := codec.JSON{}.Decode([]byte(readFile(t, path)))
	require.NoError(t, err)
	assert.Equal(t, saved, decoded)

	svc.NewNote()
	svc.SetTitle("Something else")
	loaded, err := svc.Load("New Note.json")
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Equal(t, saved, svc.Note())
}

func TestSaveDefault_LegacyFormat(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatLegacy)

	assert.Equal(t, "New Note.txt", svc.SavePath())
	require.NoError(t, svc.Save(""))

	content := readFile(t, filepath.Join(dir, "New Note.txt"))
	assert.Equal(t, "Title: New Note\nDate: 19-10-2026\n\n", content)

	loaded, err := svc.Load("New Note.txt")
	require.NoError(t, err)
	assert.Equal(t, "New Note", loaded.Title)
}

func TestSavePath_FollowsTitleWithoutOverride(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)

	svc.SetTitle("Ideas")
	assert.Equal(t, "Ideas.json", svc.SavePath())
	require.NoError(t, svc.Save(""))

	svc.SetTitle("Ideas v2")
	assert.Equal(t, "Ideas v2.json", svc.SavePath())
	require.NoError(t, svc.Save(""))

	assert.FileExists(t, filepath.Join(dir, "Ideas.json"))
	assert.FileExists(t, filepath.Join(dir, "Ideas v2.json"))
}

func TestSavePath_OverrideIsSticky(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)

	svc.SetTitle("Ideas")
	svc.SetSavePath("brainstorm.json")
	svc.SetTitle("Ideas v2")
	assert.Equal(t, "brainstorm.json", svc.SavePath())
	assert.True(t, svc.SavePathRecord().Overridden())
	assert.Equal(t, "Ideas v2.json", svc.SavePathRecord().Derived)

	require.NoError(t, svc.Save(""))
	assert.FileExists(t, filepath.Join(dir, "brainstorm.json"))
	assert.NoFileExists(t, filepath.Join(dir, "Ideas v2.json"))

	svc.NewNote()
	assert.Equal(t, "New Note.json", svc.SavePath())
	assert.False(t, svc.SavePathRecord().Overridden())
	assert.Equal(t, Status{}, svc.Status())
}

func TestSave_ExplicitPathBecomesOverride(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)

	require.NoError(t, svc.Save("pinned.json"))
	svc.SetTitle("Renamed")
	require.NoError(t, svc.Save(""))

	assert.FileExists(t, filepath.Join(dir, "pinned.json"))
	assert.NoFileExists(t, filepath.Join(dir, "Renamed.json"))
}

func TestSetSavePath_EmptyClearsOverride(t *testing.T) {
	svc, _ := newTestService(t, codec.FormatJSON)

	svc.SetSavePath("x.json")
	svc.SetSavePath("")
	svc.SetTitle("Back")
	assert.Equal(t, "Back.json", svc.SavePath())
}

func TestDeriveDefaultSavePath_DependsOnlyOnTitle(t *testing.T) {
	svc, _ := newTestService(t, codec.FormatJSON)

	n := models.Note{Title: "Plan", Content: "a", Date: models.Date{Day: 1, Month: 1, Year: 2020}}
	base := svc.DeriveDefaultSavePath(n)

	n.Content = "b"
	n.Date = models.Date{Day: 2, Month: 2, Year: 2021}
	assert.Equal(t, base, svc.DeriveDefaultSavePath(n))

	n.Title = "Plan B"
	assert.NotEqual(t, base, svc.DeriveDefaultSavePath(n))
}

func TestSave_ExtensionSelectsCodec(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	svc.SetTitle("Export")
	svc.SetContent("body")

	require.NoError(t, svc.Save("export.txt"))
	assert.True(t, strings.HasPrefix(readFile(t, filepath.Join(dir, "export.txt")), "Title: Export\n"))

}

func TestSave_NameWithoutNoteExtension(t *testing.T) {
	for _, name := range []string{"My Plans", "plans.md"} {
		t.Run(name, func(t *testing.T) {
			svc, dir := newTestService(t, codec.FormatJSON)
			svc.SetTitle("Plans")
			svc.SetContent("body")

			require.NoError(t, svc.Save(name))
			assert.NoFileExists(t, filepath.Join(dir, name))
			assert.Equal(t, name+".json", svc.SavePath())
			assert.True(t, svc.SavePathRecord().Overridden())

			listed, err := svc.ListNotes("")
			require.NoError(t, err)
			assert.Equal(t, []string{name + ".json"}, listed)

			svc.NewNote()
			loaded, err := svc.Load(name + ".json")
			require.NoError(t, err)
			assert.Equal(t, "body", loaded.Content)
		})
	}
}

func TestSave_TypedOverrideGainsExtension(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatLegacy)
	svc.SetSavePath("journal")

	require.NoError(t, svc.Save(""))
	assert.FileExists(t, filepath.Join(dir, "journal.txt"))
	assert.Equal(t, "journal.txt", svc.SavePath())
}

func TestSave_FailedNameIsNotPinned(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)

	err := svc.Save("bad/name.json")
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, fs.ErrFile)
	assert.False(t, svc.SavePathRecord().Overridden())
	assert.Equal(t, "New Note.json", svc.SavePath())

	require.NoError(t, svc.Save(""))
	assert.FileExists(t, filepath.Join(dir, "New Note.json"))
}

func TestSave_FailureLeavesExistingFile(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	svc.SetTitle("Keep")
	svc.SetContent("v1")
	require.NoError(t, svc.Save(""))
	before := readFile(t, filepath.Join(dir, "Keep.json"))

	svc.SetTitle("   ")
	err := svc.Save("Keep.json")
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, models.ErrInvalidTitle)
	assert.True(t, svc.Status().Failed())
	assert.Equal(t, before, readFile(t, filepath.Join(dir, "Keep.json")))
}

func TestSave_InvalidFileName(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	svc.SetTitle("Plans 2024/2025")

	err := svc.Save("")
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, fs.ErrFile)
	assert.True(t, strings.HasPrefix(svc.Status().Message, "Error saving note"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_TargetIsDirectory(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "New Note.json"), 0755))

	err := svc.Save("")
	assert.ErrorIs(t, err, ErrPersist)
	assert.DirExists(t, filepath.Join(dir, "New Note.json"))
}

func TestLoad_InvalidDataLeavesNoteUnchanged(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"title":"Bro`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial.json"), []byte(`{"title":"P","content":""}`), 0644))

	svc.SetTitle("Working draft")
	svc.SetContent("unsaved words")
	before := svc.Note()
	beforePath := svc.SavePath()

	_, err := svc.Load("broken.json")
	assert.ErrorIs(t, err, codec.ErrDecode)
	assert.Equal(t, before, svc.Note())
	assert.Equal(t, beforePath, svc.SavePath())
	assert.True(t, svc.Status().Failed())

	_, err = svc.Load("partial.json")
	assert.ErrorIs(t, err, codec.ErrSchema)
	assert.Equal(t, before, svc.Note())
}

func TestLoad_Missing(t *testing.T) {
	svc, _ := newTestService(t, codec.FormatJSON)

	_, err := svc.Load("ghost.json")
	assert.ErrorIs(t, err, fs.ErrFile)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.png"), []byte{0x89, 'P', 'N', 'G'}, 0644))

	_, err := svc.Load("photo.png")
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
	assert.ErrorIs(t, err, codec.ErrDecode)
}

func TestLoad_SameFormatPinsSavePath(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	svc.SetTitle("Ideas")
	require.NoError(t, svc.Save(""))

	svc.NewNote()
	_, err := svc.Load("Ideas.json")
	require.NoError(t, err)

	svc.SetTitle("Ideas, revised")
	assert.Equal(t, "Ideas.json", svc.SavePath())
	require.NoError(t, svc.Save(""))

	names, err := svc.ListNotes("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ideas.json"}, names)

	reloaded, err := codec.JSON{}.Decode([]byte(readFile(t, filepath.Join(dir, "Ideas.json"))))
	require.NoError(t, err)
	assert.Equal(t, "Ideas, revised", reloaded.Title)
}

func TestLoad_LegacyFileMigratesOnSave(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Old.txt"), []byte("Title: Old\nDate: 02-01-2019\n\nkept"), 0644))

	n, err := svc.Load("Old.txt")
	require.NoError(t, err)
	assert.Equal(t, models.Note{Title: "Old", Content: "kept", Date: models.Date{Day: 2, Month: 1, Year: 2019}}, n)
	assert.Equal(t, "Old.json", svc.SavePath())
	assert.False(t, svc.SavePathRecord().Overridden())

	require.NoError(t, svc.Save(""))
	migrated, err := svc.ReadNote("Old.json")
	require.NoError(t, err)
	assert.Equal(t, n, migrated)
}

func TestLoad_KeepsOutOfRangeDate(t *testing.T) {
	svc, dir := newTestService(t, codec.FormatJSON)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "odd.json"),
		[]byte(`{"title":"Odd","content":"","date":{"day":31,"month":2,"year":2020}}`), 0644))

	n, err := svc.Load("odd.json")
	require.NoError(t, err)
	assert.Equal(t, models.Date{Day: 31, Month: 2, Year: 2020}, n.Date)
}

func TestDelete_RemovesFromListing(t *testing.T) {
	svc, _ := newTestService(t, codec.FormatJSON)
	svc.SetTitle("Doomed")
	require.NoError(t, svc.Save(""))
	open := svc.Note()

	require.NoError(t, svc.DeleteNote("Doomed.json"))
	assert.Equal(t, "Deleted Doomed", svc.Status().Message)
	assert.Equal(t, open, svc.Note())

	names, err := svc.ListNotes("")
	require.NoError(t, err)
	assert.NotContains(t, names, "Doomed.json")

	_, err = svc.Load("Doomed.json")
	assert.ErrorIs(t, err, fs.ErrFile)

	err = svc.DeleteNote("Doomed.json")
	assert.ErrorIs(t, err, fs.ErrFile)
	assert.True(t, svc.Status().Failed())
}

func TestListNotes_Filter(t *testing.T) {
	svc, _ := newTestService(t, codec.FormatJSON)
	for _, title := range []string{"Groceries", "Ideas", "Big IDEAS"} {
		svc.NewNote()
		svc.SetTitle(title)
		require.NoError(t, svc.Save(""))
	}

	all, err := svc.ListNotes("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ideas, err := svc.ListNotes("ideas")
	require.NoError(t, err)
	assert.Equal(t, []string{"Big IDEAS.json", "Ideas.json"}, ideas)
}

func TestSetDate(t *testing.T) {
	svc, _ := newTestService(t, codec.FormatJSON)
	before := svc.Note().Date

	err := svc.SetDate(models.Date{Day: 30, Month: 2, Year: 2024})
	assert.ErrorIs(t, err, models.ErrInvalidDate)
	assert.Equal(t, before, svc.Note().Date)

	require.NoError(t, svc.SetDate(models.Date{Day: 29, Month: 2, Year: 2024}))
	assert.Equal(t, models.Date{Day: 29, Month: 2, Year: 2024}, svc.Note().Date)
}
