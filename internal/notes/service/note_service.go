package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quill/internal/logs"
	"quill/internal/notes/codec"
	"quill/internal/notes/fs"
	"quill/internal/notes/models"
	"quill/internal/notes/operations"
)

// ErrPersist wraps every failure on the save path.
var ErrPersist = errors.New("persist error")

// Service is the single entry point for the UI. It owns the open note and
// its save path; it is meant to be driven from one goroutine.
type Service struct {
	catalog *fs.Catalog
	codec   codec.Codec
	now     func() time.Time

	note   models.Note
	path   SavePath
	status Status
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now for dating new notes
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a service that saves new notes in format and starts
// with a default note open.
func NewService(catalog *fs.Catalog, format codec.Format, opts ...Option) (*Service, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}

	s := &Service{
		catalog: catalog,
		codec:   c,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.NewNote()
	return s, nil
}

// Format returns the encoding used for new saves
func (s *Service) Format() codec.Format {
	return s.codec.Format()
}

// Ext returns the file extension of the active format
func (s *Service) Ext() string {
	return s.codec.Ext()
}

// Catalog returns the underlying file catalog
func (s *Service) Catalog() *fs.Catalog {
	return s.catalog
}

// NewNote discards the open note and starts a fresh default one.
func (s *Service) NewNote() {
	s.note = models.NewDefaultAt(s.now())
	s.path = SavePath{Derived: s.DeriveDefaultSavePath(s.note)}
	s.status = Status{}
}

// Note returns a copy of the open note
func (s *Service) Note() models.Note {
	return s.note
}

// SetTitle edits the open note's title and re-derives the save path.
func (s *Service) SetTitle(title string) {
	s.note.Title = title
	s.path.Derived = s.DeriveDefaultSavePath(s.note)
}

// SetContent edits the open note's content
func (s *Service) SetContent(content string) {
	s.note.Content = content
}

// SetDate edits the open note's date; invalid dates are rejected.
func (s *Service) SetDate(d models.Date) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.note.Date = d
	return nil
}

// DeriveDefaultSavePath returns "<title><ext>" for the active format.
func (s *Service) DeriveDefaultSavePath(note models.Note) string {
	return operations.SavePathFor(note.Title, s.codec.Ext())
}

// SavePath returns the file name the open note will be saved to
func (s *Service) SavePath() string {
	return s.path.Value()
}

// SavePathRecord returns the derived/override pair
func (s *Service) SavePathRecord() SavePath {
	return s.path
}

// SetSavePath pins the file name for this session. An empty name drops the
// override and returns to the title-derived name.
func (s *Service) SetSavePath(name string) {
	if name == "" {
		s.path.clearOverride()
		return
	}
	s.path.setOverride(name)
}

// Status returns the outcome of the last save, load or delete
func (s *Service) Status() Status {
	return s.status
}

// Save writes the open note. A non-empty name is used instead of the current
// save path and, once the write succeeds, pinned as the session's override.
func (s *Service) Save(name string) error {
	target := name
	if target == "" {
		target = s.SavePath()
	}
	written, err := s.writeNote(s.note, target)
	if err != nil {
		return err
	}
	if name != "" || s.path.Overridden() {
		s.path.setOverride(written)
	}
	return nil
}

// SaveNote encodes note and writes it to <notes dir>/<name>, replacing any
// existing file. The codec follows the file extension; a name without a
// note extension gets the active format's. On failure the existing file is
// left as it was.
func (s *Service) SaveNote(note models.Note, name string) error {
	_, err := s.writeNote(note, name)
	return err
}

func (s *Service) writeNote(note models.Note, name string) (string, error) {
	written, err := s.saveNote(note, name)
	if err != nil {
		logs.Logger.Printf("Service: save %q failed: %v", name, err)
		s.status = Status{Message: "Error saving note: " + err.Error(), Err: err}
		return "", err
	}
	logs.Logger.Printf("Service: saved %q", written)
	s.status = Status{Message: "Note saved successfully!"}
	return written, nil
}

func (s *Service) saveNote(note models.Note, name string) (string, error) {
	if err := note.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: no save path", ErrPersist)
	}
	if err := s.catalog.EnsureDirectory(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersist, err)
	}

	c, err := codec.ForFile(name)
	if err != nil {
		// Load picks the codec by extension, so every file needs one
		c = s.codec
		name += c.Ext()
	}
	data, err := c.Encode(note)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.catalog.Write(name, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return name, nil
}

// Load reads and decodes a note file and makes it the open note. If
// anything fails the open note is left unchanged.
func (s *Service) Load(name string) (models.Note, error) {
	note, err := s.ReadNote(name)
	if err != nil {
		logs.Logger.Printf("Service: load %q failed: %v", name, err)
		s.status = Status{Message: "Error loading note: " + err.Error(), Err: err}
		return models.Note{}, err
	}

	s.note = note
	s.path = SavePath{Derived: s.DeriveDefaultSavePath(note)}
	if c, err := codec.ForFile(name); err == nil && c.Format() == s.codec.Format() {
		s.path.setOverride(name)
	}

	logs.Logger.Printf("Service: loaded %q", name)
	s.status = Status{Message: "Loaded " + operations.DisplayName(name)}
	return note, nil
}

// ReadNote decodes a note file without touching the session.
func (s *Service) ReadNote(name string) (models.Note, error) {
	data, err := s.catalog.Read(name)
	if err != nil {
		return models.Note{}, err
	}
	c, err := codec.ForFile(name)
	if err != nil {
		return models.Note{}, err
	}
	note, err := c.Decode(data)
	if err != nil {
		return models.Note{}, fmt.Errorf("%s: %w", name, err)
	}
	return note, nil
}

// ListNotes returns the catalog entries whose names contain filter, ignoring case
func (s *Service) ListNotes(filter string) ([]string, error) {
	return s.catalog.List(filter)
}

// DeleteNote removes a note file. The open note is not affected, even if it
// was loaded from that file.
func (s *Service) DeleteNote(name string) error {
	if err := s.catalog.Delete(name); err != nil {
		logs.Logger.Printf("Service: delete %q failed: %v", name, err)
		s.status = Status{Message: "Error deleting note: " + err.Error(), Err: err}
		return err
	}
	logs.Logger.Printf("Service: deleted %q", name)
	s.status = Status{Message: "Deleted " + operations.DisplayName(name)}
	return nil
}
