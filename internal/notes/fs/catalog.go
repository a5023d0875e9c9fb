package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quill/internal/logs"
)

// ErrFile covers missing directories or files, permission problems and bad names.
var ErrFile = errors.New("file error")

const (
	tempPrefix = ".quill-"
	tempSuffix = ".tmp"
	dirPerm    = 0755
	notePerm   = 0644
)

// Catalog exposes a flat notes directory. Nothing is cached: every call
// reflects what is on disk at that moment.
type Catalog struct {
	dir         string
	fallbackDir string
}

// NewCatalog creates a catalog over dir. When dir cannot be created or opened
// the catalog uses fallbackDir instead; an empty fallbackDir disables that.
func NewCatalog(dir, fallbackDir string) *Catalog {
	return &Catalog{dir: dir, fallbackDir: fallbackDir}
}

// Dir resolves the directory in use, creating it if absent.
func (c *Catalog) Dir() (string, error) {
	err := ensureDir(c.dir)
	if err == nil {
		return c.dir, nil
	}
	if c.fallbackDir == "" || c.fallbackDir == c.dir {
		return "", fmt.Errorf("%w: notes directory %s: %w", ErrFile, c.dir, err)
	}

	logs.Logger.Printf("Notes directory %s unusable (%v), falling back to %s", c.dir, err, c.fallbackDir)
	if ferr := ensureDir(c.fallbackDir); ferr != nil {
		return "", fmt.Errorf("%w: notes directory %s: %w (fallback %s: %v)", ErrFile, c.dir, err, c.fallbackDir, ferr)
	}
	return c.fallbackDir, nil
}

// EnsureDirectory creates the notes directory; an existing directory is not an error.
func (c *Catalog) EnsureDirectory() error {
	_, err := c.Dir()
	return err
}

// List returns the names of the files directly inside the notes directory,
// sorted by name. A non-empty filter keeps only names containing it,
// ignoring case.
func (c *Catalog) List(filter string) ([]string, error) {
	dir, err := c.Dir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrFile, dir, err)
	}

	needle := strings.ToLower(filter)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || isTempFile(entry.Name()) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(entry.Name()), needle) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Exists reports whether a note file with that name is present
func (c *Catalog) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	dir, err := c.Dir()
	if err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

// Read returns the raw bytes of a note file
func (c *Catalog) Read(name string) ([]byte, error) {
	path, err := c.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFile, name, err)
	}
	return data, nil
}

// Write replaces the named file with data. The bytes go to a temporary file
// in the same directory which is renamed over the target, so a failed write
// leaves any existing file untouched.
func (c *Catalog) Write(name string, data []byte) error {
	path, err := c.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), tempPrefix+"*"+tempSuffix)
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrFile, name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %w", ErrFile, name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: sync %s: %w", ErrFile, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %w", ErrFile, name, err)
	}
	if err := os.Chmod(tmpPath, notePerm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %w", ErrFile, name, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %w", ErrFile, name, err)
	}
	return nil
}

// Delete removes exactly one note file. Deleting a missing file is an error.
func (c *Catalog) Delete(name string) error {
	path, err := c.path(name)
	if err != nil {
		return err
	}

	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrFile, name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: delete %s: is a directory", ErrFile, name)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrFile, name, err)
	}
	return nil
}

// ValidateName rejects names that would escape the flat notes directory
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty file name", ErrFile)
	case name == "." || name == "..":
		return fmt.Errorf("%w: invalid file name %q", ErrFile, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: invalid characters in file name %q", ErrFile, name)
	case isTempFile(name):
		return fmt.Errorf("%w: reserved file name %q", ErrFile, name)
	}
	return nil
}

func (c *Catalog) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	dir, err := c.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	return f.Close()
}

func isTempFile(name string) bool {
	return strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, tempSuffix)
}
