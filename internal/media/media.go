package media

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("video not found")

// extByType pins the extension for the encodings the capture widget can
// produce, so codec parameters in the content type don't leak into names.
var extByType = map[string]string{
	"video/webm": ".webm",
	"video/mp4":  ".mp4",
}

// Store keeps uploaded video clips as flat files in a single directory,
// named by a generated id so uploads can never collide or overwrite.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the clip to disk and returns the generated filename. The
// write lands in a temp file first and is renamed into place.
func (s *Store) Save(r io.Reader, contentType string) (string, error) {
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		base = contentType
	}
	ext, ok := extByType[base]
	if !ok {
		ext = ".webm"
	}
	filename := uuid.NewString() + ext

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write clip: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(s.dir, filename)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("store clip: %w", err)
	}
	return filename, nil
}

// Open returns the named clip for reading. Names that would escape the
// media directory are rejected as not found.
func (s *Store) Open(filename string) (*os.File, error) {
	clean := filepath.Base(filepath.Clean(filename))
	if clean != filename || strings.HasPrefix(clean, ".") {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}
