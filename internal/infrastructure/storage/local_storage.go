package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is where the HTTP layer serves the upload directory.
const URLPrefix = "/uploads/"

var ErrInvalidFilename = errors.New("invalid file name")

// StoredFile describes a file written by LocalStorage.
type StoredFile struct {
	Filename string
	URL      string
}

// LocalStorage keeps uploaded files in a single flat directory.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes data under a fresh uuid name keeping the original extension.
func (s *LocalStorage) Save(originalName string, data []byte) (*StoredFile, error) {
	filename := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	return &StoredFile{Filename: filename, URL: URLPrefix + filename}, nil
}

// Delete removes a stored file. A file that is already gone is not an error.
func (s *LocalStorage) Delete(filename string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return ErrInvalidFilename
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}
