package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parulcreation/projectshop/internal/adapter/config"
)

// Store keeps project PDFs on local disk under a single directory. File names
// are derived from project ids by the caller, never from user input.
type Store struct {
	dir string
}

func NewStore(cfg *config.Files) (*Store, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: cfg.UploadDir}, nil
}

func (s *Store) Save(fileName string, r io.Reader) error {
	f, err := os.Create(s.Path(fileName))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = io.Copy(f, r)
	return err
}

func (s *Store) Open(fileName string) (io.ReadCloser, error) {
	return os.Open(s.Path(fileName))
}

func (s *Store) Path(fileName string) string {
	return filepath.Join(s.dir, filepath.Base(fileName))
}

func (s *Store) Remove(fileName string) error {
	err := os.Remove(s.Path(fileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
