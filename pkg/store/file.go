package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/schedule"
	"github.com/mgrundel/timelane/pkg/snapshot"
)

// FileStore persists the schedule set as a single JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at path. If path is empty it
// defaults to ~/.config/timelane/schedules.json. Parent directories are
// created as needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "get home dir")
		}
		path = filepath.Join(home, ".config", "timelane", "schedules.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create store dir")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (*schedule.Manager, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return schedule.NewManager(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open %s", s.path)
	}
	defer f.Close()

	m, err := snapshot.Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load %s", s.path)
	}
	return m, nil
}

func (s *FileStore) Save(ctx context.Context, m *schedule.Manager) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to a sibling temp file and rename so a crash mid-write
	// never truncates the previous state.
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "create %s", tmp)
	}
	if err := snapshot.Write(m, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStore, err, "save %s", s.path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStore, err, "close %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStore, err, "replace %s", s.path)
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

var _ Store = (*FileStore)(nil)
