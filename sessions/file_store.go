package sessions

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

const (
	// DefaultDirName is the directory created under the XDG config home
	DefaultDirName = "go-auth-client"

	dirPerm     = 0o700
	filePerm    = 0o600
	lockRetry   = 10 * time.Millisecond
	lockFileExt = ".lock"
	sessionExt  = ".json"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the session record in a JSON file.
//
// Writes go through a temp file + rename so readers never see a partial file,
// and are serialised both in-process (mutex) and across processes (flock on a sibling
// .lock file, which survives the rename).
type FileStore struct {
	path     string
	lockPath string
	mu       sync.Mutex
}

type FileStoreOption func(*FileStore)

// WithDir stores the session file in dir instead of the XDG config directory
func WithDir(dir string) FileStoreOption {
	return func(s *FileStore) {
		if dir != "" {
			s.path = filepath.Join(dir, filepath.Base(s.path))
		}
	}
}

// NewFileStore creates a store for the named client, e.g. "@oneblink/cli" is kept in
// $XDG_CONFIG_HOME/go-auth-client/oneblink-cli.json
func NewFileStore(clientName string, opts ...FileStoreOption) (*FileStore, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, errors.New("[NewFileStore] client name is required")
	}

	s := &FileStore{
		path: filepath.Join(xdg.ConfigHome, DefaultDirName, fileName(clientName)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lockPath = s.path + lockFileExt

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return nil, errors.Wrap(err, "FileStore.NewFileStore MkdirAll")
	}
	return s, nil
}

// Path returns the location of the session file
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(_ context.Context) (*Record, error) {
	return s.read()
}

func (s *FileStore) Update(ctx context.Context, mutate Mutator) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock := flock.New(s.lockPath)
	locked, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.Update lock")
	}
	if !locked {
		return nil, errors.Errorf("FileStore.Update: %s is locked by another process", s.path)
	}
	defer func() { _ = lock.Unlock() }()

	record, err := s.read()
	if err != nil {
		return nil, err
	}
	if err := mutate(record); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.Update Marshal")
	}
	if err := writeAtomic(s.path, data, filePerm); err != nil {
		return nil, errors.Wrap(err, "FileStore.Update WriteFile")
	}
	return record.Clone(), nil
}

func (s *FileStore) read() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Record{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "FileStore.read ReadFile")
	}

	record := &Record{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, errors.Wrapf(err, "FileStore.read Unmarshal %s", s.path)
	}
	return record, nil
}

func fileName(clientName string) string {
	name := strings.NewReplacer("@", "", "/", "-", "\\", "-", " ", "-").Replace(clientName)
	return strings.Trim(name, "-.") + sessionExt
}
