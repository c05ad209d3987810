package uangku

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Keys of the five persisted collections.
const (
	KeyAccounts     = "accounts"
	KeyPlatforms    = "platforms"
	KeyInvestments  = "investments"
	KeyTransactions = "transactions"
	KeyReceivables  = "receivables"
)

// Keys lists the collection keys in their canonical order.
var Keys = []string{KeyAccounts, KeyPlatforms, KeyInvestments, KeyTransactions, KeyReceivables}

// Store is the key-value persistence collaborator. A missing key reports
// fs.ErrNotExist; callers treat that as the empty default.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// DirStore persists each key as a JSONL file under a data directory.
type DirStore struct {
	Dir string
}

// NewDirStore returns a store rooted at dir. The directory is created lazily
// on the first save.
func NewDirStore(dir string) *DirStore { return &DirStore{Dir: dir} }

func (s *DirStore) path(key string) string {
	return filepath.Join(s.Dir, key+".jsonl")
}

// Load reads the raw content of a key. A missing file is fs.ErrNotExist.
func (s *DirStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("could not load %q: %w", key, err)
	}
	return data, nil
}

// Save writes the raw content of a key.
func (s *DirStore) Save(key string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("could not create data directory %q: %w", s.Dir, err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("could not save %q: %w", key, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore map[string][]byte

// Load reads the raw content of a key. A missing key is fs.ErrNotExist.
func (s MemStore) Load(key string) ([]byte, error) {
	data, ok := s[key]
	if !ok {
		return nil, fmt.Errorf("could not load %q: %w", key, fs.ErrNotExist)
	}
	return data, nil
}

// Save writes the raw content of a key.
func (s MemStore) Save(key string, data []byte) error {
	s[key] = data
	return nil
}
