package keystore

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// fileEntry is one stored credential.
type fileEntry struct {
	Service       string    `yaml:"service"`
	Account       string    `yaml:"account"`
	Data          string    `yaml:"data"` // base64
	Accessibility string    `yaml:"accessibility"`
	WrittenAt     time.Time `yaml:"written_at"`
}

type fileData struct {
	Entries []fileEntry `yaml:"entries"`
}

// FileStore implements Store with a single YAML file readable only by its owner.
// The file is re-read on every call and every read-modify-write holds an
// exclusive lock on <path>.lock, so several processes can share it.
type FileStore struct {
	filePath string
	mu       sync.Mutex // one flock handle per store, so callers in this process take turns
	lock     *flock.Flock
	logger   *slog.Logger
}

// NewFileStore creates a file-based store. The file is created on first write.
func NewFileStore(filePath string, logger *slog.Logger) (*FileStore, error) {
	if filePath == "" {
		return nil, fmt.Errorf("%w: file store requires a path", ErrInvalidOptions)
	}
	return &FileStore{
		filePath: filePath,
		lock:     flock.New(filePath + ".lock"),
		logger:   logger,
	}, nil
}

// withLock runs fn under the in-process mutex and the cross-process file lock,
// shared for reads and exclusive for read-modify-write.
func (fs *FileStore) withLock(exclusive bool, fn func() error) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(fs.filePath), 0700); err != nil {
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to create credentials directory: %w", err)}
	}

	lock := fs.lock.RLock
	if exclusive {
		lock = fs.lock.Lock
	}
	if err := lock(); err != nil {
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to lock credentials file: %w", err)}
	}
	defer fs.lock.Unlock()

	return fn()
}

func (fs *FileStore) load() (*fileData, error) {
	raw, err := os.ReadFile(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileData{}, nil
		}
		return nil, &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to read credentials file: %w", err)}
	}

	var data fileData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, &StatusError{Status: StatusDecode, Err: fmt.Errorf("failed to parse credentials file: %w", err)}
	}
	return &data, nil
}

// save writes data atomically (temp file + rename)
func (fs *FileStore) save(data *fileData) error {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return &StatusError{Status: StatusParam, Err: fmt.Errorf("failed to marshal credentials: %w", err)}
	}

	dir := filepath.Dir(fs.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to create credentials directory: %w", err)}
	}

	tempFile, err := os.CreateTemp(dir, ".credentials-*.yaml.tmp")
	if err != nil {
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to create temp file: %w", err)}
	}
	tempPath := tempFile.Name()
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if err := tempFile.Chmod(0600); err != nil {
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to set temp file permissions: %w", err)}
	}
	if _, err := tempFile.Write(raw); err != nil {
		return &StatusError{Status: StatusDiskFull, Err: fmt.Errorf("failed to write temp file: %w", err)}
	}
	if err := tempFile.Sync(); err != nil {
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to sync temp file: %w", err)}
	}
	if err := tempFile.Close(); err != nil {
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to close temp file: %w", err)}
	}
	tempFile = nil

	if err := os.Rename(tempPath, fs.filePath); err != nil {
		os.Remove(tempPath)
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("failed to rename temp file: %w", err)}
	}
	return nil
}

func (e fileEntry) matches(q Query) bool {
	return e.Service == q.Service && (q.Account == "" || e.Account == q.Account)
}

// Get returns the matching entry with the latest WrittenAt. Entries written
// at the same instant resolve to the one later in the file.
func (fs *FileStore) Get(q Query) ([]byte, error) {
	var found *fileEntry
	err := fs.withLock(false, func() error {
		data, err := fs.load()
		if err != nil {
			return err
		}
		for i := range data.Entries {
			entry := &data.Entries[i]
			if entry.matches(q) && (found == nil || !entry.WrittenAt.Before(found.WrittenAt)) {
				found = entry
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}

	decoded, err := base64.StdEncoding.DecodeString(found.Data)
	if err != nil {
		return nil, &StatusError{Status: StatusDecode, Err: err}
	}
	return decoded, nil
}

// Add appends a new entry
func (fs *FileStore) Add(item Item) error {
	err := fs.withLock(true, func() error {
		data, err := fs.load()
		if err != nil {
			return err
		}

		for _, entry := range data.Entries {
			if entry.Service == item.Service && entry.Account == item.Account {
				return ErrDuplicateItem
			}
		}

		data.Entries = append(data.Entries, fileEntry{
			Service:       item.Service,
			Account:       item.Account,
			Data:          base64.StdEncoding.EncodeToString(item.Data),
			Accessibility: item.Accessibility.String(),
			WrittenAt:     time.Now().UTC(),
		})

		return fs.save(data)
	})
	if err != nil {
		return err
	}

	fs.logger.Debug("Stored entry in credentials file",
		"file_path", fs.filePath, "service", item.Service, "account", item.Account)
	return nil
}

// Delete removes every matching entry
func (fs *FileStore) Delete(q Query) error {
	return fs.withLock(true, func() error {
		data, err := fs.load()
		if err != nil {
			return err
		}

		kept := data.Entries[:0]
		for _, entry := range data.Entries {
			if !entry.matches(q) {
				kept = append(kept, entry)
			}
		}
		if len(kept) == len(data.Entries) {
			return nil
		}
		data.Entries = kept

		return fs.save(data)
	})
}
