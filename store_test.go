package tokencache

import (
	"log/slog"
	"sync"

	"github.com/mazurov/claude-token-cache/keystore"
)

type storeKey struct{ service, account string }

// fakeStore is an in-memory keystore.Store with fault injection
type fakeStore struct {
	mu      sync.Mutex
	entries map[storeKey][]byte
	order   []storeKey

	getErr    map[string]error // by service
	addErr    error
	deleteErr error

	gets, adds, deletes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries: make(map[storeKey][]byte),
		getErr:  make(map[string]error),
	}
}

func (s *fakeStore) put(service, account string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := storeKey{service, account}
	s.entries[k] = data
	s.order = append(s.order, k)
}

func (s *fakeStore) lookup(service, account string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[storeKey{service, account}]
	return data, ok
}

func (s *fakeStore) Get(q keystore.Query) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++

	if err := s.getErr[q.Service]; err != nil {
		return nil, err
	}
	for i := len(s.order) - 1; i >= 0; i-- {
		k := s.order[i]
		if k.service != q.Service || (q.Account != "" && k.account != q.Account) {
			continue
		}
		if data, ok := s.entries[k]; ok {
			return data, nil
		}
	}
	return nil, keystore.ErrNotFound
}

func (s *fakeStore) Add(item keystore.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adds++

	if s.addErr != nil {
		return s.addErr
	}
	k := storeKey{item.Service, item.Account}
	if _, ok := s.entries[k]; ok {
		return keystore.ErrDuplicateItem
	}
	s.entries[k] = item.Data
	s.order = append(s.order, k)
	return nil
}

func (s *fakeStore) Delete(q keystore.Query) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++

	if s.deleteErr != nil {
		return s.deleteErr
	}
	for k := range s.entries {
		if k.service == q.Service && (q.Account == "" || k.account == q.Account) {
			delete(s.entries, k)
		}
	}
	return nil
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
