package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// StubImageStore keeps uploads in memory. It serves development setups
// without a bucket and tests.
type StubImageStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// StoredObject is an upload held by StubImageStore
type StoredObject struct {
	Data        []byte
	ContentType string
}

// NewStubImageStore creates a stub store serving URLs under baseURL
func NewStubImageStore(baseURL string) *StubImageStore {
	if baseURL == "" {
		baseURL = "https://storage.example.com"
	}
	return &StubImageStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]StoredObject),
	}
}

// Put records the object and returns its URL
func (s *StubImageStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = StoredObject{Data: append([]byte(nil), data...), ContentType: contentType}
	return s.BaseURL + "/" + strings.TrimLeft(key, "/"), nil
}

// Delete forgets the object; unknown keys are ignored
func (s *StubImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns a stored object
func (s *StubImageStore) Get(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (s *StubImageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
