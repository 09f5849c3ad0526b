// Package etltest provides in-memory implementations of the external collaborators,
// for use in tests of the service and of the public API.
package etltest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/zpiroux/orderetl/entity"
)

// MockStore is an in-memory entity.ObjectStore.
type MockStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []entity.ObjectLocator

	// If set, returned by all Get or Put calls respectively
	GetErr error
	PutErr error
}

func NewMockStore() *MockStore {
	return &MockStore{
		objects: make(map[string][]byte),
	}
}

func (s *MockStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	data, ok := s.objects[objectId(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrObjectNotFound, objectId(bucket, key))
	}
	return data, nil
}

func (s *MockStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.objects[objectId(bucket, key)] = data
	s.puts = append(s.puts, entity.ObjectLocator{Bucket: bucket, Key: key})
	return nil
}

// AddObject stores an object directly, e.g. an input document for a test.
func (s *MockStore) AddObject(bucket, key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectId(bucket, key)] = data
}

// Object returns the object content if existing.
func (s *MockStore) Object(bucket, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[objectId(bucket, key)]
	return data, ok
}

// Puts returns the locators of all successful Put calls, in call order.
func (s *MockStore) Puts() []entity.ObjectLocator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.ObjectLocator(nil), s.puts...)
}

// Keys returns all stored object IDs (bucket/key), sorted.
func (s *MockStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func objectId(bucket, key string) string {
	return bucket + "/" + key
}
