package etltest

import (
	"context"
	"sync"
)

// MockRefresher is an in-memory entity.CatalogRefresher recording all requested jobs.
type MockRefresher struct {
	mu   sync.Mutex
	jobs []string

	// If set, returned by all StartRefresh calls (the call is still recorded)
	Err error
}

func NewMockRefresher() *MockRefresher {
	return &MockRefresher{}
}

func (r *MockRefresher) StartRefresh(ctx context.Context, jobName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, jobName)
	return r.Err
}

func (r *MockRefresher) Jobs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.jobs...)
}
