package entity

import (
	"context"
	"time"

	"github.com/tidwall/sjson"
)

// CatalogRefresher starts a refresh job in an external metadata catalog, so that
// newly written output files become queryable. The call only requests the start
// of the job and does not wait for it to complete.
type CatalogRefresher interface {
	StartRefresh(ctx context.Context, jobName string) error
}

// NoopRefresher is used when catalog refresh is disabled.
type NoopRefresher struct{}

func (NoopRefresher) StartRefresh(ctx context.Context, jobName string) error {
	return nil
}

// RefreshRequest is the message published by refreshers that signal the catalog
// through a messaging system rather than calling it directly.
type RefreshRequest struct {
	Job         string `json:"job"`
	RequestedAt string `json:"requestedAt"`
}

const refreshTimestampLayout = "2006-01-02T15:04:05.000000Z"

// NewRefreshRequest creates the JSON payload of a RefreshRequest.
func NewRefreshRequest(jobName string, ts time.Time) ([]byte, error) {
	msg, err := sjson.SetBytes([]byte(`{}`), "job", jobName)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(msg, "requestedAt", ts.UTC().Format(refreshTimestampLayout))
}
