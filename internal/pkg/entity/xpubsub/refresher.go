package xpubsub

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/teltech/logger"
	"github.com/zpiroux/orderetl/entity"
)

const AttributeJob = "job"

var log *logger.Log

func init() {
	log = logger.New()
}

// Refresher implements entity.CatalogRefresher by publishing a refresh request
// message to a pubsub topic, for an external catalog job to act on.
type Refresher struct {
	topic Topic
	now   func() time.Time
}

func NewRefresher(topic Topic) (*Refresher, error) {
	if isNil(topic) {
		return nil, errors.New("invalid arguments, Topic cannot be nil")
	}
	return &Refresher{topic: topic, now: time.Now}, nil
}

func (r *Refresher) StartRefresh(ctx context.Context, jobName string) error {

	msgData, err := entity.NewRefreshRequest(jobName, r.now())
	if err != nil {
		return fmt.Errorf(r.lgprfx()+"could not create refresh request: %w", err)
	}

	result := r.topic.Publish(ctx, &pubsub.Message{
		Data:       msgData,
		Attributes: map[string]string{AttributeJob: jobName},
	})

	id, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf(r.lgprfx()+"failed to publish refresh request for %s: %w", jobName, err)
	}
	log.Infof(r.lgprfx()+"published refresh request for %s with message ID: %v", jobName, id)
	return nil
}

// Close flushes outstanding messages and stops the topic's publishing goroutines.
func (r *Refresher) Close() {
	r.topic.Stop()
}

func (r *Refresher) lgprfx() string {
	return "[xpubsub.refresher] "
}

func isNil(v any) bool {
	return v == nil || (reflect.ValueOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil())
}
