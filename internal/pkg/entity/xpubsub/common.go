package xpubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
)

// The pubsub Refresher uses GCP Pubsub Go client API for its functionality.
// We're decoupling this API here on consumer side for full unit test capabilities.
// Wrapping is required since pubsub.PublishResult cannot be created outside the
// client library.

type Topic interface {
	Publish(ctx context.Context, msg *pubsub.Message) PublishResult
	Stop()
}

type PublishResult interface {
	// Get blocks until a server-generated ID or an error is returned for the published message.
	Get(ctx context.Context) (serverID string, err error)
}

// Concrete topic wrapper as returned by NewTopic
type defaultTopic struct {
	topic *pubsub.Topic
}

// NewTopic provides a concrete wrapper of the client topic for usage by the Refresher.
// The topic is expected to exist already.
func NewTopic(client *pubsub.Client, topicId string) Topic {
	return &defaultTopic{topic: client.Topic(topicId)}
}

func (t *defaultTopic) Publish(ctx context.Context, msg *pubsub.Message) PublishResult {
	return t.topic.Publish(ctx, msg)
}

func (t *defaultTopic) Stop() {
	t.topic.Stop()
}
