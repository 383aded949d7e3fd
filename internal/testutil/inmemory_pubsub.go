package testutil

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/pubsub"
	"github.com/flexprice/assignments/internal/pubsub/memory"
)

// InMemoryPubSub is the memory pubsub used in production, recording every
// published message so tests can assert on the webhook events a service
// emitted
type InMemoryPubSub struct {
	pubsub.PubSub

	mu        sync.RWMutex
	published map[string][]*message.Message
}

func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		PubSub:    memory.NewPubSub(logger.NewNoopLogger()),
		published: make(map[string][]*message.Message),
	}
}

func (ps *InMemoryPubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	ps.mu.Lock()
	ps.published[topic] = append(ps.published[topic], msg)
	ps.mu.Unlock()

	return ps.PubSub.Publish(ctx, topic, msg)
}

// GetMessages returns the messages published to topic in publish order
func (ps *InMemoryPubSub) GetMessages(topic string) []*message.Message {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return append([]*message.Message(nil), ps.published[topic]...)
}

// EventNames returns the event_name metadata of the messages on topic
func (ps *InMemoryPubSub) EventNames(topic string) []string {
	msgs := ps.GetMessages(topic)
	names := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		names = append(names, msg.Metadata.Get("event_name"))
	}
	return names
}

// ClearMessages forgets the recorded messages, subscribers are kept
func (ps *InMemoryPubSub) ClearMessages() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.published = make(map[string][]*message.Message)
}
