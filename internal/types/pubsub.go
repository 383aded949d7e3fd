package types

// PubSubType defines the type of pubsub implementation
type PubSubType string

const (
	// PubSubTypeMemory uses the in-process watermill gochannel implementation
	PubSubTypeMemory PubSubType = "memory"
)
