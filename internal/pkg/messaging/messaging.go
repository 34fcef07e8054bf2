package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrDestinationRequired is returned when Publish gets an empty topic or subject.
	ErrDestinationRequired = errors.New("messaging: destination is required")
	// ErrClosed is returned by Publish after Close.
	ErrClosed = errors.New("messaging: publisher is closed")
)

// Publisher sends messages to a destination (topic or subject).
type Publisher interface {
	io.Closer

	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is the broker independent form of a message.
type OutgoingMessage struct {
	Body []byte

	// Key selects the Kafka partition.
	Key []byte

	// Headers may repeat keys. NSQ has no headers and drops them.
	Headers []Header

	// Attributes are Pub/Sub string attributes. Headers are merged in when
	// the key is not already present.
	Attributes map[string]string

	// OrderingKey is used by Pub/Sub only.
	OrderingKey string
}

// Header is a single message header.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult describes what the broker accepted.
type PublishResult struct {
	// MessageID is set by brokers that assign one (Pub/Sub).
	MessageID string
	Topic     string
	Timestamp time.Time
}

// HeaderValue returns the first value for key, or "" when absent.
func (m OutgoingMessage) HeaderValue(key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func checkPublish(ctx context.Context, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if destination == "" {
		return ErrDestinationRequired
	}
	return nil
}
