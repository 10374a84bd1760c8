// Package kafka is a thin, sarama-agnostic surface for publishing and consuming records.
package kafka

import "context"

// Well-known header keys.
const (
	HeaderEventType   = "event-type"
	HeaderContentType = "content-type"
)

type (
	Middleware     func(next MessageHandler) MessageHandler
	MessageHandler func(ctx context.Context, msg Message) error
)

type Header struct {
	Key   string
	Value string
}

type Consumer interface {
	Consume(ctx context.Context, handler MessageHandler) error
}

type Producer interface {
	Send(ctx context.Context, key, value []byte, headers ...Header) error
}
