package mocks

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageReader replays Messages in order, then blocks until ctx is cancelled.
type MessageReader struct {
	Messages []kafka.Message
	Errors   []error
	calls    int
}

func (r *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	i := r.calls
	r.calls++
	if i < len(r.Errors) && r.Errors[i] != nil {
		return kafka.Message{}, r.Errors[i]
	}
	if i < len(r.Messages) {
		return r.Messages[i], nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}
