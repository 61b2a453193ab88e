package messaging

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Handler applies one decoded event. The redirect path only publishes,
// so handlers carry all the ingest-side logic, such as recording a
// visit through visits.Recorder.
type Handler[T any] func(ctx context.Context, event *T) error

// Consumer reads JSON events from one stream topic and feeds them to a
// typed handler. Undecodable and failed messages are nacked so the
// stream redelivers them.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConsumer creates a consumer for the given topic and event type.
func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
) *Consumer[T] {
	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Topic reports which topic the consumer reads.
func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start subscribes and begins draining the topic in the background.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go c.drain(ctx, msgs)

	return nil
}

func (c *Consumer[T]) drain(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			if err := c.apply(ctx, msg); err != nil {
				c.logger.Error("visit event not processed",
					zap.String("topic", c.topic),
					zap.String("message_id", msg.UUID),
					zap.Error(err),
				)
				msg.Nack()

				continue
			}

			msg.Ack()
		}
	}
}

func (c *Consumer[T]) apply(ctx context.Context, msg *message.Message) error {
	var event T
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return err
	}

	return c.handler(ctx, &event)
}

// Shutdown cancels the subscription and waits for the drain loop to
// finish its current message.
func (c *Consumer[T]) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return nil
}
