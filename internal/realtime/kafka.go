package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes every product list change to a topic as an
// updateProducts event.
type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: w}
}

func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) ProductsChanged(ctx context.Context, products []models.Product) error {
	value, err := newProductsEvent(products)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(EventUpdateProducts),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventUpdateProducts)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish product update: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
