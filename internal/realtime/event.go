// Package realtime pushes the product list to live listeners after every
// catalog write: websocket clients through Hub and a Kafka topic through
// KafkaPublisher.
package realtime

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rogerio-castellano/storefront-api/internal/models"
)

const (
	EventUpdateProducts = "updateProducts"
	EventAddProduct     = "addProduct"
	EventDeleteProduct  = "deleteProduct"
	EventError          = "error"
)

// Event is the frame exchanged with websocket clients and written to Kafka.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Message string          `json:"message,omitempty"`
}

func newProductsEvent(products []models.Product) ([]byte, error) {
	if products == nil {
		products = []models.Product{}
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: EventUpdateProducts, Payload: payload})
}

func newErrorEvent(msg string) []byte {
	data, _ := json.Marshal(Event{Type: EventError, Message: msg})
	return data
}

// Notifier receives the full product list after a successful write.
type Notifier interface {
	ProductsChanged(ctx context.Context, products []models.Product) error
}

// Multi fans a change out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) ProductsChanged(ctx context.Context, products []models.Product) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.ProductsChanged(ctx, products); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
