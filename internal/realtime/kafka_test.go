package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	fail   bool
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_WritesUpdateEvent(t *testing.T) {
	w := &fakeWriter{}
	pub := NewKafkaPublisherWithWriter(w)

	require.NoError(t, pub.ProductsChanged(context.Background(), []models.Product{{ID: "p1", Title: "Mug"}}))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, EventUpdateProducts, string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)

	var ev Event
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, EventUpdateProducts, ev.Type)
	var products []models.Product
	require.NoError(t, json.Unmarshal(ev.Payload, &products))
	assert.Equal(t, "Mug", products[0].Title)

	require.NoError(t, pub.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	pub := NewKafkaPublisherWithWriter(&fakeWriter{fail: true})
	err := pub.ProductsChanged(context.Background(), nil)
	assert.ErrorContains(t, err, "broker unavailable")
}
