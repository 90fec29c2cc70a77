package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"food-delivery/delivery-svc/internal/domain"
	"food-delivery/delivery-svc/internal/storage"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind).Error(0)
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, msg).Error(0)
}

func sampleEvent() domain.OrderEvent {
	return domain.OrderEvent{
		Type:         domain.EventOrderCreated,
		OrderID:      1000,
		RestaurantID: 1,
		Status:       domain.StatusPending,
		Total:        1598,
		Timestamp:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := storage.NewKafkaPublisher(writer)

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent()))
	require.Len(t, writer.messages, 1)
	assert.Equal(t, "1000", string(writer.messages[0].Key))

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, domain.EventOrderCreated, decoded.Type)
	assert.Equal(t, "15.98", decoded.Total.String())
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", storage.NotificationsExchange, "fanout").Return(nil).Once()
	ch.On("PublishWithContext", mock.Anything, storage.NotificationsExchange,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			return msg.Type == domain.EventOrderCreated && msg.ContentType == "application/json"
		})).Return(nil).Once()

	publisher, err := storage.NewRabbitPublisher(ch)
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), sampleEvent()))
	ch.AssertExpectations(t)
}

func TestRabbitPublisher_DeclareError(t *testing.T) {
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", storage.NotificationsExchange, "fanout").Return(errors.New("channel closed")).Once()

	_, err := storage.NewRabbitPublisher(ch)
	assert.ErrorContains(t, err, "declare exchange")
}

func TestMultiPublisher_JoinsErrors(t *testing.T) {
	ok := &fakeWriter{}
	failing := &fakeWriter{err: errors.New("broker down")}
	multi := storage.NewMultiPublisher(storage.NewKafkaPublisher(ok), storage.NewKafkaPublisher(failing))

	err := multi.Publish(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, ok.messages, 1)
	assert.Len(t, failing.messages, 1)
}
