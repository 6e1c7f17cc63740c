package publisher_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"floorplan/config"
	"floorplan/infras/kafka"
	kafkaMocks "floorplan/infras/kafka/mocks"
	"floorplan/infras/otel/mocks"
	"floorplan/internal/domains/event/model"
	"floorplan/internal/domains/event/publisher"
)

func TestPublisher_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	pub := publisher.New(cfg, client, mocks.NewOtel())
	pub.Publish(context.Background(), model.Event{Type: model.TypeReservationCreated, TableCode: "T3"})
}

func TestPublisher_SendsKeyedMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Topics.ReservationEvents = "floorplan.reservations"

	sent := make(chan []kafka.Message, 1)

	client.EXPECT().
		SendMessages(gomock.Any(), "floorplan.reservations", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			sent <- messages

			return nil
		})

	pub := publisher.New(cfg, client, mocks.NewOtel())
	pub.Publish(context.Background(), model.Event{Type: model.TypeReservationCreated, ReservationID: "RESTA123456", TableCode: "T3"})

	select {
	case messages := <-sent:
		assert.Len(t, messages, 1)
		assert.Equal(t, "T3", messages[0].Key)
		assert.Equal(t, string(model.TypeReservationCreated), messages[0].Headers[model.HeaderEventType])
	case <-time.After(time.Second):
		t.Fatal("expected events to be published")
	}
}

func TestEvent_Key(t *testing.T) {
	assert.Equal(t, "T3", model.Event{TableCode: "T3", CallID: "call-1"}.Key())
	assert.Equal(t, "call-1", model.Event{CallID: "call-1"}.Key())
}
