package publisher

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"

	"floorplan/config"
	"floorplan/infras/kafka"
	"floorplan/infras/otel"
	"floorplan/internal/domains/event/model"
	"floorplan/shared/constant"

	"github.com/rs/zerolog/log"
)

// Publisher emits domain events in the background. Failures are logged, never returned.
type Publisher interface {
	Publish(ctx context.Context, events ...model.Event)
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

type noopPublisher struct{}

func New(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable {
		log.Info().Msg("kafka disabled, domain events will not be published")

		return noopPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topics.ReservationEvents,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...model.Event) {
	if len(events) == 0 {
		return
	}

	go func() {
		c, scope := p.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
		defer scope.End()

		messages := make([]kafka.Message, len(events))
		for i, event := range events {
			messages[i] = kafka.Message{
				Key:     event.Key(),
				Value:   event,
				Headers: map[string]string{model.HeaderEventType: string(event.Type)},
			}
		}

		if err := p.client.SendMessages(c, p.topic, messages...); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("topic", p.topic).Msg("failed to publish domain events")
		}
	}()
}

func (noopPublisher) Publish(_ context.Context, _ ...model.Event) {}
