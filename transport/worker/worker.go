package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"floorplan/config"
	"floorplan/infras/kafka"
	"floorplan/infras/otel"
	blockService "floorplan/internal/domains/block/service"
	eventModel "floorplan/internal/domains/event/model"
	"floorplan/shared/constant"
	"floorplan/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const traceFlushTimeout = 5 * time.Second

var ErrNothingToRun = errors.New("worker has neither a call consumer nor a block sweep enabled")

// Worker runs the background side of the service: the call-event consumer and the stale block sweep.
type Worker struct {
	cfg    *config.Config
	client kafka.Client
	blocks blockService.Block
	otel   otel.Otel
}

func New(cfg *config.Config, client kafka.Client, blocks blockService.Block, otel otel.Otel) *Worker {
	return &Worker{
		cfg:    cfg,
		client: client,
		blocks: blocks,
		otel:   otel,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	started := 0

	if w.cfg.BlockTTL() > 0 {
		scheduler := cron.New(cron.WithLocation(timezone.GetLocation()))

		if _, err := scheduler.AddFunc(w.cfg.Restaurant.BlockSweepSpec, func() { w.Sweep(ctx) }); err != nil {
			return err //nolint:wrapcheck
		}

		scheduler.Start()
		started++

		log.Info().Str("spec", w.cfg.Restaurant.BlockSweepSpec).Dur("ttl", w.cfg.BlockTTL()).Msg("block sweep scheduled")

		defer func() {
			<-scheduler.Stop().Done()
		}()
	}

	if w.cfg.Kafka.Enable {
		started++

		wg.Add(1)

		go func() {
			defer wg.Done()

			w.client.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.Topics.CallEvents, w.HandleCallEvent)
		}()

		log.Info().Str("topic", w.cfg.Kafka.Topics.CallEvents).Msg("call event consumer started")
	}

	if started == 0 {
		return ErrNothingToRun
	}

	<-ctx.Done()
	wg.Wait()

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), traceFlushTimeout)
	defer cancel()

	if err := w.otel.Shutdown(flushCtx); err != nil {
		log.Warn().Err(err).Msg("failed to flush traces")
	}

	log.Info().Msg("worker stopped")

	return nil
}

// Sweep deletes holds older than the configured TTL.
func (w *Worker) Sweep(ctx context.Context) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".Sweep")
	defer scope.End()

	removed, err := w.blocks.ExpireBlocks(ctx, w.cfg.BlockTTL())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to expire blocks")

		return
	}

	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("expired stale blocks")
	}
}

// HandleCallEvent releases the holds of a finished call. Undecodable messages are dropped so
// they do not stall the partition.
func (w *Worker) HandleCallEvent(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".HandleCallEvent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.DecodeKafkaMessage[eventModel.CallEvent](message)
	if err != nil {
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("dropping malformed call event")

		return nil
	}

	if event.Status != eventModel.CallStatusEnded || event.CallID == constant.Empty {
		return nil
	}

	res, err := w.blocks.RemoveBlock(ctx, event.CallID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().Str("call_id", event.CallID).Int64("removed", res.Removed).Msg("released holds of ended call")

	return nil
}
