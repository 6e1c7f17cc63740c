package redis

import (
	"context"
	"net"
	"time"

	"floorplan/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	pingTimeout    = 3 * time.Second
	defaultRetries = 1
)

// New dials the primary node and blocks until it answers PING or the retry
// budget runs out.
func New(cfg *config.Config) *goRedis.Client {
	primary := cfg.Cache.Redis.Primary
	addr := net.JoinHostPort(primary.Host, primary.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     addr,
		Password: primary.Password,
		DB:       primary.DB,
	})

	attempts := max(cfg.Cache.Redis.MaxRetry, defaultRetries)
	wait := time.Duration(cfg.Cache.Redis.RetryWaitTime) * time.Second

	var err error
	for attempt := range attempts {
		if err = ping(client); err == nil {
			log.Info().
				Str("addr", addr).
				Int("db", primary.DB).
				Msg("Connected to Redis")

			return client
		}

		log.Error().
			Err(err).
			Str("addr", addr).
			Int("attempt", attempt+1).
			Msg("Failed connecting to Redis, retrying")

		time.Sleep(wait)
	}

	log.Fatal().Err(err).Str("addr", addr).Msg("Failed to connect to Redis")

	return nil
}

func ping(client *goRedis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	return client.Ping(ctx).Err() //nolint:wrapcheck
}
