package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"floorplan/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

var errNotConnected = errors.New("database not connected")

// Connection splits traffic between the primary and a read replica. Both may
// point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one postgres server as configured under DB_POSTGRES_READ_* or
// DB_POSTGRES_WRITE_*.
type Endpoint struct {
	Role     string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

// DSN renders the endpoint as a postgres URL. Credentials are escaped; extra
// is merged into the query string.
func (e Endpoint) DSN(extra url.Values) string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// WriteEndpoint is the primary, also used by migrations.
func WriteEndpoint(cfg *config.Config) Endpoint {
	w := cfg.DB.Postgres.Write

	return Endpoint{
		Role: "write", Host: w.Host, Port: w.Port, Username: w.Username, Password: w.Password,
		Name: cfg.DB.Postgres.Prefix + w.Name, Timezone: w.Timezone, SSLMode: w.SSLMode,
	}
}

func ReadEndpoint(cfg *config.Config) Endpoint {
	r := cfg.DB.Postgres.Read

	return Endpoint{
		Role: "read", Host: r.Host, Port: r.Port, Username: r.Username, Password: r.Password,
		Name: cfg.DB.Postgres.Prefix + r.Name, Timezone: r.Timezone, SSLMode: r.SSLMode,
	}
}

func New(cfg *config.Config) *Connection {
	retries := max(cfg.DB.Postgres.MaxRetry, 1)
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	return &Connection{
		Read:  Connect(ReadEndpoint(cfg), retries, wait),
		Write: Connect(WriteEndpoint(cfg), retries, wait),
	}
}

// Connect dials the endpoint, retrying up to maxRetry times before giving up.
func Connect(endpoint Endpoint, maxRetry int, wait time.Duration) *sqlx.DB {
	logger := log.With().
		Str("name", endpoint.Role).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Name).
		Logger()

	for attempt := range maxRetry {
		db, err := sqlx.Connect(driverName, endpoint.DSN(nil))
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	logger.Fatal().Int("attempts", maxRetry).Msg("Could not connect to database")

	return nil
}

// Ping checks both pools, used by the readiness endpoint.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return errNotConnected
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	return nil
}

func (c *Connection) Close() {
	if c == nil {
		return
	}

	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("failed to close database connection")
		}
	}
}
