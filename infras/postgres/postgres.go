package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"studio/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute

	defaultSSLMode = "disable"
)

// Connection splits reads from writes. Admission and cancellation only ever use Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint mirrors the DB_POSTGRES_READ and DB_POSTGRES_WRITE blocks.
type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

func WriteEndpoint(cfg *config.Config) Endpoint {
	return Endpoint(cfg.DB.Postgres.Write)
}

// ReadEndpoint falls back to the primary when no replica host is configured.
func ReadEndpoint(cfg *config.Config) Endpoint {
	if cfg.DB.Postgres.Read.Host == "" {
		return WriteEndpoint(cfg)
	}

	return Endpoint(cfg.DB.Postgres.Read)
}

// URL renders the endpoint as a lib/pq connection URL. prefix is prepended to the database name.
func (e Endpoint) URL(prefix string) *url.URL {
	query := url.Values{}

	query.Set("sslmode", e.SSLMode)
	if e.SSLMode == "" {
		query.Set("sslmode", defaultSSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     prefix + e.Name,
		RawQuery: query.Encode(),
	}
}

// New opens both pools. The returned func closes them.
func New(cfg *config.Config) (*Connection, func()) {
	postgres := cfg.DB.Postgres

	conn := &Connection{
		Read:  Connect("read", ReadEndpoint(cfg).URL(postgres.Prefix), postgres.MaxRetry, postgres.RetryWaitTime),
		Write: Connect("write", WriteEndpoint(cfg).URL(postgres.Prefix), postgres.MaxRetry, postgres.RetryWaitTime),
	}

	return conn, conn.Close
}

// Connect retries up to maxRetry times, waiting waitSeconds between attempts, then exits the process.
func Connect(name string, dsn *url.URL, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().Str("name", name).Str("host", dsn.Host).Str("database", dsn.Path).Logger()

	for attempt := 1; attempt <= max(1, maxRetry); attempt++ {
		db, err := sqlx.Connect("postgres", dsn.String())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Msg("Giving up connecting to database")

	return nil
}

func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing database connection")
		}
	}
}
