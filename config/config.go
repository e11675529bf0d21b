package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const envFile = ".env"

type Config struct {
	Server       Server       `envconfig:"SERVER"`
	App          App          `envconfig:"APP"`
	Cache        Cache        `envconfig:"CACHE"`
	JWT          JWT          `envconfig:"JWT"`
	DB           DB           `envconfig:"DB"`
	Booking      Booking      `envconfig:"BOOKING"`
	Notification Notification `envconfig:"NOTIFICATION"`
	Kafka        Kafka        `envconfig:"KAFKA"`
	RabbitMQ     RabbitMQ     `envconfig:"RABBITMQ"`
	External     External     `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name        string `envconfig:"NAME"     default:"studio"`
	Timezone    string `envconfig:"TIMEZONE" default:"Europe/Madrid"`
	APIKey      string `envconfig:"API_KEY"`
	CORS        CORS   `envconfig:"CORS"`
	RateLimiter struct {
		Enable        bool `envconfig:"ENABLE"`
		MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"60"`
		WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
	} `envconfig:"RATE_LIMITER"`
}

type CORS struct {
	Enable           bool     `envconfig:"ENABLE"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

type Cache struct {
	TTL   int `envconfig:"TTL"`
	Redis struct {
		Primary Redis `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
}

type Redis struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type JWT struct {
	AccessSecret    string `envconfig:"ACCESS_SECRET"`
	AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"60"`
}

type DB struct {
	Postgres Postgres `envconfig:"POSTGRES"`
}

type Postgres struct {
	MaxRetry       int              `envconfig:"MAX_RETRY"       default:"5"`
	RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MigrationTable string           `envconfig:"MIGRATION_TABLE"`
	AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
	Prefix         string           `envconfig:"PREFIX"`
	Read           PostgresEndpoint `envconfig:"READ"`
	Write          PostgresEndpoint `envconfig:"WRITE"`
}

type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT" default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

// Booking holds the admission policy. Durations are whole units so they read well in .env.
type Booking struct {
	MinLeadTimeMinutes      int    `envconfig:"MIN_LEAD_TIME_MINUTES"     default:"120"`
	MaxAdvanceDays          int    `envconfig:"MAX_ADVANCE_DAYS"          default:"90"`
	CancellationWindowHours int    `envconfig:"CANCELLATION_WINDOW_HOURS" default:"12"`
	SlotGranularityMinutes  int    `envconfig:"SLOT_GRANULARITY_MINUTES"  default:"30"`
	HorizonDays             int    `envconfig:"HORIZON_DAYS"              default:"90"`
	HorizonCron             string `envconfig:"HORIZON_CRON"              default:"5 0 * * *"`
	MaxRangeDays            int    `envconfig:"MAX_RANGE_DAYS"            default:"92"`
}

type Notification struct {
	// Sink is one of kafka, rabbitmq or log.
	Sink          string `envconfig:"SINK"           default:"log"`
	QueueSize     int    `envconfig:"QUEUE_SIZE"     default:"100"`
	Topic         string `envconfig:"TOPIC"          default:"booking.events"`
	ConsumerGroup string `envconfig:"CONSUMER_GROUP" default:"studio-notifier"`
	Queue         string `envconfig:"QUEUE"          default:"studio.notifications"`
}

type Kafka struct {
	Brokers       []string `envconfig:"BROKERS"`
	ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
	SASL          struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
}

type RabbitMQ struct {
	URL      string `envconfig:"URL"`
	Exchange string `envconfig:"EXCHANGE" default:"booking.exchange"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	Twilio struct {
		AccountSID     string `envconfig:"ACCOUNT_SID"`
		AuthToken      string `envconfig:"AUTH_TOKEN"`
		FromNumber     string `envconfig:"FROM_NUMBER"`
		WhatsAppNumber string `envconfig:"WHATSAPP_NUMBER"`
	} `envconfig:"TWILIO"`
}

// Load reads .env when present, then the process environment. A missing .env is not an error.
func Load() (Config, error) {
	var cfg Config

	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
		}

		log.Debug().Msg("No .env file found, using process environment")
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return cfg, nil
}

var (
	conf Config
	once sync.Once
)

// Get loads the configuration once and exits the process if it is invalid.
func Get() *Config {
	once.Do(func() {
		var err error

		conf, err = Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().Str("app", conf.App.Name).Str("env", conf.Server.Env).Msg("Configuration loaded")
	})

	return &conf
}
