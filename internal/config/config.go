package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type key string

const (
	KeyUUID    = key("uuid")
	KeyLogger  = key("logger")
	KeyMetrics = key("metrics")
)

type Config struct {
	Service    Service
	Postgres   Postgres
	Centrifuge Centrifuge
	Kafka      Kafka
	Logger     Logger
	Metrics    Metrics
	Platform   Platform
	Limits     Limits
	Resilience Resilience
	RateLimit  RateLimit
	Cache      Cache
	Retention  Retention
}

type Service struct {
	Name string `env:"SERVICE_NAME" env-default:"messaging-service"`
	Port string `env:"SERVICE_PORT" env-default:"8080"`
}

type Postgres struct {
	User     string `env:"POSTGRES_USER" env-default:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `env:"POSTGRES_DB" env-default:"messaging"`
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `env:"POSTGRES_PORT" env-default:"5432"`
}

type Centrifuge struct {
	BaseURL   string        `env:"CENTRIFUGO_BASE_URL" env-default:"http://localhost:8000"`
	APIKey    string        `env:"CENTRIFUGO_API_KEY" env-default:""`
	JWTSecret string        `env:"CENTRIFUGO_JWT_SECRET" env-default:""`
	Timeout   time.Duration `env:"CENTRIFUGO_TIMEOUT" env-default:"5s"`
}

type Kafka struct {
	Host      string `env:"KAFKA_HOST" env-default:"localhost"`
	Port      string `env:"KAFKA_PORT" env-default:"9092"`
	UserTopic string `env:"KAFKA_USER_TOPIC" env-default:"user_updates"`
}

type Logger struct {
	Host string `env:"LOGGER_HOST" env-default:"localhost"`
	Port string `env:"LOGGER_PORT" env-default:"5114"`
}

type Metrics struct {
	Host string `env:"METRICS_HOST" env-default:"localhost"`
	Port int    `env:"METRICS_PORT" env-default:"8125"`
}

type Platform struct {
	Env string `env:"ENV" env-default:"dev"`
}

type Limits struct {
	MaxChannelMembers  int `env:"MAX_CHANNEL_MEMBERS" env-default:"1000"`
	MaxChannelsPerTeam int `env:"MAX_CHANNELS_PER_TEAM" env-default:"100"`
	MaxMessageLength   int `env:"MAX_MESSAGE_LENGTH" env-default:"2000"`
}

type Resilience struct {
	MaxRetries       int           `env:"RESILIENCE_MAX_RETRIES" env-default:"3"`
	InitialBackoff   time.Duration `env:"RESILIENCE_INITIAL_BACKOFF" env-default:"100ms"`
	FailureThreshold int           `env:"RESILIENCE_FAILURE_THRESHOLD" env-default:"5"`
	CoolDown         time.Duration `env:"RESILIENCE_COOL_DOWN" env-default:"30s"`
}

type RateLimit struct {
	FreeRequests       int           `env:"RATE_FREE_REQUESTS" env-default:"100"`
	ProRequests        int           `env:"RATE_PRO_REQUESTS" env-default:"1000"`
	EnterpriseRequests int           `env:"RATE_ENTERPRISE_REQUESTS" env-default:"10000"`
	Window             time.Duration `env:"RATE_WINDOW" env-default:"60s"`
}

type Cache struct {
	TTL        time.Duration `env:"CACHE_TTL" env-default:"5m"`
	MaxEntries int           `env:"CACHE_MAX_ENTRIES" env-default:"1000"`
}

type Retention struct {
	ArchiveAfter time.Duration `env:"RETENTION_ARCHIVE_AFTER" env-default:"720h"`
	MaxAge       time.Duration `env:"RETENTION_MAX_AGE" env-default:"8760h"`
	Interval     time.Duration `env:"RETENTION_INTERVAL" env-default:"1h"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read config: %v", err)
	}
	return &cfg
}
