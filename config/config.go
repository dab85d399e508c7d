package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	HTTPAddress string `envconfig:"HTTP_ADDRESS" default:":5000"`
	SecretKey   string `envconfig:"SECRET_KEY" default:"supersecretkey"`

	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	UseAPIDatabase bool          `envconfig:"USE_API_DATABASE"`
	APIEndpoint    string        `envconfig:"API_ENDPOINT" default:"https://api.example.com"`
	APITimeout     time.Duration `envconfig:"API_TIMEOUT" default:"5s"`

	RedisAddr           string   `envconfig:"REDIS_ADDR"`
	KafkaBrokers        []string `envconfig:"KAFKA_BROKERS"`
	KafkaConnectRetries int      `envconfig:"KAFKA_CONNECT_RETRIES" default:"10"`

	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"72h"`
	ProductCacheTTL   time.Duration `envconfig:"PRODUCT_CACHE_TTL" default:"5m"`
	LowStockThreshold int           `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
	CORSAllowOrigins  string        `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads the environment and applies the profile defaults for APP_ENV.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}

	switch c.Env {
	case EnvDevelopment:
		if c.DatabaseURL == "" {
			c.DatabaseURL = "sqlite:///dev.db"
		}
		if _, set := os.LookupEnv("USE_API_DATABASE"); !set {
			c.UseAPIDatabase = false
		}
	case EnvProduction:
		if _, set := os.LookupEnv("USE_API_DATABASE"); !set {
			c.UseAPIDatabase = true
		}
	default:
		return nil, errors.Errorf("unknown APP_ENV %q", c.Env)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = "sqlite:///store.db"
	}
	if c.LowStockThreshold < 0 {
		return nil, errors.New("LOW_STOCK_THRESHOLD must not be negative")
	}

	return &c, nil
}
