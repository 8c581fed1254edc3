package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	BackendHTTP = "http"
	BackendDemo = "demo"

	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Server   ServerConfig
	Worker   WorkerConfig
	Demo     DemoConfig
}

type AppConfig struct {
	Backend   string `env:"WALLET_BACKEND" envDefault:"http"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

type APIConfig struct {
	BaseURL  string        `env:"API_BASE_URL" envDefault:"http://localhost:3200/api"`
	Timeout  time.Duration `env:"API_TIMEOUT" envDefault:"8s"`
	CacheTTL time.Duration `env:"API_CACHE_TTL" envDefault:"30s"`
}

// StorageConfig selects the local persistence driver. An unset driver means
// file storage, except with the demo backend: its ledger lives in memory, so
// a wallet persisted on disk would not exist in the next run's ledger.
type StorageConfig struct {
	Driver   string `env:"STORAGE_DRIVER"`
	FilePath string `env:"STORAGE_FILE_PATH" envDefault:".wallet/storage.json"`
}

type RedisConfig struct {
	Host        string        `env:"REDIS_HOST" envDefault:"localhost"`
	Port        string        `env:"REDIS_PORT" envDefault:"6379"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB" envDefault:"0"`
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	KeyPrefix   string        `env:"REDIS_KEY_PREFIX" envDefault:"wallet-client:"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name            string        `env:"DB_NAME" envDefault:"wallet_client"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"5"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"1"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"3200"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type WorkerConfig struct {
	ExchangeRateInterval time.Duration `env:"WORKER_EXCHANGE_RATE_INTERVAL" envDefault:"1h"`
}

// DemoConfig tunes the in-process ledger. Codes is a comma separated list
// of code:reward pairs.
type DemoConfig struct {
	Latency       time.Duration     `env:"DEMO_LATENCY" envDefault:"0s"`
	Codes         map[string]string `env:"DEMO_CDK_CODES" envKeyValSeparator:":" envDefault:"ABCD-EFGH-IJKL-MNOP-QRST-UVWX:100"`
	AcceptAnyCode bool              `env:"DEMO_ACCEPT_ANY_CODE" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver != "" {
		return
	}
	if c.App.Backend == BackendDemo {
		c.Storage.Driver = StorageMemory
		return
	}
	c.Storage.Driver = StorageFile
}

func (c *Config) validate() error {
	switch c.App.Backend {
	case BackendHTTP, BackendDemo:
	default:
		return fmt.Errorf("unknown backend %q", c.App.Backend)
	}
	switch c.Storage.Driver {
	case StorageMemory, StorageFile, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if c.Worker.ExchangeRateInterval <= 0 {
		return fmt.Errorf("WORKER_EXCHANGE_RATE_INTERVAL must be positive, got %s", c.Worker.ExchangeRateInterval)
	}
	return nil
}
