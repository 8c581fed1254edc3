package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"wallet-client/internal/backend"
	"wallet-client/internal/backend/fake"
	"wallet-client/internal/backend/rest"
	"wallet-client/internal/config"
	"wallet-client/internal/database"
	"wallet-client/internal/service"
	"wallet-client/internal/storage"
	"wallet-client/internal/storage/file"
	"wallet-client/internal/storage/postgres"
	"wallet-client/internal/storage/redis"
	"wallet-client/internal/store"
	"wallet-client/internal/worker"
)

// App is one client session: the store restored from local persistence,
// the configured backend and the wallet service bound to both.
type App struct {
	Store   *store.Store
	Storage *storage.Adapter
	Backend backend.Backend
	Service service.WalletService
	Rates   *worker.ExchangeRateWorker

	logger  zerolog.Logger
	closers []func()
}

func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	be, err := NewBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	kv, closeKV, err := NewKV(ctx, cfg, logger)
	if err != nil {
		// Persistence is optional; the adapter treats a nil store as unavailable.
		logger.Warn().Err(err).Str("driver", cfg.Storage.Driver).Msg("local storage disabled")
	}

	return Assemble(ctx, be, kv, cfg, logger, closeKV), nil
}

// Assemble wires a session around an existing backend and key-value store.
func Assemble(ctx context.Context, be backend.Backend, kv storage.KV, cfg *config.Config, logger zerolog.Logger, closers ...func()) *App {
	adapter := storage.NewAdapter(ctx, kv, logger.With().Str("component", "storage").Logger())
	st := store.New(store.Restore(ctx, adapter, logger))

	a := &App{
		Store:   st,
		Storage: adapter,
		Backend: be,
		Service: service.NewWalletService(st, be, adapter, logger.With().Str("component", "wallet").Logger()),
		Rates:   worker.NewExchangeRateWorker(be, cfg.Worker.ExchangeRateInterval, logger.With().Str("component", "rates").Logger()),
		logger:  logger,
	}
	for _, c := range closers {
		if c != nil {
			a.closers = append(a.closers, c)
		}
	}
	return a
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// NewBackend returns the REST client or the in-process demo ledger.
func NewBackend(cfg *config.Config, logger zerolog.Logger) (backend.Backend, error) {
	switch cfg.App.Backend {
	case config.BackendDemo:
		return NewLedger(cfg.Demo, logger)
	case config.BackendHTTP:
		return rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.CacheTTL, logger.With().Str("component", "api").Logger()), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.App.Backend)
	}
}

func NewLedger(cfg config.DemoConfig, logger zerolog.Logger) (*fake.Ledger, error) {
	codes := make(map[string]decimal.Decimal, len(cfg.Codes))
	for code, reward := range cfg.Codes {
		amount, err := decimal.NewFromString(reward)
		if err != nil {
			return nil, fmt.Errorf("invalid reward %q for code %s: %w", reward, code, err)
		}
		codes[code] = amount
	}

	return fake.NewLedger(
		logger.With().Str("component", "ledger").Logger(),
		fake.WithLatency(cfg.Latency),
		fake.WithCodes(codes),
		fake.WithAcceptAnyCode(cfg.AcceptAnyCode),
	), nil
}

// NewKV opens the configured storage driver. The returned close function
// may be nil.
func NewKV(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.KV, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return storage.NewMemoryKV(), nil, nil
	case config.StorageFile:
		kv, err := file.New(cfg.Storage.FilePath, logger.With().Str("component", "storage").Logger())
		if err != nil {
			return nil, nil, err
		}
		return kv, nil, nil
	case config.StorageRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return redis.New(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.New(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
