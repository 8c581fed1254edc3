package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"wallet-client/internal/model"
)

type RateSource interface {
	LatestExchangeRate(ctx context.Context) (*model.ExchangeRate, error)
}

// ExchangeRateWorker polls the latest exchange rate and keeps the last one
// fetched successfully. It never touches the wallet store.
type ExchangeRateWorker struct {
	source   RateSource
	interval time.Duration
	logger   zerolog.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       *sync.WaitGroup

	mu     sync.RWMutex
	latest *model.ExchangeRate
}

func NewExchangeRateWorker(source RateSource, interval time.Duration, logger zerolog.Logger) *ExchangeRateWorker {
	return &ExchangeRateWorker{
		source:   source,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		wg:       &sync.WaitGroup{},
	}
}

// Start fetches once immediately and then on every tick.
func (w *ExchangeRateWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().Dur("interval", w.interval).Msg("Exchange rate worker started")
		w.Refresh(ctx)

		for {
			select {
			case <-ticker.C:
				w.Refresh(ctx)
			case <-w.stopChan:
				w.logger.Info().Msg("Exchange rate worker stopping")
				return
			case <-ctx.Done():
				w.logger.Info().Msg("Exchange rate worker stopping (context done)")
				return
			}
		}
	}()
}

func (w *ExchangeRateWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
}

// Refresh fetches the rate once. A failure keeps the previous rate.
func (w *ExchangeRateWorker) Refresh(ctx context.Context) {
	w.logger.Debug().Msg("Refreshing exchange rate")
	rate, err := w.source.LatestExchangeRate(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to refresh exchange rate")
		return
	}

	w.mu.Lock()
	w.latest = rate
	w.mu.Unlock()

	w.logger.Debug().Str("rate", rate.Rate.String()).Msg("Exchange rate updated")
}

// Latest returns the last rate fetched, if any.
func (w *ExchangeRateWorker) Latest() (model.ExchangeRate, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.latest == nil {
		return model.ExchangeRate{}, false
	}
	return *w.latest, true
}
