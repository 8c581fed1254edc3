package test

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-client/internal/app"
	"wallet-client/internal/backend/fake"
	"wallet-client/internal/backend/rest"
	"wallet-client/internal/config"
	"wallet-client/internal/handler"
	"wallet-client/internal/model"
	"wallet-client/internal/storage"
)

const giftCode = "AB12-CD34-EF56-GH78-IJ90-KL12"

type e2e struct {
	cfg    *config.Config
	client *rest.Client
	kv     *storage.MemoryKV
}

// setupE2E starts the demo API over a fresh ledger and returns a client
// session pointed at it.
func setupE2E(t *testing.T) e2e {
	t.Helper()
	if os.Getenv("SKIP_E2E") != "" {
		t.Skip("SKIP_E2E set")
	}
	gin.SetMode(gin.TestMode)

	ledger := fake.NewLedger(zerolog.Nop(), fake.WithCodes(map[string]decimal.Decimal{
		giftCode: decimal.NewFromInt(100),
	}))
	srv := httptest.NewServer(handler.NewHandler(ledger, zerolog.Nop()).SetupRoutes())
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:     config.AppConfig{Backend: config.BackendHTTP},
		API:     config.APIConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second, CacheTTL: 30 * time.Second},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		Worker:  config.WorkerConfig{ExchangeRateInterval: time.Hour},
	}

	return e2e{
		cfg:    cfg,
		client: rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.CacheTTL, zerolog.Nop()),
		kv:     storage.NewMemoryKV(),
	}
}

func (e e2e) session(t *testing.T) *app.App {
	t.Helper()
	a := app.Assemble(context.Background(), e.client, e.kv, e.cfg, zerolog.Nop())
	t.Cleanup(a.Close)
	return a
}

func TestE2E_RedeemThenTransfer(t *testing.T) {
	ctx := context.Background()
	env := setupE2E(t)
	a := env.session(t)
	svc := a.Service

	alice, err := svc.CreateWallet(ctx, "alice", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, a.Store.Snapshot().CurrentWallet.Balance.IsZero())

	_, err = svc.RedeemCdk(ctx, giftCode, "")
	require.NoError(t, err)
	assert.True(t, svc.State().CurrentWallet.Balance.Equal(decimal.NewFromInt(100)))

	// Bob signs up elsewhere; alice stays signed in here.
	bob, err := env.client.CreateWallet(ctx, "bob", decimal.Zero)
	require.NoError(t, err)

	_, err = svc.TransferByUsername(ctx, "alice", "bob", decimal.NewFromInt(40))
	require.NoError(t, err)

	state := svc.State()
	assert.Equal(t, alice.ID, state.CurrentWallet.ID)
	assert.True(t, state.CurrentWallet.Balance.Equal(decimal.NewFromInt(60)))
	assert.Empty(t, state.Error)
	assert.False(t, state.IsLoading)

	_, err = svc.GetTransactionHistory(ctx, alice.ID, 1, 10)
	require.NoError(t, err)

	state = svc.State()
	require.Len(t, state.Transactions, 2)
	head := state.Transactions[0]
	assert.Equal(t, model.TransactionTransfer, head.Type)
	assert.True(t, head.Amount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, bob.ID, *head.ToWalletID)
	assert.Equal(t, model.TransactionCdkRedeem, state.Transactions[1].Type)
	assert.Equal(t, 2, state.Pagination.TotalTransactions)

	// The code is spent.
	_, err = svc.RedeemCdk(ctx, giftCode, "alice")
	assert.ErrorIs(t, err, model.ErrCdkAlreadyRedeemed)
	assert.NotEmpty(t, svc.State().Error)
	assert.True(t, svc.State().CurrentWallet.Balance.Equal(decimal.NewFromInt(60)))
}

func TestE2E_RejectedTransferKeepsBalance(t *testing.T) {
	ctx := context.Background()
	env := setupE2E(t)
	svc := env.session(t).Service

	_, err := svc.CreateWallet(ctx, "alice", decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = env.client.CreateWallet(ctx, "bob", decimal.Zero)
	require.NoError(t, err)

	_, err = svc.TransferByUsername(ctx, "alice", "bob", decimal.NewFromInt(11))
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)

	_, err = svc.TransferByUsername(ctx, "alice", "ghost", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, "Recipient wallet not found", svc.State().Error)

	svc.ClearError()
	state := svc.State()
	assert.Empty(t, state.Error)
	assert.True(t, state.CurrentWallet.Balance.Equal(decimal.NewFromInt(10)))
}

func TestE2E_SessionRestoredOnBoot(t *testing.T) {
	ctx := context.Background()
	env := setupE2E(t)

	first := env.session(t)
	created, err := first.Service.CreateWallet(ctx, "alice", decimal.NewFromInt(25))
	require.NoError(t, err)

	second := env.session(t)
	restored := second.Store.Snapshot().CurrentWallet
	require.NotNil(t, restored)
	assert.Equal(t, created.ID, restored.ID)
	assert.True(t, restored.Balance.Equal(decimal.NewFromInt(25)))

	second.Service.Logout(ctx)

	third := env.session(t)
	assert.Nil(t, third.Store.Snapshot().CurrentWallet)
}

func TestE2E_LoginAndRefresh(t *testing.T) {
	ctx := context.Background()
	env := setupE2E(t)
	svc := env.session(t).Service

	_, err := svc.LoginWallet(ctx, "carol")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Nil(t, svc.State().CurrentWallet)

	carol, err := env.client.CreateWallet(ctx, "carol", decimal.NewFromInt(7))
	require.NoError(t, err)

	w, err := svc.LoginWallet(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, carol.ID, w.ID)

	_, err = env.client.UpdateBalance(ctx, carol.ID, decimal.NewFromInt(70))
	require.NoError(t, err)

	refreshed, err := svc.RefreshWallet(ctx, carol.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.Balance.Equal(decimal.NewFromInt(70)))
	assert.True(t, svc.State().CurrentWallet.Balance.Equal(decimal.NewFromInt(70)))
}
