package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wallet-client/internal/model"
	"wallet-client/internal/storage"
	"wallet-client/internal/store"
	mocks "wallet-client/mocks/backend"
)

type fixture struct {
	svc     WalletService
	store   *store.Store
	backend *mocks.Backend
	storage *storage.Adapter
}

func newFixture(t *testing.T, current *model.Wallet) fixture {
	t.Helper()
	ctx := context.Background()

	st := store.New(store.InitialState())
	if current != nil {
		st.Dispatch(store.SetWallet{Wallet: current})
	}
	be := mocks.NewBackend(t)
	adapter := storage.NewAdapter(ctx, storage.NewMemoryKV(), zerolog.Nop())

	return fixture{
		svc:     NewWalletService(st, be, adapter, zerolog.Nop()),
		store:   st,
		backend: be,
		storage: adapter,
	}
}

func alice(balance string) *model.Wallet {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &model.Wallet{
		ID:        "w-alice",
		Username:  "alice",
		Balance:   decimal.RequireFromString(balance),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func strPtr(s string) *string { return &s }

func TestTransfer_InsufficientFunds_NoNetworkCall(t *testing.T) {
	f := newFixture(t, alice("100.00"))

	_, err := f.svc.Transfer(context.Background(), "w-alice", "w-bob", decimal.RequireFromString("150.00"))

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
	assert.ErrorIs(t, err, model.ErrValidation)

	state := f.store.Snapshot()
	assert.Equal(t, "Insufficient funds", state.Error)
	assert.False(t, state.IsLoading)
	assert.True(t, state.CurrentWallet.Balance.Equal(decimal.RequireFromString("100.00")))
	f.backend.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything)
}

func TestTransferByUsername_InsufficientFunds_NoNetworkCall(t *testing.T) {
	f := newFixture(t, alice("10"))

	_, err := f.svc.TransferByUsername(context.Background(), "alice", "bob", decimal.NewFromInt(11))

	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
	f.backend.AssertNotCalled(t, "TransferByUsername", mock.Anything, mock.Anything)
}

func TestTransfer_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t, alice("100"))

	_, err := f.svc.Transfer(context.Background(), "w-alice", "w-bob", decimal.Zero)

	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, "Amount must be greater than 0", f.store.Snapshot().Error)
}

func TestTransfer_UsesBackendBalanceAndPersistsIt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice("100.00"))

	// The backend charged a fee, so its balance differs from 100 - 40.
	updated := alice("59.50")
	updated.UpdatedAt = updated.UpdatedAt.Add(time.Minute)
	tx := &model.Transaction{
		ID:           "t-1",
		FromWalletID: strPtr("w-alice"),
		ToWalletID:   strPtr("w-bob"),
		Amount:       decimal.RequireFromString("40.00"),
		Type:         model.TransactionTransfer,
	}
	f.backend.On("Transfer", mock.Anything, mock.MatchedBy(func(req model.TransferRequest) bool {
		return req.FromWalletID == "w-alice" && req.ToWalletID == "w-bob" && req.Amount.Equal(decimal.NewFromInt(40))
	})).Return(&model.TransferResult{Transaction: tx, UpdatedWallet: updated}, nil)

	res, err := f.svc.Transfer(ctx, "w-alice", "w-bob", decimal.RequireFromString("40.00"))
	require.NoError(t, err)
	assert.Equal(t, "t-1", res.Transaction.ID)

	state := f.store.Snapshot()
	assert.Equal(t, "59.5", state.CurrentWallet.Balance.String())
	assert.Empty(t, state.Error)
	assert.False(t, state.IsLoading)

	inMemory, err := json.Marshal(state.CurrentWallet)
	require.NoError(t, err)
	persisted, ok := f.storage.Get(ctx, store.WalletKey)
	require.True(t, ok)
	assert.Equal(t, inMemory, persisted)
}

func TestTransfer_RefetchesWalletWhenResponseOmitsIt(t *testing.T) {
	f := newFixture(t, alice("100"))

	tx := &model.Transaction{ID: "t-2", FromWalletID: strPtr("w-alice"), ToWalletID: strPtr("w-bob"), Amount: decimal.NewFromInt(30)}
	f.backend.On("Transfer", mock.Anything, mock.Anything).Return(&model.TransferResult{Transaction: tx}, nil)
	f.backend.On("GetWallet", mock.Anything, "w-alice").Return(alice("70"), nil)

	_, err := f.svc.Transfer(context.Background(), "w-alice", "w-bob", decimal.NewFromInt(30))
	require.NoError(t, err)

	assert.Equal(t, "70", f.store.Snapshot().CurrentWallet.Balance.String())
}

func TestTransfer_FailureMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantKind error
	}{
		{
			name:     "backend message kept verbatim",
			err:      &model.WalletError{Kind: model.ErrNotFound, Status: http.StatusNotFound, Code: model.CodeWalletNotFound, Message: "Recipient wallet not found"},
			wantMsg:  "Recipient wallet not found",
			wantKind: model.ErrNotFound,
		},
		{
			name:     "generic status text replaced",
			err:      &model.WalletError{Kind: model.ErrServer, Status: http.StatusInternalServerError, Message: model.MsgServerError},
			wantMsg:  model.MsgTransferFailed,
			wantKind: model.ErrTransferFailed,
		},
		{
			name:     "network failure kept",
			err:      &model.WalletError{Kind: model.ErrNetwork, Message: "connection refused"},
			wantMsg:  "connection refused",
			wantKind: model.ErrNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, alice("100"))
			f.backend.On("Transfer", mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := f.svc.Transfer(context.Background(), "w-alice", "w-bob", decimal.NewFromInt(5))

			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, tt.wantMsg, err.Error())

			state := f.store.Snapshot()
			assert.Equal(t, tt.wantMsg, state.Error)
			assert.False(t, state.IsLoading)
			assert.Equal(t, "100", state.CurrentWallet.Balance.String())
		})
	}
}

func TestCreateWallet_SetsAndPersistsWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	f.backend.On("CreateWallet", mock.Anything, "alice", decimal.Zero).Return(alice("0"), nil)

	w, err := f.svc.CreateWallet(ctx, "  alice ", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "alice", w.Username)

	state := f.store.Snapshot()
	require.NotNil(t, state.CurrentWallet)
	assert.Equal(t, "w-alice", state.CurrentWallet.ID)

	raw, ok := f.storage.Get(ctx, store.WalletKey)
	require.True(t, ok)
	var persisted model.Wallet
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, "alice", persisted.Username)
}

func TestCreateWallet_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		balance  decimal.Decimal
		wantMsg  string
	}{
		{name: "empty username", username: "   ", balance: decimal.Zero, wantMsg: "Username is required"},
		{name: "negative balance", username: "alice", balance: decimal.NewFromInt(-1), wantMsg: "Initial balance must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)

			_, err := f.svc.CreateWallet(context.Background(), tt.username, tt.balance)

			assert.ErrorIs(t, err, model.ErrValidation)
			assert.Equal(t, tt.wantMsg, f.store.Snapshot().Error)
		})
	}
}

func TestCreateWallet_GenericFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("CreateWallet", mock.Anything, "alice", decimal.Zero).
		Return(nil, &model.WalletError{Kind: model.ErrServer, Status: http.StatusBadGateway, Message: model.MsgServerError})

	_, err := f.svc.CreateWallet(context.Background(), "alice", decimal.Zero)

	assert.ErrorIs(t, err, model.ErrWalletCreationFailed)
	assert.Equal(t, model.MsgWalletCreation, f.store.Snapshot().Error)
	assert.Nil(t, f.store.Snapshot().CurrentWallet)
}

func TestCreateWallet_UsernameTaken(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("CreateWallet", mock.Anything, "alice", decimal.Zero).
		Return(nil, &model.WalletError{Kind: model.ErrUsernameTaken, Status: http.StatusConflict, Message: "Username already exists"})

	_, err := f.svc.CreateWallet(context.Background(), "alice", decimal.Zero)

	assert.ErrorIs(t, err, model.ErrUsernameTaken)
	assert.Equal(t, "Username already exists", f.store.Snapshot().Error)
}

func TestLoginWallet_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetWalletByUsername", mock.Anything, "carol").
		Return(nil, &model.WalletError{Kind: model.ErrNotFound, Status: http.StatusNotFound, Message: model.MsgResourceNotFound})

	_, err := f.svc.LoginWallet(context.Background(), "carol")

	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, model.MsgWalletNotFound, f.store.Snapshot().Error)
}

func TestLoginWallet_Success(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetWalletByUsername", mock.Anything, "alice").Return(alice("12.34"), nil)

	w, err := f.svc.LoginWallet(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "w-alice", w.ID)
	assert.Equal(t, "12.34", f.store.Snapshot().CurrentWallet.Balance.String())
}

func TestSetBalance_OnlyReplacesCurrentWallet(t *testing.T) {
	f := newFixture(t, alice("5"))
	bob := &model.Wallet{ID: "w-bob", Username: "bob", Balance: decimal.NewFromInt(900)}
	f.backend.On("UpdateBalance", mock.Anything, "w-bob", decimal.NewFromInt(900)).Return(bob, nil)

	w, err := f.svc.SetBalance(context.Background(), "w-bob", decimal.NewFromInt(900))
	require.NoError(t, err)

	assert.Equal(t, "w-bob", w.ID)
	assert.Equal(t, "w-alice", f.store.Snapshot().CurrentWallet.ID)
}

func TestRedeemCdk_InvalidFormat_NoNetworkCall(t *testing.T) {
	f := newFixture(t, alice("0"))

	_, err := f.svc.RedeemCdk(context.Background(), "AB12-CD34-EF56", "alice")

	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, "Invalid CDK format", f.store.Snapshot().Error)
	f.backend.AssertNotCalled(t, "RedeemCdk", mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeemCdk_RefreshesCurrentWallet(t *testing.T) {
	f := newFixture(t, alice("0"))

	f.backend.On("RedeemCdk", mock.Anything, "AB12-CD34-EF56-GH78-IJ90-KL12", "alice").
		Return(&model.RedeemResult{Amount: decimal.NewFromInt(100)}, nil)
	f.backend.On("GetWallet", mock.Anything, "w-alice").Return(alice("100"), nil)

	res, err := f.svc.RedeemCdk(context.Background(), "ab12-cd34-ef56-gh78-ij90-kl12", "")
	require.NoError(t, err)

	assert.Equal(t, "100", res.Amount.String())
	assert.Equal(t, "100", f.store.Snapshot().CurrentWallet.Balance.String())
}

func TestRedeemCdk_AlreadyRedeemed(t *testing.T) {
	f := newFixture(t, alice("0"))
	f.backend.On("RedeemCdk", mock.Anything, mock.Anything, "alice").
		Return(nil, &model.WalletError{Kind: model.ErrCdkAlreadyRedeemed, Status: http.StatusConflict, Message: "CDK has already been redeemed"})

	_, err := f.svc.RedeemCdk(context.Background(), "AB12-CD34-EF56-GH78-IJ90-KL12", "alice")

	assert.ErrorIs(t, err, model.ErrCdkAlreadyRedeemed)
	assert.Equal(t, "CDK has already been redeemed", f.store.Snapshot().Error)
}

func TestGetTransactionHistory_ReplacesTransactions(t *testing.T) {
	f := newFixture(t, alice("60"))

	page := &model.TransactionPage{
		Transactions: []model.Transaction{
			{ID: "t-2", Amount: decimal.NewFromInt(40), Type: model.TransactionTransfer},
			{ID: "t-1", Amount: decimal.NewFromInt(100), Type: model.TransactionCdkRedeem},
		},
		Pagination: model.Pagination{CurrentPage: 2, TotalPages: 3, TotalTransactions: 22, Limit: 10},
	}
	f.backend.On("GetTransactionHistory", mock.Anything, "w-alice", 2, 10).Return(page, nil)

	first, err := f.svc.GetTransactionHistory(context.Background(), "w-alice", 2, 10)
	require.NoError(t, err)
	second, err := f.svc.GetTransactionHistory(context.Background(), "w-alice", 2, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	state := f.store.Snapshot()
	require.Len(t, state.Transactions, 2)
	assert.Equal(t, "t-2", state.Transactions[0].ID)
	assert.True(t, state.Pagination.HasNextPage)
	assert.True(t, state.Pagination.HasPreviousPage)
}

func TestGetTransactionHistory_Validation(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
	}{
		{name: "page zero", page: 0, limit: 10},
		{name: "limit zero", page: 1, limit: 0},
		{name: "limit over max", page: 1, limit: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, alice("1"))

			_, err := f.svc.GetTransactionHistory(context.Background(), "w-alice", tt.page, tt.limit)

			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestLoadingFlagBracketsRequest(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("GetWalletByUsername", mock.Anything, "alice").Return(alice("1"), nil)

	var loading []bool
	unsubscribe := f.store.Subscribe(func(s store.State) {
		loading = append(loading, s.IsLoading)
	})
	defer unsubscribe()

	_, err := f.svc.LoginWallet(context.Background(), "alice")
	require.NoError(t, err)

	require.NotEmpty(t, loading)
	assert.True(t, loading[0])
	assert.False(t, loading[len(loading)-1])
}

func TestLogout_ClearsStateAndStorage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.backend.On("GetWalletByUsername", mock.Anything, "alice").Return(alice("1"), nil)

	_, err := f.svc.LoginWallet(ctx, "alice")
	require.NoError(t, err)
	_, ok := f.storage.Get(ctx, store.WalletKey)
	require.True(t, ok)

	f.svc.Logout(ctx)

	state := f.store.Snapshot()
	assert.Nil(t, state.CurrentWallet)
	assert.Empty(t, state.Transactions)
	assert.Equal(t, model.DefaultPagination(), state.Pagination)
	_, ok = f.storage.Get(ctx, store.WalletKey)
	assert.False(t, ok)
}

func TestClearError(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.LoginWallet(context.Background(), "")
	require.Error(t, err)
	require.NotEmpty(t, f.store.Snapshot().Error)

	f.svc.ClearError()

	assert.Empty(t, f.svc.State().Error)
}

// recordLoading captures the loading flag of every dispatched state.
func recordLoading(t *testing.T, st *store.Store) *[]bool {
	t.Helper()
	var loading []bool
	unsubscribe := st.Subscribe(func(s store.State) {
		loading = append(loading, s.IsLoading)
	})
	t.Cleanup(unsubscribe)
	return &loading
}

func TestValidateCdk_Success(t *testing.T) {
	f := newFixture(t, alice("1"))
	f.backend.On("ValidateCdk", mock.Anything, "AB12-CD34-EF56-GH78-IJ90-KL12").
		Return(&model.CdkValidation{Valid: true, Amount: decimal.NewFromInt(100), Message: "CDK is valid"}, nil)
	loading := recordLoading(t, f.store)

	res, err := f.svc.ValidateCdk(context.Background(), " ab12-cd34-ef56-gh78-ij90-kl12 ")
	require.NoError(t, err)

	assert.True(t, res.Valid)
	assert.True(t, res.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, []bool{true, false}, *loading)
	assert.Empty(t, f.store.Snapshot().Error)
	assert.True(t, f.store.Snapshot().CurrentWallet.Balance.Equal(decimal.NewFromInt(1)))
}

func TestValidateCdk_FailureRecordsError(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.On("ValidateCdk", mock.Anything, "AB12-CD34-EF56-GH78-IJ90-KL12").
		Return(nil, &model.WalletError{Kind: model.ErrServer, Status: http.StatusBadGateway, Message: "upstream unavailable"})
	loading := recordLoading(t, f.store)

	_, err := f.svc.ValidateCdk(context.Background(), "AB12-CD34-EF56-GH78-IJ90-KL12")

	assert.ErrorIs(t, err, model.ErrServer)
	state := f.store.Snapshot()
	assert.Equal(t, "upstream unavailable", state.Error)
	assert.False(t, state.IsLoading)
	require.NotEmpty(t, *loading)
	assert.True(t, (*loading)[0])
	assert.False(t, (*loading)[len(*loading)-1])
}

func TestValidateCdk_InvalidFormat_NoNetworkCall(t *testing.T) {
	f := newFixture(t, nil)
	loading := recordLoading(t, f.store)

	_, err := f.svc.ValidateCdk(context.Background(), "ABCD")

	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, "Invalid CDK format", f.store.Snapshot().Error)
	for _, l := range *loading {
		assert.False(t, l)
	}
	f.backend.AssertNotCalled(t, "ValidateCdk", mock.Anything, mock.Anything)
}

func TestRefreshWallet_ReplacesAndPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice("1"))
	f.backend.On("GetWallet", mock.Anything, "w-alice").Return(alice("75.25"), nil)
	loading := recordLoading(t, f.store)

	w, err := f.svc.RefreshWallet(ctx, "w-alice")
	require.NoError(t, err)

	assert.True(t, w.Balance.Equal(decimal.RequireFromString("75.25")))
	assert.True(t, (*loading)[0])
	assert.False(t, (*loading)[len(*loading)-1])

	raw, ok := f.storage.Get(ctx, store.WalletKey)
	require.True(t, ok)
	var persisted model.Wallet
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.True(t, persisted.Balance.Equal(decimal.RequireFromString("75.25")))
}

func TestRefreshWallet_FailureKeepsWallet(t *testing.T) {
	f := newFixture(t, alice("1"))
	f.backend.On("GetWallet", mock.Anything, "w-alice").
		Return(nil, &model.WalletError{Kind: model.ErrNetwork, Message: "connection refused"})
	loading := recordLoading(t, f.store)

	_, err := f.svc.RefreshWallet(context.Background(), "w-alice")

	assert.ErrorIs(t, err, model.ErrNetwork)
	state := f.store.Snapshot()
	assert.Equal(t, "connection refused", state.Error)
	assert.False(t, state.IsLoading)
	assert.True(t, state.CurrentWallet.Balance.Equal(decimal.NewFromInt(1)))
	assert.True(t, (*loading)[0])
}

func TestRefreshWallet_RequiresID(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.RefreshWallet(context.Background(), "")

	assert.ErrorIs(t, err, model.ErrValidation)
	assert.NotEmpty(t, f.store.Snapshot().Error)
	f.backend.AssertNotCalled(t, "GetWallet", mock.Anything, mock.Anything)
}
