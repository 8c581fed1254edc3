package fake

import (
	"context"
	"math/rand/v2"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"wallet-client/internal/backend"
	"wallet-client/internal/cdk"
	"wallet-client/internal/model"
)

var _ backend.Backend = (*Ledger)(nil)

const maxPageLimit = 100

// Ledger is an in-memory wallet backend for demos and tests. It enforces the
// same rules as the real service: unique usernames, non-negative balances
// and single-use CDK codes.
type Ledger struct {
	mu         sync.Mutex
	wallets    map[string]*model.Wallet
	byUsername map[string]string
	txs        []model.Transaction
	codes      map[string]decimal.Decimal
	redeemed   map[string]bool
	records    []model.CdkExchangeRecord

	latency   time.Duration
	acceptAny bool
	rng       *rand.Rand
	now       func() time.Time
	logger    zerolog.Logger
}

type Option func(*Ledger)

// WithLatency delays every call by d, or until the context ends.
func WithLatency(d time.Duration) Option {
	return func(l *Ledger) { l.latency = d }
}

// WithCodes seeds redeemable codes and their rewards.
func WithCodes(codes map[string]decimal.Decimal) Option {
	return func(l *Ledger) {
		for code, reward := range codes {
			l.codes[cdk.Normalize(code)] = reward
		}
	}
}

// WithAcceptAnyCode makes every well-formed unseeded code pay a random
// reward once.
func WithAcceptAnyCode(accept bool) Option {
	return func(l *Ledger) { l.acceptAny = accept }
}

func WithRand(r *rand.Rand) Option {
	return func(l *Ledger) { l.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(logger zerolog.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		wallets:    make(map[string]*model.Wallet),
		byUsername: make(map[string]string),
		codes:      make(map[string]decimal.Decimal),
		redeemed:   make(map[string]bool),
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) CreateWallet(ctx context.Context, username string, initialBalance decimal.Decimal) (*model.Wallet, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, reject(http.StatusBadRequest, model.CodeValidation, "Username is required")
	}
	if initialBalance.IsNegative() {
		return nil, reject(http.StatusBadRequest, model.CodeValidation, "Initial balance cannot be negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byUsername[username]; ok {
		return nil, reject(http.StatusConflict, model.CodeUsernameTaken, "Username already exists")
	}

	now := l.now()
	w := &model.Wallet{
		ID:        uuid.NewString(),
		Username:  username,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.wallets[w.ID] = w
	l.byUsername[username] = w.ID

	l.logger.Info().Str("wallet_id", w.ID).Str("username", username).Msg("wallet created")
	return copyWallet(w), nil
}

func (l *Ledger) GetWallet(ctx context.Context, walletID string) (*model.Wallet, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wallets[walletID]
	if !ok {
		return nil, walletNotFound()
	}
	return copyWallet(w), nil
}

func (l *Ledger) GetWalletByUsername(ctx context.Context, username string) (*model.Wallet, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.byUsername[username]
	if !ok {
		return nil, walletNotFound()
	}
	return copyWallet(l.wallets[id]), nil
}

func (l *Ledger) UpdateBalance(ctx context.Context, walletID string, amount decimal.Decimal) (*model.Wallet, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, reject(http.StatusBadRequest, model.CodeValidation, "Balance cannot be negative")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wallets[walletID]
	if !ok {
		return nil, walletNotFound()
	}

	delta := amount.Sub(w.Balance)
	w.Balance = amount
	w.UpdatedAt = l.now()
	switch {
	case delta.IsPositive():
		l.record("", w.ID, delta, model.TransactionSystem, "Balance adjustment")
	case delta.IsNegative():
		l.record(w.ID, "", delta.Neg(), model.TransactionSystem, "Balance adjustment")
	}
	return copyWallet(w), nil
}

func (l *Ledger) Transfer(ctx context.Context, req model.TransferRequest) (*model.TransferResult, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.transfer(req.FromWalletID, req.ToWalletID, req.Amount)
}

func (l *Ledger) TransferByUsername(ctx context.Context, req model.UsernameTransferRequest) (*model.TransferResult, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fromID, ok := l.byUsername[req.FromUsername]
	if !ok {
		return nil, walletNotFound()
	}
	toID, ok := l.byUsername[req.ToUsername]
	if !ok {
		return nil, reject(http.StatusNotFound, model.CodeWalletNotFound, "Recipient wallet not found")
	}
	return l.transfer(fromID, toID, req.Amount)
}

// transfer must be called with l.mu held.
func (l *Ledger) transfer(fromID, toID string, amount decimal.Decimal) (*model.TransferResult, error) {
	if !amount.IsPositive() {
		return nil, reject(http.StatusBadRequest, model.CodeValidation, "Amount must be greater than 0")
	}
	if fromID == toID {
		return nil, reject(http.StatusBadRequest, model.CodeValidation, "Cannot transfer to the same wallet")
	}

	from, ok := l.wallets[fromID]
	if !ok {
		return nil, walletNotFound()
	}
	to, ok := l.wallets[toID]
	if !ok {
		return nil, reject(http.StatusNotFound, model.CodeWalletNotFound, "Recipient wallet not found")
	}
	if from.Balance.LessThan(amount) {
		return nil, reject(http.StatusBadRequest, model.CodeInsufficientFunds, "Insufficient funds")
	}

	now := l.now()
	from.Balance = from.Balance.Sub(amount)
	from.UpdatedAt = now
	to.Balance = to.Balance.Add(amount)
	to.UpdatedAt = now

	tx := l.record(from.ID, to.ID, amount, model.TransactionTransfer, "Transfer to "+to.Username)

	l.logger.Info().
		Str("from", from.ID).
		Str("to", to.ID).
		Str("amount", amount.String()).
		Msg("transfer completed")

	return &model.TransferResult{
		Transaction:   &tx,
		UpdatedWallet: copyWallet(from),
		Message:       "Transfer completed successfully",
	}, nil
}

func (l *Ledger) GetTransactionHistory(ctx context.Context, walletID string, page, limit int) (*model.TransactionPage, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = model.DefaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.wallets[walletID]; !ok {
		return nil, walletNotFound()
	}

	var mine []model.Transaction
	for i := len(l.txs) - 1; i >= 0; i-- {
		tx := l.txs[i]
		if involves(tx, walletID) {
			mine = append(mine, tx)
		}
	}
	// Stable on equal timestamps so insertion order decides.
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})

	total := len(mine)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	end := min(start+limit, total)

	out := []model.Transaction{}
	if start < total {
		out = append(out, mine[start:end]...)
	}

	return &model.TransactionPage{
		Transactions: out,
		Pagination: model.Pagination{
			CurrentPage:       page,
			TotalPages:        totalPages,
			TotalTransactions: total,
			Limit:             limit,
		}.Normalize(),
	}, nil
}

func (l *Ledger) RedeemCdk(ctx context.Context, code, username string) (*model.RedeemResult, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	code = cdk.Normalize(code)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !cdk.IsValidFormat(code) {
		l.trace(code, decimal.Zero, false)
		return nil, reject(http.StatusBadRequest, model.CodeValidation, "Invalid CDK format")
	}
	id, ok := l.byUsername[username]
	if !ok {
		l.trace(code, decimal.Zero, false)
		return nil, walletNotFound()
	}
	if l.redeemed[code] {
		l.trace(code, decimal.Zero, false)
		return nil, reject(http.StatusConflict, model.CodeCdkAlreadyRedeemed, "CDK has already been redeemed")
	}

	reward, ok := l.codes[code]
	if !ok {
		if !l.acceptAny {
			l.trace(code, decimal.Zero, false)
			return nil, reject(http.StatusNotFound, model.CodeCdkNotFound, "CDK not found")
		}
		reward = l.randomReward()
	}

	w := l.wallets[id]
	w.Balance = w.Balance.Add(reward)
	w.UpdatedAt = l.now()
	l.redeemed[code] = true
	l.record("", w.ID, reward, model.TransactionCdkRedeem, "CDK redemption "+code)
	l.trace(code, reward, true)

	l.logger.Info().Str("wallet_id", w.ID).Str("reward", reward.String()).Msg("cdk redeemed")

	return &model.RedeemResult{
		Amount:  reward,
		Wallet:  copyWallet(w),
		Message: "CDK redeemed successfully",
	}, nil
}

func (l *Ledger) ValidateCdk(ctx context.Context, code string) (*model.CdkValidation, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	code = cdk.Normalize(code)

	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case !cdk.IsValidFormat(code):
		return &model.CdkValidation{Message: "Invalid CDK format"}, nil
	case l.redeemed[code]:
		return &model.CdkValidation{Message: "CDK has already been redeemed"}, nil
	}

	if reward, ok := l.codes[code]; ok {
		return &model.CdkValidation{Valid: true, Amount: reward, Message: "CDK is valid"}, nil
	}
	if l.acceptAny {
		return &model.CdkValidation{Valid: true, Message: "CDK is valid"}, nil
	}
	return &model.CdkValidation{Message: "CDK not found"}, nil
}

// LatestExchangeRate returns a random rate in [0.8, 1.3).
func (l *Ledger) LatestExchangeRate(ctx context.Context) (*model.ExchangeRate, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rate := decimal.NewFromFloat(l.rng.Float64()*0.5 + 0.8).Truncate(4)
	return &model.ExchangeRate{Rate: rate, CreatedAt: l.now()}, nil
}

// Records returns the redemption attempts seen so far, oldest first.
func (l *Ledger) Records() []model.CdkExchangeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.CdkExchangeRecord, len(l.records))
	copy(out, l.records)
	return out
}

// wait applies the configured latency. A cancelled context surfaces as
// ErrNetwork whether or not latency is set.
func (l *Ledger) wait(ctx context.Context) error {
	if l.latency <= 0 {
		return cancelled(ctx.Err())
	}

	timer := time.NewTimer(l.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return cancelled(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func cancelled(err error) error {
	if err == nil {
		return nil
	}
	return &model.WalletError{Kind: model.ErrNetwork, Message: err.Error()}
}

// record must be called with l.mu held. An empty from marks a system credit
// and an empty to a system debit.
func (l *Ledger) record(from, to string, amount decimal.Decimal, typ model.TransactionType, desc string) model.Transaction {
	tx := model.Transaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Type:        typ,
		Description: desc,
		CreatedAt:   l.now(),
	}
	if from != "" {
		tx.FromWalletID = &from
	}
	if to != "" {
		tx.ToWalletID = &to
	}
	l.txs = append(l.txs, tx)
	return tx
}

// trace must be called with l.mu held.
func (l *Ledger) trace(code string, reward decimal.Decimal, ok bool) {
	status := model.CdkStatusRejected
	if ok {
		status = model.CdkStatusRedeemed
	}
	l.records = append(l.records, model.CdkExchangeRecord{
		Code:         code,
		Status:       status,
		Reward:       reward,
		DateTime:     l.now(),
		IsSuccessful: ok,
	})
}

// randomReward returns a reward in [10, 510) with two decimals.
func (l *Ledger) randomReward() decimal.Decimal {
	return decimal.NewFromFloat(l.rng.Float64()*500 + 10).Truncate(2)
}

func involves(tx model.Transaction, walletID string) bool {
	return (tx.FromWalletID != nil && *tx.FromWalletID == walletID) ||
		(tx.ToWalletID != nil && *tx.ToWalletID == walletID)
}

func copyWallet(w *model.Wallet) *model.Wallet {
	c := *w
	return &c
}

func reject(status int, code, msg string) *model.WalletError {
	kind := model.KindForCode(code)
	if kind == nil {
		kind = model.KindForStatus(status)
	}
	return &model.WalletError{Kind: kind, Status: status, Code: code, Message: msg}
}

func walletNotFound() *model.WalletError {
	return reject(http.StatusNotFound, model.CodeWalletNotFound, "Wallet not found")
}
