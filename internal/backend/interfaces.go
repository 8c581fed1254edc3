package backend

import (
	"context"

	"github.com/shopspring/decimal"

	"wallet-client/internal/model"
)

// Backend is the wallet ledger the client talks to. Failures are returned
// as *model.WalletError so callers can read the backend's message and code.
type Backend interface {
	// CreateWallet registers a new wallet under a unique username
	CreateWallet(ctx context.Context, username string, initialBalance decimal.Decimal) (*model.Wallet, error)

	// GetWallet retrieves a wallet by its id
	GetWallet(ctx context.Context, walletID string) (*model.Wallet, error)

	// GetWalletByUsername retrieves a wallet by its username
	GetWalletByUsername(ctx context.Context, username string) (*model.Wallet, error)

	// UpdateBalance overwrites a wallet balance (administrative)
	UpdateBalance(ctx context.Context, walletID string, amount decimal.Decimal) (*model.Wallet, error)

	// Transfer moves funds between two wallet ids
	Transfer(ctx context.Context, req model.TransferRequest) (*model.TransferResult, error)

	// TransferByUsername moves funds between two usernames
	TransferByUsername(ctx context.Context, req model.UsernameTransferRequest) (*model.TransferResult, error)

	// GetTransactionHistory returns one page of a wallet's transactions, newest first
	GetTransactionHistory(ctx context.Context, walletID string, page, limit int) (*model.TransactionPage, error)

	// RedeemCdk credits the reward of a single-use code to the named wallet
	RedeemCdk(ctx context.Context, code, username string) (*model.RedeemResult, error)

	// ValidateCdk checks a code without consuming it
	ValidateCdk(ctx context.Context, code string) (*model.CdkValidation, error)

	// LatestExchangeRate returns the most recent exchange rate
	LatestExchangeRate(ctx context.Context) (*model.ExchangeRate, error)
}
