package service

import (
	"context"

	"github.com/shopspring/decimal"

	"wallet-client/internal/model"
	"wallet-client/internal/store"
)

// WalletService runs wallet operations against the backend and records
// their outcome in the session store. Every failure is written to the
// store's error field and returned to the caller.
type WalletService interface {
	CreateWallet(ctx context.Context, username string, initialBalance decimal.Decimal) (*model.Wallet, error)
	LoginWallet(ctx context.Context, username string) (*model.Wallet, error)
	RefreshWallet(ctx context.Context, walletID string) (*model.Wallet, error)
	SetBalance(ctx context.Context, walletID string, amount decimal.Decimal) (*model.Wallet, error)

	// Transfer and TransferByUsername reject locally, without a network
	// call, when the current wallet is the sender and cannot cover amount
	Transfer(ctx context.Context, fromWalletID, toWalletID string, amount decimal.Decimal) (*model.TransferResult, error)
	TransferByUsername(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) (*model.TransferResult, error)

	RedeemCdk(ctx context.Context, code, username string) (*model.RedeemResult, error)
	ValidateCdk(ctx context.Context, code string) (*model.CdkValidation, error)

	// GetTransactionHistory replaces the stored transactions with one page
	GetTransactionHistory(ctx context.Context, walletID string, page, limit int) (*model.TransactionPage, error)

	Logout(ctx context.Context)
	ClearError()
	State() store.State
}
