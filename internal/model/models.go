package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Transaction is immutable once created. A nil FromWalletID marks a
// system-originated credit such as a CDK redemption; a nil ToWalletID marks
// a system debit such as a downward balance adjustment.
type Transaction struct {
	ID           string          `json:"id"`
	FromWalletID *string         `json:"fromWalletId"`
	ToWalletID   *string         `json:"toWalletId"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Pagination struct {
	CurrentPage       int  `json:"currentPage"`
	TotalPages        int  `json:"totalPages"`
	TotalTransactions int  `json:"totalTransactions"`
	Limit             int  `json:"limit"`
	HasNextPage       bool `json:"hasNextPage"`
	HasPreviousPage   bool `json:"hasPreviousPage"`
}

const DefaultPageLimit = 10

func DefaultPagination() Pagination {
	return Pagination{
		CurrentPage: 1,
		TotalPages:  1,
		Limit:       DefaultPageLimit,
	}
}

// Normalize clamps the counters to their valid ranges and derives the
// navigation flags from CurrentPage and TotalPages.
func (p Pagination) Normalize() Pagination {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.TotalTransactions < 0 {
		p.TotalTransactions = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	p.HasNextPage = p.CurrentPage < p.TotalPages
	p.HasPreviousPage = p.CurrentPage > 1
	return p
}

// CdkExchangeRecord is a client-local trace of one redemption attempt.
type CdkExchangeRecord struct {
	Code         string          `json:"code"`
	Status       string          `json:"status"`
	Reward       decimal.Decimal `json:"reward"`
	DateTime     time.Time       `json:"dateTime"`
	IsSuccessful bool            `json:"isSuccessful"`
}

type ExchangeRate struct {
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
}

type TransferResult struct {
	Transaction   *Transaction `json:"transaction,omitempty"`
	UpdatedWallet *Wallet      `json:"updatedWallet,omitempty"`
	Message       string       `json:"message,omitempty"`
}

type RedeemResult struct {
	Amount  decimal.Decimal `json:"amount"`
	Wallet  *Wallet         `json:"wallet,omitempty"`
	Message string          `json:"message,omitempty"`
}

type CdkValidation struct {
	Valid   bool            `json:"valid"`
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message,omitempty"`
}

type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

type CreateWalletRequest struct {
	Username       string          `json:"username" binding:"required" example:"alice"`
	InitialBalance decimal.Decimal `json:"initialBalance" swaggertype:"string" example:"0"`
}

type UpdateBalanceRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
}

type TransferRequest struct {
	FromWalletID string          `json:"fromWalletId" binding:"required"`
	ToWalletID   string          `json:"toWalletId" binding:"required"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"40.00"`
}

type UsernameTransferRequest struct {
	FromUsername string          `json:"fromUsername" binding:"required" example:"alice"`
	ToUsername   string          `json:"toUsername" binding:"required" example:"bob"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"40.00"`
}

type RedeemCdkRequest struct {
	Code     string `json:"code" binding:"required" example:"AB12-CD34-EF56-GH78-IJ90-KL12"`
	Username string `json:"username" binding:"required" example:"alice"`
}

type ValidateCdkRequest struct {
	Code string `json:"code" binding:"required" example:"AB12-CD34-EF56-GH78-IJ90-KL12"`
}

// Envelope is the common part of every backend response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

type WalletResponse struct {
	Envelope
	Wallet *Wallet `json:"wallet,omitempty"`
}

type TransferResponse struct {
	Envelope
	Transaction   *Transaction `json:"transaction,omitempty"`
	UpdatedWallet *Wallet      `json:"updatedWallet,omitempty"`
}

// TransactionHistoryResponse accepts both the nested pagination object and
// the flat page counters some backend versions send.
type TransactionHistoryResponse struct {
	Envelope
	Transactions    []Transaction `json:"transactions"`
	Pagination      *Pagination   `json:"pagination,omitempty"`
	Page            int           `json:"page,omitempty"`
	TotalPages      int           `json:"totalPages,omitempty"`
	Total           int           `json:"total,omitempty"`
	HasNextPage     bool          `json:"hasNextPage,omitempty"`
	HasPreviousPage bool          `json:"hasPreviousPage,omitempty"`
}

type CdkRedeemResponse struct {
	Envelope
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
	Wallet *Wallet         `json:"wallet,omitempty"`
}

type CdkValidateResponse struct {
	Envelope
	Valid  bool            `json:"valid"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

type ExchangeRateResponse struct {
	Envelope
	Data *ExchangeRate `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"insufficient funds"`
	Message string `json:"message,omitempty" example:"insufficient funds"`
	Code    string `json:"code,omitempty" example:"INSUFFICIENT_FUNDS"`
}
