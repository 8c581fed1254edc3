package store

import "wallet-client/internal/model"

// Action is the closed set of state transitions accepted by Reduce.
type Action interface {
	action()
}

type SetLoading struct {
	Loading bool
}

type SetError struct {
	Message string
}

// SetWallet replaces the current wallet. A nil Wallet signs the session out.
type SetWallet struct {
	Wallet *model.Wallet
}

type SetTransactions struct {
	Transactions []model.Transaction
}

type SetPagination struct {
	Pagination model.Pagination
}

type ClearError struct{}

func (SetLoading) action()      {}
func (SetError) action()        {}
func (SetWallet) action()       {}
func (SetTransactions) action() {}
func (SetPagination) action()   {}
func (ClearError) action()      {}
