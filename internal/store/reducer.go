package store

import "wallet-client/internal/model"

// State is the single source of truth shown to the UI. Error is empty when
// there is no error.
type State struct {
	CurrentWallet *model.Wallet       `json:"currentWallet"`
	Transactions  []model.Transaction `json:"transactions"`
	Pagination    model.Pagination    `json:"pagination"`
	IsLoading     bool                `json:"isLoading"`
	Error         string              `json:"error,omitempty"`
}

func InitialState() State {
	return State{
		Transactions: []model.Transaction{},
		Pagination:   model.DefaultPagination(),
	}
}

// Reduce returns the state that results from applying a to s. It never
// mutates s.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetLoading:
		s.IsLoading = act.Loading
	case SetError:
		s.Error = act.Message
		s.IsLoading = false
	case SetWallet:
		s.CurrentWallet = cloneWallet(act.Wallet)
		s.Error = ""
	case SetTransactions:
		s.Transactions = cloneTransactions(act.Transactions)
	case SetPagination:
		s.Pagination = act.Pagination.Normalize()
	case ClearError:
		s.Error = ""
	}
	return s
}

func (s State) clone() State {
	s.CurrentWallet = cloneWallet(s.CurrentWallet)
	s.Transactions = cloneTransactions(s.Transactions)
	return s
}

func cloneWallet(w *model.Wallet) *model.Wallet {
	if w == nil {
		return nil
	}
	cp := *w
	return &cp
}

func cloneTransactions(list []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(list))
	copy(out, list)
	return out
}
