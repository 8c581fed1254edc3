package store

import (
	"strings"

	"wallet-client/internal/model"
)

type Direction string

const (
	DirectionAll      Direction = "all"
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DirectionSent), "send":
		return DirectionSent
	case string(DirectionReceived), "receive":
		return DirectionReceived
	default:
		return DirectionAll
	}
}

type Filter struct {
	Direction Direction
	Query     string
}

// FilterTransactions narrows list to the transactions matching f, seen from
// walletID. The input slice is left untouched.
func FilterTransactions(list []model.Transaction, walletID string, f Filter) []model.Transaction {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]model.Transaction, 0, len(list))
	for _, tx := range list {
		if !matchesDirection(tx, walletID, f.Direction) {
			continue
		}
		if query != "" && !matchesQuery(tx, query) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func matchesDirection(tx model.Transaction, walletID string, d Direction) bool {
	switch d {
	case DirectionSent:
		return tx.FromWalletID != nil && *tx.FromWalletID == walletID
	case DirectionReceived:
		return tx.ToWalletID != nil && *tx.ToWalletID == walletID
	default:
		return true
	}
}

func matchesQuery(tx model.Transaction, query string) bool {
	fields := []string{
		tx.ID,
		tx.Description,
		tx.Amount.String(),
		tx.Type.String(),
		tx.CreatedAt.Format("2006-01-02 15:04"),
	}
	if tx.FromWalletID != nil {
		fields = append(fields, *tx.FromWalletID)
	}
	if tx.ToWalletID != nil {
		fields = append(fields, *tx.ToWalletID)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
