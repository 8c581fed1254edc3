package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"wallet-client/internal/model"
)

// WalletKey is the persistence slot mirroring the current wallet.
const WalletKey = "wallet"

// Persister is the key-value surface the store and the wallet service use
// for the durable wallet mirror.
type Persister interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) bool
	Remove(ctx context.Context, key string) bool
}

// Restore builds the boot state from the persisted wallet slot. An
// unreadable slot is deleted and the session starts signed out.
func Restore(ctx context.Context, p Persister, logger zerolog.Logger) State {
	state := InitialState()

	raw, ok := p.Get(ctx, WalletKey)
	if !ok || len(raw) == 0 {
		return state
	}

	var wallet *model.Wallet
	if err := json.Unmarshal(raw, &wallet); err != nil || (wallet != nil && wallet.ID == "") {
		logger.Warn().Err(err).Msg("discarding corrupt persisted wallet")
		p.Remove(ctx, WalletKey)
		return state
	}

	if wallet != nil {
		logger.Debug().Str("wallet_id", wallet.ID).Str("username", wallet.Username).Msg("restored persisted wallet")
	}
	state.CurrentWallet = wallet
	return state
}
