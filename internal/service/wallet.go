package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"wallet-client/internal/backend"
	"wallet-client/internal/cdk"
	"wallet-client/internal/model"
	"wallet-client/internal/store"
)

type WalletServiceImpl struct {
	store     *store.Store
	backend   backend.Backend
	persister store.Persister
	validator *validator.Validate
	logger    zerolog.Logger
}

func NewWalletService(
	st *store.Store,
	be backend.Backend,
	persister store.Persister,
	logger zerolog.Logger,
) WalletService {
	return &WalletServiceImpl{
		store:     st,
		backend:   be,
		persister: persister,
		validator: newValidator(),
		logger:    logger,
	}
}

func (s *WalletServiceImpl) CreateWallet(ctx context.Context, username string, initialBalance decimal.Decimal) (*model.Wallet, error) {
	in := createWalletInput{Username: strings.TrimSpace(username), InitialBalance: initialBalance}
	if err := s.preflight(in); err != nil {
		return nil, err
	}

	var wallet *model.Wallet
	err := s.withLoading(func() error {
		w, err := s.backend.CreateWallet(ctx, in.Username, in.InitialBalance)
		if err != nil {
			return failure(err, model.ErrWalletCreationFailed, model.MsgWalletCreation)
		}
		wallet = s.setWallet(ctx, w)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("wallet_id", wallet.ID).Str("username", wallet.Username).Msg("wallet created")
	return wallet, nil
}

func (s *WalletServiceImpl) LoginWallet(ctx context.Context, username string) (*model.Wallet, error) {
	in := usernameInput{Username: strings.TrimSpace(username)}
	if err := s.preflight(in); err != nil {
		return nil, err
	}

	var wallet *model.Wallet
	err := s.withLoading(func() error {
		w, err := s.backend.GetWalletByUsername(ctx, in.Username)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) && !model.HasBackendMessage(err) {
				return &model.WalletError{Kind: model.ErrNotFound, Status: http.StatusNotFound, Message: model.MsgWalletNotFound}
			}
			return err
		}
		wallet = s.setWallet(ctx, w)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("wallet_id", wallet.ID).Str("username", wallet.Username).Msg("wallet logged in")
	return wallet, nil
}

func (s *WalletServiceImpl) RefreshWallet(ctx context.Context, walletID string) (*model.Wallet, error) {
	if err := s.preflight(walletIDInput{WalletID: walletID}); err != nil {
		return nil, err
	}

	var wallet *model.Wallet
	err := s.withLoading(func() error {
		w, err := s.backend.GetWallet(ctx, walletID)
		if err != nil {
			return err
		}
		wallet = s.setWallet(ctx, w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *WalletServiceImpl) SetBalance(ctx context.Context, walletID string, amount decimal.Decimal) (*model.Wallet, error) {
	if err := s.preflight(balanceInput{WalletID: walletID, Amount: amount}); err != nil {
		return nil, err
	}

	var wallet *model.Wallet
	err := s.withLoading(func() error {
		w, err := s.backend.UpdateBalance(ctx, walletID, amount)
		if err != nil {
			return err
		}
		wallet = w
		if s.isCurrent(w.ID) {
			wallet = s.setWallet(ctx, w)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("wallet_id", walletID).Str("balance", wallet.Balance.String()).Msg("balance set")
	return wallet, nil
}

func (s *WalletServiceImpl) Transfer(ctx context.Context, fromWalletID, toWalletID string, amount decimal.Decimal) (*model.TransferResult, error) {
	in := transferInput{From: fromWalletID, To: toWalletID, Amount: amount}
	if err := s.preflight(in); err != nil {
		return nil, err
	}

	current := s.store.Snapshot().CurrentWallet
	if current != nil && current.ID == fromWalletID {
		if err := s.checkFunds(current, amount); err != nil {
			return nil, err
		}
	}

	req := model.TransferRequest{FromWalletID: fromWalletID, ToWalletID: toWalletID, Amount: amount}
	return s.transfer(ctx, func() (*model.TransferResult, error) {
		return s.backend.Transfer(ctx, req)
	})
}

func (s *WalletServiceImpl) TransferByUsername(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) (*model.TransferResult, error) {
	in := transferInput{From: strings.TrimSpace(fromUsername), To: strings.TrimSpace(toUsername), Amount: amount}
	if err := s.preflight(in); err != nil {
		return nil, err
	}

	current := s.store.Snapshot().CurrentWallet
	if current != nil && current.Username == in.From {
		if err := s.checkFunds(current, amount); err != nil {
			return nil, err
		}
	}

	req := model.UsernameTransferRequest{FromUsername: in.From, ToUsername: in.To, Amount: amount}
	return s.transfer(ctx, func() (*model.TransferResult, error) {
		return s.backend.TransferByUsername(ctx, req)
	})
}

// checkFunds is advisory; the backend remains the authority on balances.
func (s *WalletServiceImpl) checkFunds(current *model.Wallet, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(current.Balance) {
		return nil
	}
	err := &model.WalletError{Kind: model.ErrInsufficientFunds, Code: model.CodeInsufficientFunds, Message: "Insufficient funds", Local: true}
	s.store.Dispatch(store.SetError{Message: err.Error()})
	s.logger.Warn().
		Str("wallet_id", current.ID).
		Str("balance", current.Balance.String()).
		Str("amount", amount.String()).
		Msg("transfer rejected before sending")
	return err
}

func (s *WalletServiceImpl) transfer(ctx context.Context, send func() (*model.TransferResult, error)) (*model.TransferResult, error) {
	var result *model.TransferResult
	err := s.withLoading(func() error {
		res, err := send()
		if err != nil {
			return failure(err, model.ErrTransferFailed, model.MsgTransferFailed)
		}
		result = res

		current := s.store.Snapshot().CurrentWallet
		if current == nil {
			return nil
		}
		if res.UpdatedWallet != nil && res.UpdatedWallet.ID == current.ID {
			s.setWallet(ctx, res.UpdatedWallet)
			return nil
		}
		if res.Transaction == nil || involves(*res.Transaction, current.ID) {
			return s.reload(ctx, current.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := s.logger.Info()
	if result.Transaction != nil {
		ev = ev.Str("transaction_id", result.Transaction.ID).Str("amount", result.Transaction.Amount.String())
	}
	ev.Msg("transfer completed")
	return result, nil
}

func (s *WalletServiceImpl) RedeemCdk(ctx context.Context, code, username string) (*model.RedeemResult, error) {
	current := s.store.Snapshot().CurrentWallet
	username = strings.TrimSpace(username)
	if username == "" && current != nil {
		username = current.Username
	}

	in := redeemInput{Code: cdk.Normalize(code), Username: username}
	if err := s.preflight(in); err != nil {
		return nil, err
	}

	var result *model.RedeemResult
	err := s.withLoading(func() error {
		res, err := s.backend.RedeemCdk(ctx, in.Code, in.Username)
		if err != nil {
			return failure(err, model.ErrRedeemFailed, model.MsgRedeemFailed)
		}
		result = res

		if current == nil || current.Username != in.Username {
			return nil
		}
		if res.Wallet != nil && res.Wallet.ID == current.ID {
			s.setWallet(ctx, res.Wallet)
			return nil
		}
		// The credit already happened; a failed refresh only leaves the
		// displayed balance stale until the next refresh.
		if err := s.reload(ctx, current.ID); err != nil {
			s.logger.Warn().Err(err).Str("wallet_id", current.ID).Msg("failed to refresh wallet after redemption")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", in.Username).Str("amount", result.Amount.String()).Msg("cdk redeemed")
	return result, nil
}

func (s *WalletServiceImpl) ValidateCdk(ctx context.Context, code string) (*model.CdkValidation, error) {
	in := cdkInput{Code: cdk.Normalize(code)}
	if err := s.preflight(in); err != nil {
		return nil, err
	}

	var result *model.CdkValidation
	err := s.withLoading(func() error {
		res, err := s.backend.ValidateCdk(ctx, in.Code)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *WalletServiceImpl) GetTransactionHistory(ctx context.Context, walletID string, page, limit int) (*model.TransactionPage, error) {
	if err := s.preflight(historyInput{WalletID: walletID, Page: page, Limit: limit}); err != nil {
		return nil, err
	}

	var result *model.TransactionPage
	err := s.withLoading(func() error {
		res, err := s.backend.GetTransactionHistory(ctx, walletID, page, limit)
		if err != nil {
			return err
		}
		s.store.Dispatch(store.SetTransactions{Transactions: res.Transactions})
		next := s.store.Dispatch(store.SetPagination{Pagination: res.Pagination})
		result = &model.TransactionPage{Transactions: next.Transactions, Pagination: next.Pagination}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("wallet_id", walletID).
		Int("page", result.Pagination.CurrentPage).
		Int("count", len(result.Transactions)).
		Msg("transaction history loaded")
	return result, nil
}

func (s *WalletServiceImpl) Logout(ctx context.Context) {
	s.store.Dispatch(store.SetWallet{Wallet: nil})
	s.store.Dispatch(store.SetTransactions{Transactions: []model.Transaction{}})
	s.store.Dispatch(store.SetPagination{Pagination: model.DefaultPagination()})
	s.persister.Remove(ctx, store.WalletKey)

	s.logger.Info().Msg("wallet logged out")
}

func (s *WalletServiceImpl) ClearError() {
	s.store.Dispatch(store.ClearError{})
}

func (s *WalletServiceImpl) State() store.State {
	return s.store.Snapshot()
}

// preflight validates in before any request is made. A rejection is
// recorded in the store like any other failure.
func (s *WalletServiceImpl) preflight(in any) error {
	if err := s.validate(in); err != nil {
		s.store.Dispatch(store.SetError{Message: model.Message(err)})
		return err
	}
	return nil
}

// withLoading raises the loading flag around fn and records its error.
func (s *WalletServiceImpl) withLoading(fn func() error) error {
	s.store.Dispatch(store.SetLoading{Loading: true})
	defer s.store.Dispatch(store.SetLoading{Loading: false})

	if err := fn(); err != nil {
		s.store.Dispatch(store.SetError{Message: model.Message(err)})
		s.logger.Error().Err(err).Msg("wallet operation failed")
		return err
	}
	return nil
}

// reload fetches walletID and stores it as the current wallet.
func (s *WalletServiceImpl) reload(ctx context.Context, walletID string) error {
	w, err := s.backend.GetWallet(ctx, walletID)
	if err != nil {
		return err
	}
	s.setWallet(ctx, w)
	return nil
}

// setWallet stores w as the current wallet and mirrors the stored copy to
// local persistence.
func (s *WalletServiceImpl) setWallet(ctx context.Context, w *model.Wallet) *model.Wallet {
	state := s.store.Dispatch(store.SetWallet{Wallet: w})
	s.persist(ctx, state.CurrentWallet)
	return state.CurrentWallet
}

func (s *WalletServiceImpl) persist(ctx context.Context, w *model.Wallet) {
	data, err := json.Marshal(w)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode wallet for local storage")
		return
	}
	s.persister.Set(ctx, store.WalletKey, data)
}

func (s *WalletServiceImpl) isCurrent(walletID string) bool {
	current := s.store.Snapshot().CurrentWallet
	return current != nil && current.ID == walletID
}

// failure keeps errors that carry a backend message or a transport
// failure and replaces the rest with the operation's generic error.
func failure(err error, kind error, msg string) error {
	if model.HasBackendMessage(err) || errors.Is(err, model.ErrNetwork) {
		return err
	}
	out := &model.WalletError{Kind: kind, Message: msg}
	var we *model.WalletError
	if errors.As(err, &we) {
		out.Status = we.Status
		out.Code = we.Code
	}
	return out
}

func involves(tx model.Transaction, walletID string) bool {
	return (tx.FromWalletID != nil && *tx.FromWalletID == walletID) ||
		(tx.ToWalletID != nil && *tx.ToWalletID == walletID)
}
