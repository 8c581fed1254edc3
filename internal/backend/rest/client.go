package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"wallet-client/internal/backend"
	"wallet-client/internal/model"
)

var _ backend.Backend = (*Client)(nil)

const (
	DefaultBaseURL = "http://localhost:3200/api"
	DefaultTimeout = 8 * time.Second
	DefaultTTL     = 30 * time.Second
)

// Client talks to the wallet REST API. Wallet lookups and the first page of
// history are cached for cacheTTL; every mutating call flushes the cache.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
	logger  zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, timeout, cacheTTL time.Duration, logger zerolog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	if cacheTTL > 0 {
		c.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CreateWallet(ctx context.Context, username string, initialBalance decimal.Decimal) (*model.Wallet, error) {
	defer c.flush()

	body := model.CreateWalletRequest{Username: username, InitialBalance: initialBalance}
	var resp model.WalletResponse
	if err := c.do(ctx, http.MethodPost, "/wallets", body, &resp, model.ErrWalletCreationFailed); err != nil {
		return nil, err
	}
	return walletOrError(resp)
}

func (c *Client) GetWallet(ctx context.Context, walletID string) (*model.Wallet, error) {
	return c.getWallet(ctx, "wallet_"+walletID, "/wallets/"+url.PathEscape(walletID))
}

func (c *Client) GetWalletByUsername(ctx context.Context, username string) (*model.Wallet, error) {
	return c.getWallet(ctx, "wallet_username_"+username, "/wallets/username/"+url.PathEscape(username))
}

func (c *Client) getWallet(ctx context.Context, key, path string) (*model.Wallet, error) {
	if w, ok := c.cached(key); ok {
		wallet := w.(model.Wallet)
		return &wallet, nil
	}

	var resp model.WalletResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, model.ErrServer); err != nil {
		return nil, err
	}
	wallet, err := walletOrError(resp)
	if err != nil {
		return nil, err
	}
	c.store(key, *wallet)
	return wallet, nil
}

func (c *Client) UpdateBalance(ctx context.Context, walletID string, amount decimal.Decimal) (*model.Wallet, error) {
	defer c.flush()

	body := model.UpdateBalanceRequest{Amount: amount}
	var resp model.WalletResponse
	path := "/wallets/" + url.PathEscape(walletID) + "/balance"
	if err := c.do(ctx, http.MethodPut, path, body, &resp, model.ErrServer); err != nil {
		return nil, err
	}
	return walletOrError(resp)
}

func (c *Client) Transfer(ctx context.Context, req model.TransferRequest) (*model.TransferResult, error) {
	defer c.flush()

	var resp model.TransferResponse
	if err := c.do(ctx, http.MethodPost, "/transfers", req, &resp, model.ErrTransferFailed); err != nil {
		return nil, err
	}
	return transferResult(resp), nil
}

func (c *Client) TransferByUsername(ctx context.Context, req model.UsernameTransferRequest) (*model.TransferResult, error) {
	defer c.flush()

	var resp model.TransferResponse
	if err := c.do(ctx, http.MethodPost, "/transfers/by-username", req, &resp, model.ErrTransferFailed); err != nil {
		return nil, err
	}
	return transferResult(resp), nil
}

func (c *Client) GetTransactionHistory(ctx context.Context, walletID string, page, limit int) (*model.TransactionPage, error) {
	key := ""
	if page == 1 {
		key = fmt.Sprintf("transactions_%s_%d", walletID, limit)
		if p, ok := c.cached(key); ok {
			return clonePage(p.(model.TransactionPage)), nil
		}
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	path := "/wallets/" + url.PathEscape(walletID) + "/transactions/detailed?" + q.Encode()

	var resp model.TransactionHistoryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, model.ErrServer); err != nil {
		return nil, err
	}

	result := model.TransactionPage{
		Transactions: resp.Transactions,
		Pagination:   historyPagination(resp, page, limit),
	}
	if result.Transactions == nil {
		result.Transactions = []model.Transaction{}
	}
	if key != "" {
		c.store(key, *clonePage(result))
	}
	return &result, nil
}

func (c *Client) RedeemCdk(ctx context.Context, code, username string) (*model.RedeemResult, error) {
	defer c.flush()

	body := model.RedeemCdkRequest{Code: code, Username: username}
	var resp model.CdkRedeemResponse
	if err := c.do(ctx, http.MethodPost, "/cdks/redeem", body, &resp, model.ErrRedeemFailed); err != nil {
		return nil, err
	}
	return &model.RedeemResult{
		Amount:  resp.Amount,
		Wallet:  resp.Wallet,
		Message: resp.Message,
	}, nil
}

func (c *Client) ValidateCdk(ctx context.Context, code string) (*model.CdkValidation, error) {
	body := model.ValidateCdkRequest{Code: code}
	var resp model.CdkValidateResponse
	if err := c.do(ctx, http.MethodPost, "/cdks/validate", body, &resp, model.ErrCdkNotFound); err != nil {
		return nil, err
	}
	return &model.CdkValidation{
		Valid:   resp.Valid,
		Amount:  resp.Amount,
		Message: firstNonEmpty(resp.Message, resp.Error),
	}, nil
}

func (c *Client) LatestExchangeRate(ctx context.Context) (*model.ExchangeRate, error) {
	var resp model.ExchangeRateResponse
	if err := c.do(ctx, http.MethodGet, "/exchange-rates/latest", nil, &resp, model.ErrServer); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &model.WalletError{Kind: model.ErrServer, Status: http.StatusOK, Message: "exchange rate missing from response"}
	}
	return resp.Data, nil
}

// do sends one request and decodes the envelope into out. A non-2xx status
// or a success=false envelope becomes a *model.WalletError; fallback is the
// kind used when neither the code nor the status identifies one.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback error) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("wallet api request failed")
		return &model.WalletError{Kind: model.ErrNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.WalletError{Kind: model.ErrNetwork, Status: resp.StatusCode, Message: err.Error()}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("wallet api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw, fallback)
	}

	var env model.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &model.WalletError{Kind: model.ErrServer, Status: resp.StatusCode, Message: "invalid response from wallet api"}
	}
	if !env.Success {
		return envelopeError(resp.StatusCode, env, fallback)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &model.WalletError{Kind: model.ErrServer, Status: resp.StatusCode, Message: "invalid response from wallet api"}
	}
	return nil
}

// decodeError extracts the message of a failed response: a plain string
// body, then the JSON error or message field, then the generic text for
// the status.
func decodeError(status int, raw []byte, fallback error) *model.WalletError {
	trimmed := bytes.TrimSpace(raw)

	var env model.Envelope
	if len(trimmed) > 0 && json.Unmarshal(trimmed, &env) == nil {
		we := envelopeError(status, env, fallback)
		if firstNonEmpty(env.Error, env.Message) == "" {
			we.Message = statusText(status, fallback)
		}
		return we
	}

	var text string
	if json.Unmarshal(trimmed, &text) != nil {
		text = string(trimmed)
	}
	return &model.WalletError{
		Kind:    kind("", status, fallback),
		Status:  status,
		Message: firstNonEmpty(strings.TrimSpace(text), statusText(status, fallback)),
	}
}

func envelopeError(status int, env model.Envelope, fallback error) *model.WalletError {
	return &model.WalletError{
		Kind:    kind(env.Code, status, fallback),
		Status:  status,
		Code:    env.Code,
		Message: firstNonEmpty(env.Error, env.Message),
	}
}

func kind(code string, status int, fallback error) error {
	if k := model.KindForCode(code); k != nil {
		return k
	}
	if status >= http.StatusBadRequest {
		return model.KindForStatus(status)
	}
	return fallback
}

func statusText(status int, fallback error) string {
	if msg := model.StatusMessage(status); msg != "" {
		return msg
	}
	return kind("", status, fallback).Error()
}

func walletOrError(resp model.WalletResponse) (*model.Wallet, error) {
	if resp.Wallet == nil {
		return nil, &model.WalletError{Kind: model.ErrServer, Status: http.StatusOK, Message: "wallet missing from response"}
	}
	return resp.Wallet, nil
}

func transferResult(resp model.TransferResponse) *model.TransferResult {
	return &model.TransferResult{
		Transaction:   resp.Transaction,
		UpdatedWallet: resp.UpdatedWallet,
		Message:       resp.Message,
	}
}

// historyPagination prefers the nested pagination object and falls back to
// the flat counters.
func historyPagination(resp model.TransactionHistoryResponse, page, limit int) model.Pagination {
	if resp.Pagination != nil {
		return resp.Pagination.Normalize()
	}
	p := model.Pagination{
		CurrentPage:       resp.Page,
		TotalPages:        resp.TotalPages,
		TotalTransactions: resp.Total,
		Limit:             limit,
	}
	if p.CurrentPage == 0 {
		p.CurrentPage = page
	}
	return p.Normalize()
}

func (c *Client) cached(key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *Client) store(key string, v any) {
	if c.cache != nil {
		c.cache.SetDefault(key, v)
	}
}

func (c *Client) flush() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

func clonePage(p model.TransactionPage) *model.TransactionPage {
	txs := make([]model.Transaction, len(p.Transactions))
	copy(txs, p.Transactions)
	return &model.TransactionPage{Transactions: txs, Pagination: p.Pagination}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
