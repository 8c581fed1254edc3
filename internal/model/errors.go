package model

import (
	"errors"
	"net/http"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("wallet not found")
	ErrUsernameTaken          = errors.New("username already exists")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrTransferFailed         = errors.New("transfer failed")
	ErrRedeemFailed           = errors.New("cdk redemption failed")
	ErrCdkNotFound            = errors.New("cdk not found")
	ErrCdkAlreadyRedeemed     = errors.New("cdk already redeemed")
	ErrWalletCreationFailed   = errors.New("wallet creation failed")
	ErrUnauthorized           = errors.New("authentication required")
	ErrForbidden              = errors.New("access denied")
	ErrNetwork                = errors.New("network error")
	ErrServer                 = errors.New("server error")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// Generic messages used when the backend does not supply one.
const (
	MsgResourceNotFound = "Resource not found"
	MsgAuthRequired     = "Authentication required"
	MsgAccessDenied     = "Access denied"
	MsgServerError      = "Server error"
	MsgWalletCreation   = "Wallet creation failed"
	MsgWalletNotFound   = "Wallet not found"
	MsgTransferFailed   = "Transfer failed"
	MsgRedeemFailed     = "CDK redemption failed"
)

// WalletError carries the detail of a failed wallet operation. Kind is one
// of the sentinels above; Local marks a pre-flight rejection that never
// reached the network.
type WalletError struct {
	Kind    error
	Status  int
	Code    string
	Message string
	Local   bool
}

func (e *WalletError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "wallet error"
}

func (e *WalletError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Local && e.Kind != ErrValidation {
		errs = append(errs, ErrValidation)
	}
	return errs
}

func NewValidationError(msg string) *WalletError {
	return &WalletError{Kind: ErrValidation, Message: msg, Local: true}
}

// Message returns the human-readable text for err, preferring a message
// supplied by the backend.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var we *WalletError
	if errors.As(err, &we) {
		return we.Error()
	}
	return err.Error()
}

// HasBackendMessage reports whether err carries a message produced by the
// backend rather than a generic per-status fallback.
func HasBackendMessage(err error) bool {
	var we *WalletError
	if !errors.As(err, &we) || we.Local || we.Message == "" {
		return false
	}
	return we.Message != StatusMessage(we.Status)
}

// StatusMessage is the generic message for an HTTP status without a body
// message. It returns "" for statuses that have no generic text.
func StatusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return MsgAuthRequired
	case status == http.StatusForbidden:
		return MsgAccessDenied
	case status == http.StatusNotFound:
		return MsgResourceNotFound
	case status >= http.StatusInternalServerError:
		return MsgServerError
	default:
		return ""
	}
}

// KindForCode maps a backend error code to its sentinel.
func KindForCode(code string) error {
	switch code {
	case CodeValidation:
		return ErrValidation
	case CodeWalletNotFound:
		return ErrNotFound
	case CodeUsernameTaken:
		return ErrUsernameTaken
	case CodeInsufficientFunds:
		return ErrInsufficientFunds
	case CodeTransferFailed:
		return ErrTransferFailed
	case CodeCdkNotFound:
		return ErrCdkNotFound
	case CodeCdkAlreadyRedeemed:
		return ErrCdkAlreadyRedeemed
	case CodeRedeemFailed:
		return ErrRedeemFailed
	case CodeInternal:
		return ErrServer
	default:
		return nil
	}
}

// KindForStatus maps an HTTP status to its sentinel.
func KindForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrUsernameTaken
	case status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrServer
	}
}
