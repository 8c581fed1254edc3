package model

type TransactionType string

const (
	TransactionTransfer  TransactionType = "transfer"
	TransactionSystem    TransactionType = "system"
	TransactionCdkRedeem TransactionType = "cdk_redeem"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case string(TransactionTransfer):
		return TransactionTransfer, nil
	case string(TransactionSystem):
		return TransactionSystem, nil
	case string(TransactionCdkRedeem):
		return TransactionCdkRedeem, nil
	default:
		return "", ErrInvalidTransactionType
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// Error codes shared by the demo server and the REST client.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeWalletNotFound     = "WALLET_NOT_FOUND"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeTransferFailed     = "TRANSFER_FAILED"
	CodeCdkNotFound        = "CDK_NOT_FOUND"
	CodeCdkAlreadyRedeemed = "CDK_ALREADY_REDEEMED"
	CodeRedeemFailed       = "REDEEM_FAILED"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// CDK exchange record statuses.
const (
	CdkStatusRedeemed = "redeemed"
	CdkStatusRejected = "rejected"
)
