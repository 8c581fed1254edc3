package service

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"wallet-client/internal/cdk"
	"wallet-client/internal/model"
)

type createWalletInput struct {
	Username       string          `label:"Username" validate:"required"`
	InitialBalance decimal.Decimal `label:"Initial balance" validate:"gte=0"`
}

type usernameInput struct {
	Username string `label:"Username" validate:"required"`
}

type walletIDInput struct {
	WalletID string `label:"Wallet id" validate:"required"`
}

type balanceInput struct {
	WalletID string          `label:"Wallet id" validate:"required"`
	Amount   decimal.Decimal `label:"Amount" validate:"gte=0"`
}

type transferInput struct {
	From   string          `label:"Sender" validate:"required"`
	To     string          `label:"Recipient" validate:"required,nefield=From"`
	Amount decimal.Decimal `label:"Amount" validate:"gt=0"`
}

type redeemInput struct {
	Code     string `label:"CDK" validate:"required,cdk"`
	Username string `label:"Username" validate:"required"`
}

type cdkInput struct {
	Code string `label:"CDK" validate:"required,cdk"`
}

type historyInput struct {
	WalletID string `label:"Wallet id" validate:"required"`
	Page     int    `label:"Page" validate:"gte=1"`
	Limit    int    `label:"Limit" validate:"gte=1,lte=100"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})

	// Decimals are compared as floats; the checks only look at sign.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("cdk", func(fl validator.FieldLevel) bool {
		return cdk.IsValidFormat(fl.Field().String())
	})

	return v
}

// validate checks in and returns a local validation error carrying the
// first readable message.
func (s *WalletServiceImpl) validate(in any) error {
	err := s.validator.Struct(in)
	if err == nil {
		return nil
	}
	msgs := FormatValidationError(err)
	if len(msgs) == 0 {
		return model.NewValidationError(err.Error())
	}
	return model.NewValidationError(msgs[0])
}

// FormatValidationError renders validator errors as user-facing sentences.
func FormatValidationError(err error) []string {
	var errs []string

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs = append(errs, fmt.Sprintf("%s is required", field))
		case "cdk":
			errs = append(errs, "Invalid CDK format")
		case "gt":
			errs = append(errs, fmt.Sprintf("%s must be greater than %s", field, e.Param()))
		case "gte":
			errs = append(errs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "lte":
			errs = append(errs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "nefield":
			errs = append(errs, "Cannot transfer to the same wallet")
		default:
			errs = append(errs, fmt.Sprintf("%s is invalid (%s)", field, e.Tag()))
		}
	}
	return errs
}
