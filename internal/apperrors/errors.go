package apperrors

import (
	"errors"
)

var (
	ErrInvestorAlreadyExists = errors.New("investor already exists")
	ErrInvestorNotFound      = errors.New("investor not found")

	ErrDepositNotFound    = errors.New("deposit not found")
	ErrWithdrawalNotFound = errors.New("withdrawal request not found")

	// Transition attempted that the state machine does not list for the
	// current status, or is listed for the other role
	ErrTransitionNotAllowed = errors.New("transition not allowed from current status")
	ErrActorNotAllowed      = errors.New("actor not allowed to perform this transition")

	ErrUnknownStatus = errors.New("unknown status")

	ErrFeedbackRequired    = errors.New("dispute feedback must not be empty")
	ErrChargesExceedGross  = errors.New("charges exceed gross amount")
	ErrChargesNegative     = errors.New("charges must not be negative")
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrAmountBelowMinimum  = errors.New("amount below minimum deposit")
	ErrBalanceInsufficient = errors.New("insufficient balance")

	ErrReceiptNotExpected = errors.New("receipt upload only applies to mobile money deposits")
	ErrReceiptAlreadySet  = errors.New("receipt already uploaded")

	ErrPaymentMethodInvalid  = errors.New("unknown payment method")
	ErrWithdrawalTypeInvalid = errors.New("unknown withdrawal type")
	ErrReasonRequired        = errors.New("rejection reason must not be empty")
	ErrReceiptURLRequired    = errors.New("receipt url must not be empty")
)
