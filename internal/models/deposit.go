package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash        = "cash"
	PaymentMethodMobileMoney = "mobile_money"
)

// Deposit confirmation statuses (canonical set)
const (
	DepositAwaitingPayment = "awaiting_payment"
	DepositAwaitingAdmin   = "awaiting_admin_confirmation"
	DepositPendingConfirm  = "pending_confirmation"
	DepositConfirmed       = "confirmed"
	DepositDisputed        = "disputed"
	DepositCancelled       = "cancelled"

	// Legacy spelling for awaiting_admin_confirmation with deferred receipt
	// upload. Accepted on input, never emitted.
	DepositAwaitingReceipt = "awaiting_receipt"
)

type Deposit struct {
	ID            uuid.UUID
	DepositNumber string
	InvestorID    uuid.UUID

	// GrossAmount is what the investor states they sent. Amount is the net
	// credited after charges and stays equal to GrossAmount-Charges.
	GrossAmount decimal.Decimal
	Charges     decimal.Decimal
	Amount      decimal.Decimal

	PaymentMethod      string
	ConfirmationStatus string

	InvestorReceiptURL string
	Notes              string
	DisputeFeedback    string

	CreatedAt        time.Time
	DepositedAt      *time.Time
	AdminConfirmedAt *time.Time
}
