package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Which balance bucket the withdrawal debits
const (
	WithdrawalTypeCash           = "cash"
	WithdrawalTypeProfit         = "profit"
	WithdrawalTypeProduct        = "product"
	WithdrawalTypeEquipmentShare = "equipment_share"
)

// Withdrawal statuses (canonical set)
const (
	WithdrawalPending         = "pending"
	WithdrawalApproved        = "approved"
	WithdrawalAwaitingConfirm = "awaiting_investor_confirmation"
	WithdrawalConfirmed       = "confirmed"
	WithdrawalRejected        = "rejected"
	WithdrawalCancelled       = "cancelled"
	WithdrawalDisputed        = "disputed"

	// Legacy spellings still found in old rows and old clients.
	// Accepted on input, folded to the canonical set, never emitted.
	WithdrawalProcessing = "processing"
	WithdrawalCompleted  = "completed"
)

type WithdrawalRequest struct {
	ID            uuid.UUID
	RequestNumber string
	InvestorID    uuid.UUID

	Type   string
	Amount decimal.Decimal

	// ApprovedAmount is authoritative once set by admin; nil means the
	// requested Amount stands.
	ApprovedAmount *decimal.Decimal

	// Destination mobile-money account, immutable after creation
	MomoNumber   string
	MomoName     string
	MomoProvider string

	Status string

	AdminReceiptURL  string
	AdminNotes       string
	RejectionReason  string
	InvestorFeedback string
	RequestReason    string

	RequestedAt         time.Time
	ProcessedAt         *time.Time
	InvestorConfirmedAt *time.Time
}

// DebitAmount is the amount actually debited on confirmation:
// the admin-approved amount if set, the requested amount otherwise.
func (w WithdrawalRequest) DebitAmount() decimal.Decimal {
	if w.ApprovedAmount != nil {
		return *w.ApprovedAmount
	}
	return w.Amount
}
