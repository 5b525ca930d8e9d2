package flow

import (
	"time"

	"github.com/ndome/investhub/internal/models"
)

// View tells the mobile client which screen to present for an entity and
// which actions the current role may trigger. Actions come solely from the
// transition table, so the client can never offer an illegal command.
type View struct {
	Screen  string
	Actions []Action
}

// Investor-facing screens, one stable name per state
const (
	ScreenDepositPayment       = "deposit_payment"
	ScreenDepositUploadReceipt = "deposit_upload_receipt"
	ScreenDepositProcessing    = "deposit_processing"
	ScreenDepositConfirm       = "deposit_confirm"
	ScreenDepositDisputed      = "deposit_dispute_pending"
	ScreenDepositDone          = "deposit_done"
	ScreenDepositCancelled     = "deposit_cancelled"

	ScreenWithdrawalPending   = "withdrawal_pending"
	ScreenWithdrawalApproved  = "withdrawal_approved"
	ScreenWithdrawalConfirm   = "withdrawal_confirm"
	ScreenWithdrawalDisputed  = "withdrawal_dispute_pending"
	ScreenWithdrawalDone      = "withdrawal_done"
	ScreenWithdrawalRejected  = "withdrawal_rejected"
	ScreenWithdrawalCancelled = "withdrawal_cancelled"
)

// DepositView projects a deposit onto the investor's screen and actions.
func DepositView(d models.Deposit) View {
	status := Deposits.Canonical(d.ConfirmationStatus)

	var screen string
	switch status {
	case models.DepositAwaitingPayment:
		screen = ScreenDepositPayment
	case models.DepositAwaitingAdmin:
		screen = ScreenDepositProcessing
		if d.InvestorReceiptURL == "" {
			screen = ScreenDepositUploadReceipt
		}
	case models.DepositPendingConfirm:
		screen = ScreenDepositConfirm
	case models.DepositDisputed:
		screen = ScreenDepositDisputed
	case models.DepositConfirmed:
		screen = ScreenDepositDone
	default:
		screen = ScreenDepositCancelled
	}

	return View{Screen: screen, Actions: Deposits.Actions(status, ActorInvestor)}
}

// WithdrawalView projects a withdrawal request onto the investor's screen
// and actions.
func WithdrawalView(w models.WithdrawalRequest) View {
	status := Withdrawals.Canonical(w.Status)

	var screen string
	switch status {
	case models.WithdrawalPending:
		screen = ScreenWithdrawalPending
	case models.WithdrawalApproved:
		screen = ScreenWithdrawalApproved
	case models.WithdrawalAwaitingConfirm:
		screen = ScreenWithdrawalConfirm
	case models.WithdrawalDisputed:
		screen = ScreenWithdrawalDisputed
	case models.WithdrawalConfirmed:
		screen = ScreenWithdrawalDone
	case models.WithdrawalRejected:
		screen = ScreenWithdrawalRejected
	default:
		screen = ScreenWithdrawalCancelled
	}

	return View{Screen: screen, Actions: Withdrawals.Actions(status, ActorInvestor)}
}

// DepositNeedsAction reports whether the deposit blocks on the investor:
// a missing receipt, a pending confirmation, or an open dispute.
func DepositNeedsAction(d models.Deposit) bool {
	switch Deposits.Canonical(d.ConfirmationStatus) {
	case models.DepositAwaitingAdmin:
		return d.InvestorReceiptURL == ""
	case models.DepositPendingConfirm, models.DepositDisputed:
		return true
	default:
		return false
	}
}

// WithdrawalNeedsAction reports whether the request blocks on the investor.
func WithdrawalNeedsAction(w models.WithdrawalRequest) bool {
	switch Withdrawals.Canonical(w.Status) {
	case models.WithdrawalAwaitingConfirm, models.WithdrawalDisputed:
		return true
	default:
		return false
	}
}

// SelectDeposit picks the single deposit the investor should be shown first.
// The pick is deterministic for a fixed input: oldest CreatedAt wins, ID
// string order breaks ties. Flapping between two pending items across
// re-renders is a defect.
func SelectDeposit(deposits []models.Deposit) (models.Deposit, bool) {
	var selected models.Deposit
	found := false

	for _, d := range deposits {
		if !DepositNeedsAction(d) {
			continue
		}
		if !found || earlier(d.CreatedAt, d.ID.String(), selected.CreatedAt, selected.ID.String()) {
			selected = d
			found = true
		}
	}

	return selected, found
}

// SelectWithdrawal picks the single withdrawal request needing the
// investor's attention, with the same determinism rule as SelectDeposit.
func SelectWithdrawal(requests []models.WithdrawalRequest) (models.WithdrawalRequest, bool) {
	var selected models.WithdrawalRequest
	found := false

	for _, w := range requests {
		if !WithdrawalNeedsAction(w) {
			continue
		}
		if !found || earlier(w.RequestedAt, w.ID.String(), selected.RequestedAt, selected.ID.String()) {
			selected = w
			found = true
		}
	}

	return selected, found
}

func earlier(at time.Time, id string, otherAt time.Time, otherID string) bool {
	if !at.Equal(otherAt) {
		return at.Before(otherAt)
	}
	return id < otherID
}
