package flow

import (
	"github.com/ndome/investhub/internal/models"
)

// Deposits is the machine for funds moving investor -> platform.
//
// The payment-method guards (receipt upload applies only to mobile money,
// the direct admin confirm only to cash) live in the deposit service, which
// sees the entity; the machine only constrains (status, action, actor).
var Deposits = newMachine(
	"deposit",
	depositTransitions(),
	[]string{models.DepositConfirmed, models.DepositCancelled},
	map[string]string{
		models.DepositAwaitingReceipt: models.DepositAwaitingAdmin,
	},
)

func depositTransitions() []Transition {
	t := []Transition{
		{models.DepositAwaitingPayment, ActionUploadReceipt, ActorInvestor, models.DepositAwaitingAdmin},
		{models.DepositAwaitingPayment, ActionConfirmCash, ActorAdmin, models.DepositConfirmed},

		// Receipt upload was deferred at creation; uploading late keeps the
		// deposit in the admin verification queue.
		{models.DepositAwaitingAdmin, ActionUploadReceipt, ActorInvestor, models.DepositAwaitingAdmin},

		{models.DepositAwaitingAdmin, ActionVerify, ActorAdmin, models.DepositPendingConfirm},
		{models.DepositPendingConfirm, ActionVerify, ActorAdmin, models.DepositPendingConfirm},

		{models.DepositPendingConfirm, ActionConfirm, ActorInvestor, models.DepositConfirmed},
		{models.DepositPendingConfirm, ActionDispute, ActorInvestor, models.DepositDisputed},
		{models.DepositDisputed, ActionResolve, ActorAdmin, models.DepositPendingConfirm},
	}

	// Either side may cancel while the deposit is not settled
	for _, from := range []string{
		models.DepositAwaitingPayment,
		models.DepositAwaitingAdmin,
		models.DepositPendingConfirm,
		models.DepositDisputed,
	} {
		t = append(t,
			Transition{from, ActionCancel, ActorInvestor, models.DepositCancelled},
			Transition{from, ActionCancel, ActorAdmin, models.DepositCancelled},
		)
	}

	return t
}
