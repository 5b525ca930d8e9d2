package flow

import (
	"github.com/ndome/investhub/internal/models"
)

// Withdrawals is the machine for funds moving platform -> investor.
//
// Cancellation is narrower than for deposits: once an admin has picked the
// request up the investor can no longer retract it, only dispute the payment.
var Withdrawals = newMachine(
	"withdrawal",
	[]Transition{
		{models.WithdrawalPending, ActionApprove, ActorAdmin, models.WithdrawalApproved},
		{models.WithdrawalPending, ActionReject, ActorAdmin, models.WithdrawalRejected},
		{models.WithdrawalPending, ActionCancel, ActorInvestor, models.WithdrawalCancelled},

		{models.WithdrawalApproved, ActionMarkSent, ActorAdmin, models.WithdrawalAwaitingConfirm},

		{models.WithdrawalAwaitingConfirm, ActionConfirm, ActorInvestor, models.WithdrawalConfirmed},
		{models.WithdrawalAwaitingConfirm, ActionDispute, ActorInvestor, models.WithdrawalDisputed},
		{models.WithdrawalDisputed, ActionResolve, ActorAdmin, models.WithdrawalAwaitingConfirm},
	},
	[]string{models.WithdrawalConfirmed, models.WithdrawalRejected, models.WithdrawalCancelled},
	map[string]string{
		models.WithdrawalProcessing: models.WithdrawalApproved,
		models.WithdrawalCompleted:  models.WithdrawalConfirmed,
	},
)
