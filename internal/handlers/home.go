package handlers

import (
	"net/http"

	"github.com/ndome/investhub/internal/flow"
	"github.com/ndome/investhub/internal/handlers/render"
	"github.com/ndome/investhub/internal/logger"
)

type attentionResponse struct {
	Screen  string        `json:"screen"`
	Actions []flow.Action `json:"actions"`
}

type homeResponse struct {
	Balance             balanceResponse    `json:"balance"`
	DepositAttention    *depositAttention  `json:"deposit_attention,omitempty"`
	WithdrawalAttention *withdrawAttention `json:"withdrawal_attention,omitempty"`
}

type depositAttention struct {
	Deposit depositResponse `json:"deposit"`
	attentionResponse
}

type withdrawAttention struct {
	Withdrawal withdrawalResponse `json:"withdrawal"`
	attentionResponse
}

// handleHome is the single screen-selection call of the mobile app: which
// deposit and withdrawal, if any, block on the investor right now, which
// screen to show for each, and which actions are legal. The pick is
// deterministic, so pull-to-refresh never flaps between two pending items.
func handleHome(
	depositService depositService,
	withdrawalService withdrawalService,
	balanceService balanceService,
	l logger.Logger,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		investor, ok := requestInvestor(w, r)
		if !ok {
			return
		}

		balance, err := balanceService.GetBalance(r.Context(), investor.ID)
		if err != nil {
			l.Error("Failed to get balance", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		deposits, err := depositService.List(r.Context(), investor.ID)
		if err != nil {
			l.Error("Failed to list deposits", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		withdrawals, err := withdrawalService.List(r.Context(), investor.ID)
		if err != nil {
			l.Error("Failed to list withdrawals", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := homeResponse{Balance: toBalanceResponse(balance)}

		if selected, found := flow.SelectDeposit(deposits); found {
			view := flow.DepositView(selected)
			response.DepositAttention = &depositAttention{
				Deposit:           toDepositResponse(selected),
				attentionResponse: attentionResponse{Screen: view.Screen, Actions: view.Actions},
			}
		}

		if selected, found := flow.SelectWithdrawal(withdrawals); found {
			view := flow.WithdrawalView(selected)
			response.WithdrawalAttention = &withdrawAttention{
				Withdrawal:        toWithdrawalResponse(selected),
				attentionResponse: attentionResponse{Screen: view.Screen, Actions: view.Actions},
			}
		}

		render.JSON(w, response)
	})
}
