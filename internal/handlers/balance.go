package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ndome/investhub/internal/handlers/render"
	"github.com/ndome/investhub/internal/logger"
	"github.com/ndome/investhub/internal/models"
)

type balanceResponse struct {
	Cash           decimal.Decimal `json:"cash"`
	Profit         decimal.Decimal `json:"profit"`
	Product        decimal.Decimal `json:"product"`
	EquipmentShare decimal.Decimal `json:"equipment_share"`
}

func toBalanceResponse(b models.Balance) balanceResponse {
	return balanceResponse{
		Cash:           b.Cash,
		Profit:         b.Profit,
		Product:        b.Product,
		EquipmentShare: b.EquipmentShare,
	}
}

func handleBalance(balanceService balanceService, l logger.Logger) http.Handler {
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

		render.JSON(w, toBalanceResponse(balance))
	})
}
