package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndome/investhub/internal/flow"
	"github.com/ndome/investhub/internal/handlers/render"
	"github.com/ndome/investhub/internal/logger"
	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/service/withdrawal"
)

type withdrawalResponse struct {
	ID                  uuid.UUID        `json:"id"`
	RequestNumber       string           `json:"request_number"`
	Type                string           `json:"type"`
	Amount              decimal.Decimal  `json:"amount"`
	ApprovedAmount      *decimal.Decimal `json:"approved_amount,omitempty"`
	MomoNumber          string           `json:"momo_number"`
	MomoName            string           `json:"momo_name"`
	MomoProvider        string           `json:"momo_provider"`
	Status              string           `json:"status"`
	AdminReceiptURL     string           `json:"admin_receipt_url,omitempty"`
	AdminNotes          string           `json:"admin_notes,omitempty"`
	RejectionReason     string           `json:"rejection_reason,omitempty"`
	InvestorFeedback    string           `json:"investor_feedback,omitempty"`
	RequestReason       string           `json:"request_reason,omitempty"`
	RequestedAt         time.Time        `json:"requested_at"`
	ProcessedAt         *time.Time       `json:"processed_at,omitempty"`
	InvestorConfirmedAt *time.Time       `json:"investor_confirmed_at,omitempty"`
}

func toWithdrawalResponse(w models.WithdrawalRequest) withdrawalResponse {
	return withdrawalResponse{
		ID:                  w.ID,
		RequestNumber:       w.RequestNumber,
		Type:                w.Type,
		Amount:              w.Amount,
		ApprovedAmount:      w.ApprovedAmount,
		MomoNumber:          w.MomoNumber,
		MomoName:            w.MomoName,
		MomoProvider:        w.MomoProvider,
		Status:              flow.Withdrawals.Canonical(w.Status),
		AdminReceiptURL:     w.AdminReceiptURL,
		AdminNotes:          w.AdminNotes,
		RejectionReason:     w.RejectionReason,
		InvestorFeedback:    w.InvestorFeedback,
		RequestReason:       w.RequestReason,
		RequestedAt:         w.RequestedAt,
		ProcessedAt:         w.ProcessedAt,
		InvestorConfirmedAt: w.InvestorConfirmedAt,
	}
}

func toWithdrawalResponses(requests []models.WithdrawalRequest) []withdrawalResponse {
	responses := make([]withdrawalResponse, 0, len(requests))
	for _, w := range requests {
		responses = append(responses, toWithdrawalResponse(w))
	}
	return responses
}

func handleListWithdrawals(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		investor, ok := requestInvestor(w, r)
		if !ok {
			return
		}

		requests, err := withdrawalService.List(r.Context(), investor.ID)
		if err != nil {
			l.Error("Failed to list withdrawals", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, toWithdrawalResponses(requests))
	})
}

func handleCreateWithdrawal(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	type request struct {
		Type          string          `json:"type" validate:"required,oneof=cash profit product equipment_share"`
		Amount        decimal.Decimal `json:"amount" validate:"required"`
		MomoNumber    string          `json:"momo_number" validate:"required,momo"`
		MomoName      string          `json:"momo_name" validate:"required"`
		MomoProvider  string          `json:"momo_provider" validate:"required"`
		RequestReason string          `json:"request_reason"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		investor, ok := requestInvestor(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		created, err := withdrawalService.Create(r.Context(), investor.ID, withdrawal.CreateParams{
			Type:          req.Type,
			Amount:        req.Amount,
			MomoNumber:    req.MomoNumber,
			MomoName:      req.MomoName,
			MomoProvider:  req.MomoProvider,
			RequestReason: req.RequestReason,
		})
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSONWithStatus(w, toWithdrawalResponse(created), http.StatusCreated)
	})
}

func handleConfirmWithdrawal(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		investor, ok := requestInvestor(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[confirmRequest](w, r)
		if err != nil {
			return
		}

		var updated models.WithdrawalRequest
		if req.Confirmed {
			updated, err = withdrawalService.Confirm(r.Context(), investor.ID, id)
		} else {
			updated, err = withdrawalService.Dispute(r.Context(), investor.ID, id, req.Feedback)
		}
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toWithdrawalResponse(updated))
	})
}

func handleCancelWithdrawal(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		investor, ok := requestInvestor(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		updated, err := withdrawalService.Cancel(r.Context(), investor.ID, id)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toWithdrawalResponse(updated))
	})
}
