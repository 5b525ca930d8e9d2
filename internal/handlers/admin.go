package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ndome/investhub/internal/handlers/render"
	"github.com/ndome/investhub/internal/logger"
)

func handleAdminListDeposits(depositService depositService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deposits, err := depositService.ListAll(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			l.Error("Failed to list deposits", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, toDepositResponses(deposits))
	})
}

func handleConfirmCash(depositService depositService, l logger.Logger) http.Handler {
	type request struct {
		Notes string `json:"notes"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := depositService.ConfirmCash(r.Context(), id, req.Notes)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toDepositResponse(updated))
	})
}

func handleVerifyDeposit(depositService depositService, l logger.Logger) http.Handler {
	type request struct {
		Charges decimal.Decimal `json:"charges"`
		Notes   string          `json:"notes"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := depositService.Verify(r.Context(), id, req.Charges, req.Notes)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toDepositResponse(updated))
	})
}

func handleResolveDeposit(depositService depositService, l logger.Logger) http.Handler {
	type request struct {
		Notes string `json:"notes"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := depositService.Resolve(r.Context(), id, req.Notes)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toDepositResponse(updated))
	})
}

func handleAdminCancelDeposit(depositService depositService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		updated, err := depositService.CancelByAdmin(r.Context(), id)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toDepositResponse(updated))
	})
}

func handleAdminListWithdrawals(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests, err := withdrawalService.ListAll(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			l.Error("Failed to list withdrawals", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, toWithdrawalResponses(requests))
	})
}

func handleApproveWithdrawal(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	type request struct {
		ApprovedAmount decimal.Decimal `json:"approved_amount"`
		AdminNotes     string          `json:"admin_notes"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := withdrawalService.Approve(r.Context(), id, req.ApprovedAmount, req.AdminNotes)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toWithdrawalResponse(updated))
	})
}

func handleRejectWithdrawal(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	type request struct {
		RejectionReason string `json:"rejection_reason" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := withdrawalService.Reject(r.Context(), id, req.RejectionReason)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toWithdrawalResponse(updated))
	})
}

func handleMarkSent(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	type request struct {
		ReceiptURL string `json:"receipt_url" validate:"required,url"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := withdrawalService.MarkSent(r.Context(), id, req.ReceiptURL)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toWithdrawalResponse(updated))
	})
}

func handleResolveWithdrawal(withdrawalService withdrawalService, l logger.Logger) http.Handler {
	type request struct {
		AdminNotes string `json:"admin_notes"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := withdrawalService.Resolve(r.Context(), id, req.AdminNotes)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toWithdrawalResponse(updated))
	})
}
