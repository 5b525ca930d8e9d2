package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndome/investhub/internal/flow"
	"github.com/ndome/investhub/internal/handlers/investorctx"
	"github.com/ndome/investhub/internal/handlers/render"
	"github.com/ndome/investhub/internal/logger"
	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/service/deposit"
)

// Monetary fields serialize as decimal strings; statuses are always the
// canonical spelling no matter what the row carries.
type depositResponse struct {
	ID                 uuid.UUID       `json:"id"`
	DepositNumber      string          `json:"deposit_number"`
	GrossAmount        decimal.Decimal `json:"gross_amount"`
	Charges            decimal.Decimal `json:"charges"`
	Amount             decimal.Decimal `json:"amount"`
	PaymentMethod      string          `json:"payment_method"`
	ConfirmationStatus string          `json:"confirmation_status"`
	InvestorReceiptURL string          `json:"investor_receipt_url,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	DisputeFeedback    string          `json:"dispute_feedback,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	DepositedAt        *time.Time      `json:"deposited_at,omitempty"`
	AdminConfirmedAt   *time.Time      `json:"admin_confirmed_at,omitempty"`
}

func toDepositResponse(d models.Deposit) depositResponse {
	return depositResponse{
		ID:                 d.ID,
		DepositNumber:      d.DepositNumber,
		GrossAmount:        d.GrossAmount,
		Charges:            d.Charges,
		Amount:             d.Amount,
		PaymentMethod:      d.PaymentMethod,
		ConfirmationStatus: flow.Deposits.Canonical(d.ConfirmationStatus),
		InvestorReceiptURL: d.InvestorReceiptURL,
		Notes:              d.Notes,
		DisputeFeedback:    d.DisputeFeedback,
		CreatedAt:          d.CreatedAt,
		DepositedAt:        d.DepositedAt,
		AdminConfirmedAt:   d.AdminConfirmedAt,
	}
}

func toDepositResponses(deposits []models.Deposit) []depositResponse {
	responses := make([]depositResponse, 0, len(deposits))
	for _, d := range deposits {
		responses = append(responses, toDepositResponse(d))
	}
	return responses
}

// pathID reads the {id} path segment; a malformed id renders not found,
// same as an id that resolves to nothing.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func requestInvestor(w http.ResponseWriter, r *http.Request) (models.Investor, bool) {
	investor, ok := investorctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal service error", http.StatusInternalServerError)
	}
	return investor, ok
}

func handleListDeposits(depositService depositService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		investor, ok := requestInvestor(w, r)
		if !ok {
			return
		}

		deposits, err := depositService.List(r.Context(), investor.ID)
		if err != nil {
			l.Error("Failed to list deposits", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, toDepositResponses(deposits))
	})
}

func handleCreateDeposit(depositService depositService, l logger.Logger) http.Handler {
	type request struct {
		Amount        decimal.Decimal `json:"amount" validate:"required"`
		PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash mobile_money"`
		Notes         string          `json:"notes"`
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

		created, err := depositService.Create(r.Context(), investor.ID, deposit.CreateParams{
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		})
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSONWithStatus(w, toDepositResponse(created), http.StatusCreated)
	})
}

func handleUploadReceipt(depositService depositService, l logger.Logger) http.Handler {
	type request struct {
		ReceiptURL string `json:"receipt_url" validate:"required,url"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		investor, ok := requestInvestor(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := depositService.UploadReceipt(r.Context(), investor.ID, id, req.ReceiptURL)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toDepositResponse(updated))
	})
}

// confirmRequest carries the investor's verdict: confirmed true accepts,
// confirmed false disputes and then feedback is mandatory.
type confirmRequest struct {
	Confirmed bool   `json:"confirmed"`
	Feedback  string `json:"feedback"`
}

func handleConfirmDeposit(depositService depositService, l logger.Logger) http.Handler {
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

		var updated models.Deposit
		if req.Confirmed {
			updated, err = depositService.Confirm(r.Context(), investor.ID, id)
		} else {
			updated, err = depositService.Dispute(r.Context(), investor.ID, id, req.Feedback)
		}
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toDepositResponse(updated))
	})
}

func handleCancelDeposit(depositService depositService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		investor, ok := requestInvestor(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		updated, err := depositService.Cancel(r.Context(), investor.ID, id)
		if err != nil {
			writeCommandError(w, l, err)
			return
		}

		render.JSON(w, toDepositResponse(updated))
	})
}
