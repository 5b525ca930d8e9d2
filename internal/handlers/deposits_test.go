package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/handlers/investorctx"
	"github.com/ndome/investhub/internal/logger"
	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/service/deposit"
)

// depositServiceStub answers every method with canned values so handler
// behavior can be tested without a database
type depositServiceStub struct {
	deposit models.Deposit
	err     error

	lastAction   string
	lastFeedback string
}

func (s *depositServiceStub) Create(_ context.Context, _ uuid.UUID, p deposit.CreateParams) (models.Deposit, error) {
	s.lastAction = "create"
	d := s.deposit
	d.GrossAmount = p.Amount
	d.Amount = p.Amount
	d.PaymentMethod = p.PaymentMethod
	return d, s.err
}

func (s *depositServiceStub) List(context.Context, uuid.UUID) ([]models.Deposit, error) {
	s.lastAction = "list"
	return []models.Deposit{s.deposit}, s.err
}

func (s *depositServiceStub) ListAll(context.Context, string) ([]models.Deposit, error) {
	s.lastAction = "list_all"
	return []models.Deposit{s.deposit}, s.err
}

func (s *depositServiceStub) UploadReceipt(context.Context, uuid.UUID, uuid.UUID, string) (models.Deposit, error) {
	s.lastAction = "upload_receipt"
	return s.deposit, s.err
}

func (s *depositServiceStub) Confirm(context.Context, uuid.UUID, uuid.UUID) (models.Deposit, error) {
	s.lastAction = "confirm"
	return s.deposit, s.err
}

func (s *depositServiceStub) Dispute(_ context.Context, _ uuid.UUID, _ uuid.UUID, feedback string) (models.Deposit, error) {
	s.lastAction = "dispute"
	s.lastFeedback = feedback
	return s.deposit, s.err
}

func (s *depositServiceStub) Cancel(context.Context, uuid.UUID, uuid.UUID) (models.Deposit, error) {
	s.lastAction = "cancel"
	return s.deposit, s.err
}

func (s *depositServiceStub) ConfirmCash(context.Context, uuid.UUID, string) (models.Deposit, error) {
	s.lastAction = "confirm_cash"
	return s.deposit, s.err
}

func (s *depositServiceStub) Verify(context.Context, uuid.UUID, decimal.Decimal, string) (models.Deposit, error) {
	s.lastAction = "verify"
	return s.deposit, s.err
}

func (s *depositServiceStub) Resolve(context.Context, uuid.UUID, string) (models.Deposit, error) {
	s.lastAction = "resolve"
	return s.deposit, s.err
}

func (s *depositServiceStub) CancelByAdmin(context.Context, uuid.UUID) (models.Deposit, error) {
	s.lastAction = "cancel_by_admin"
	return s.deposit, s.err
}

// withInvestor injects an authenticated investor the way AuthMiddleware does
func withInvestor(investor models.Investor, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(investorctx.New(r.Context(), investor)))
	})
}

func Test_DepositHandlers(t *testing.T) {
	investor := models.Investor{ID: uuid.New(), Username: "amina", Role: models.RoleInvestor}
	noop := logger.NewNoOpLogger()

	someDeposit := models.Deposit{
		ID:                 uuid.New(),
		DepositNumber:      "DEP-000042",
		InvestorID:         investor.ID,
		GrossAmount:        decimal.NewFromInt(10000),
		Charges:            decimal.NewFromInt(350),
		Amount:             decimal.NewFromInt(9650),
		PaymentMethod:      models.PaymentMethodMobileMoney,
		ConfirmationStatus: models.DepositPendingConfirm,
	}

	t.Run("create", func(t *testing.T) {
		t.Run("ok renders decimal strings", func(t *testing.T) {
			stub := &depositServiceStub{deposit: someDeposit}
			h := withInvestor(investor, handleCreateDeposit(stub, noop))

			r := httptest.NewRequest("POST", "/investor/deposits", strings.NewReader(`{"amount":"50000","payment_method":"mobile_money"}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
			assert.Equal(t, "create", stub.lastAction)
			assert.Contains(t, w.Body.String(), `"gross_amount":"50000"`, "monetary fields must be strings")
		})

		t.Run("camelCase keys accepted", func(t *testing.T) {
			stub := &depositServiceStub{deposit: someDeposit}
			h := withInvestor(investor, handleCreateDeposit(stub, noop))

			r := httptest.NewRequest("POST", "/investor/deposits", strings.NewReader(`{"amount":"50000","paymentMethod":"cash"}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		})

		t.Run("number amount accepted", func(t *testing.T) {
			stub := &depositServiceStub{deposit: someDeposit}
			h := withInvestor(investor, handleCreateDeposit(stub, noop))

			r := httptest.NewRequest("POST", "/investor/deposits", strings.NewReader(`{"amount":50000,"payment_method":"cash"}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		})

		t.Run("unknown payment method fails validation", func(t *testing.T) {
			stub := &depositServiceStub{deposit: someDeposit}
			h := withInvestor(investor, handleCreateDeposit(stub, noop))

			r := httptest.NewRequest("POST", "/investor/deposits", strings.NewReader(`{"amount":"50000","payment_method":"cheque"}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, stub.lastAction, "service must not be called on invalid input")
		})

		t.Run("service errors map to status codes", func(t *testing.T) {
			tests := []struct {
				name string
				err  error
				code int
			}{
				{"below minimum", apperrors.ErrAmountBelowMinimum, http.StatusBadRequest},
				{"not found", apperrors.ErrDepositNotFound, http.StatusNotFound},
				{"bad transition", apperrors.ErrTransitionNotAllowed, http.StatusConflict},
				{"wrong actor", apperrors.ErrActorNotAllowed, http.StatusForbidden},
				{"insufficient balance", apperrors.ErrBalanceInsufficient, http.StatusPaymentRequired},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					stub := &depositServiceStub{deposit: someDeposit, err: tt.err}
					h := withInvestor(investor, handleCreateDeposit(stub, noop))

					r := httptest.NewRequest("POST", "/investor/deposits", strings.NewReader(`{"amount":"500","payment_method":"cash"}`))
					w := httptest.NewRecorder()
					h.ServeHTTP(w, r)

					require.Equal(t, tt.code, w.Code, "body: %s", w.Body.String())
				})
			}
		})
	})

	t.Run("confirm dispatches on verdict", func(t *testing.T) {
		t.Run("confirmed true confirms", func(t *testing.T) {
			stub := &depositServiceStub{deposit: someDeposit}
			h := withInvestor(investor, handleConfirmDeposit(stub, noop))

			r := httptest.NewRequest("POST", "/investor/deposits/"+someDeposit.ID.String()+"/confirm", strings.NewReader(`{"confirmed":true}`))
			r.SetPathValue("id", someDeposit.ID.String())
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
			assert.Equal(t, "confirm", stub.lastAction)
		})

		t.Run("confirmed false disputes with feedback", func(t *testing.T) {
			stub := &depositServiceStub{deposit: someDeposit}
			h := withInvestor(investor, handleConfirmDeposit(stub, noop))

			r := httptest.NewRequest("POST", "/investor/deposits/"+someDeposit.ID.String()+"/confirm", strings.NewReader(`{"confirmed":false,"feedback":"wrong amount"}`))
			r.SetPathValue("id", someDeposit.ID.String())
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
			assert.Equal(t, "dispute", stub.lastAction)
			assert.Equal(t, "wrong amount", stub.lastFeedback)
		})
	})

	t.Run("malformed id renders not found", func(t *testing.T) {
		stub := &depositServiceStub{deposit: someDeposit}
		h := withInvestor(investor, handleCancelDeposit(stub, noop))

		r := httptest.NewRequest("POST", "/investor/deposits/not-a-uuid/cancel", nil)
		r.SetPathValue("id", "not-a-uuid")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, stub.lastAction)
	})

	t.Run("list renders canonical status", func(t *testing.T) {
		legacy := someDeposit
		legacy.ConfirmationStatus = "awaiting_receipt"
		stub := &depositServiceStub{deposit: legacy}
		h := withInvestor(investor, handleListDeposits(stub, noop))

		r := httptest.NewRequest("GET", "/investor/deposits", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var listed []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
		require.Len(t, listed, 1)
		assert.Equal(t, "awaiting_admin_confirmation", listed[0]["confirmation_status"], "legacy rows must render canonically")
	})
}
