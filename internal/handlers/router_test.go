package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndome/investhub/internal/logger"
	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/service/withdrawal"
)

// authServiceStub resolves bearer tokens from a fixed map
type authServiceStub struct {
	investors map[string]models.Investor
}

func (s *authServiceStub) Register(context.Context, string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *authServiceStub) Login(context.Context, string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *authServiceStub) Auth(_ context.Context, r *http.Request) (models.Investor, error) {
	investor, ok := s.investors[r.Header.Get("Authorization")]
	if !ok {
		return models.Investor{}, errors.New("unknown token")
	}
	return investor, nil
}

type withdrawalServiceStub struct {
	withdrawals []models.WithdrawalRequest
}

func (s *withdrawalServiceStub) Create(context.Context, uuid.UUID, withdrawal.CreateParams) (models.WithdrawalRequest, error) {
	return models.WithdrawalRequest{}, errors.New("not implemented")
}

func (s *withdrawalServiceStub) List(context.Context, uuid.UUID) ([]models.WithdrawalRequest, error) {
	return s.withdrawals, nil
}

func (s *withdrawalServiceStub) ListAll(context.Context, string) ([]models.WithdrawalRequest, error) {
	return s.withdrawals, nil
}

func (s *withdrawalServiceStub) Confirm(context.Context, uuid.UUID, uuid.UUID) (models.WithdrawalRequest, error) {
	return models.WithdrawalRequest{}, errors.New("not implemented")
}

func (s *withdrawalServiceStub) Dispute(context.Context, uuid.UUID, uuid.UUID, string) (models.WithdrawalRequest, error) {
	return models.WithdrawalRequest{}, errors.New("not implemented")
}

func (s *withdrawalServiceStub) Cancel(context.Context, uuid.UUID, uuid.UUID) (models.WithdrawalRequest, error) {
	return models.WithdrawalRequest{}, errors.New("not implemented")
}

func (s *withdrawalServiceStub) Approve(context.Context, uuid.UUID, decimal.Decimal, string) (models.WithdrawalRequest, error) {
	return models.WithdrawalRequest{}, errors.New("not implemented")
}

func (s *withdrawalServiceStub) Reject(context.Context, uuid.UUID, string) (models.WithdrawalRequest, error) {
	return models.WithdrawalRequest{}, errors.New("not implemented")
}

func (s *withdrawalServiceStub) MarkSent(context.Context, uuid.UUID, string) (models.WithdrawalRequest, error) {
	return models.WithdrawalRequest{}, errors.New("not implemented")
}

func (s *withdrawalServiceStub) Resolve(context.Context, uuid.UUID, string) (models.WithdrawalRequest, error) {
	return models.WithdrawalRequest{}, errors.New("not implemented")
}

type balanceServiceStub struct {
	balance models.Balance
}

func (s *balanceServiceStub) GetBalance(context.Context, uuid.UUID) (models.Balance, error) {
	return s.balance, nil
}

func Test_Router(t *testing.T) {
	investor := models.Investor{ID: uuid.New(), Username: "amina", Role: models.RoleInvestor}
	admin := models.Investor{ID: uuid.New(), Username: "ops", Role: models.RoleAdmin}

	pending := models.Deposit{
		ID:                 uuid.New(),
		DepositNumber:      "DEP-000007",
		InvestorID:         investor.ID,
		GrossAmount:        decimal.NewFromInt(10000),
		Amount:             decimal.NewFromInt(9650),
		Charges:            decimal.NewFromInt(350),
		PaymentMethod:      models.PaymentMethodMobileMoney,
		ConfirmationStatus: models.DepositPendingConfirm,
	}

	router := NewRouter(
		&authServiceStub{investors: map[string]models.Investor{
			"Bearer investor-token": investor,
			"Bearer admin-token":    admin,
		}},
		&depositServiceStub{deposit: pending},
		&withdrawalServiceStub{},
		&balanceServiceStub{balance: models.Balance{Cash: decimal.NewFromInt(9650)}},
		logger.NewNoOpLogger(),
	)

	do := func(method, target, token string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(method, target, nil)
		if token != "" {
			r.Header.Set("Authorization", token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	t.Run("no token is unauthorized", func(t *testing.T) {
		w := do("GET", "/investor/deposits", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("investor can't reach admin routes", func(t *testing.T) {
		w := do("GET", "/admin/deposits", "Bearer investor-token")
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin can't reach investor routes", func(t *testing.T) {
		w := do("GET", "/investor/deposits", "Bearer admin-token")
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin lists deposits", func(t *testing.T) {
		w := do("GET", "/admin/deposits?status=pending_confirmation", "Bearer admin-token")
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	})

	t.Run("home reports what needs attention", func(t *testing.T) {
		w := do("GET", "/investor/home", "Bearer investor-token")
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		var home struct {
			Balance struct {
				Cash decimal.Decimal `json:"cash"`
			} `json:"balance"`
			DepositAttention *struct {
				Screen  string   `json:"screen"`
				Actions []string `json:"actions"`
			} `json:"deposit_attention"`
			WithdrawalAttention *struct {
				Screen string `json:"screen"`
			} `json:"withdrawal_attention"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &home))

		assert.True(t, home.Balance.Cash.Equal(decimal.NewFromInt(9650)))
		require.NotNil(t, home.DepositAttention, "pending confirmation needs the investor")
		assert.Equal(t, "deposit_confirm", home.DepositAttention.Screen)
		assert.Contains(t, home.DepositAttention.Actions, "confirm")
		assert.Nil(t, home.WithdrawalAttention, "nothing pending on the withdrawal side")
	})
}
