package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndome/investhub/internal/handlers/middleware"
	"github.com/ndome/investhub/internal/logger"
	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/service/deposit"
	"github.com/ndome/investhub/internal/service/withdrawal"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	depositService depositService,
	withdrawalService withdrawalService,
	balanceService balanceService,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	asInvestor := func(h http.Handler) http.Handler {
		return authMiddleware(middleware.RequireRole(models.RoleInvestor)(h))
	}
	asAdmin := func(h http.Handler) http.Handler {
		return authMiddleware(middleware.RequireRole(models.RoleAdmin)(h))
	}

	mux := http.NewServeMux()

	mux.Handle("POST /auth/register", handleRegister(authService, logger))
	mux.Handle("POST /auth/login", handleLogin(authService, logger))

	mux.Handle("GET /investor/deposits", asInvestor(handleListDeposits(depositService, logger)))
	mux.Handle("POST /investor/deposits", asInvestor(handleCreateDeposit(depositService, logger)))
	mux.Handle("POST /investor/deposits/{id}/upload-receipt", asInvestor(handleUploadReceipt(depositService, logger)))
	mux.Handle("POST /investor/deposits/{id}/confirm", asInvestor(handleConfirmDeposit(depositService, logger)))
	mux.Handle("POST /investor/deposits/{id}/cancel", asInvestor(handleCancelDeposit(depositService, logger)))

	mux.Handle("GET /investor/withdrawals", asInvestor(handleListWithdrawals(withdrawalService, logger)))
	mux.Handle("POST /investor/withdrawals", asInvestor(handleCreateWithdrawal(withdrawalService, logger)))
	mux.Handle("POST /investor/withdrawals/{id}/confirm", asInvestor(handleConfirmWithdrawal(withdrawalService, logger)))
	mux.Handle("POST /investor/withdrawals/{id}/cancel", asInvestor(handleCancelWithdrawal(withdrawalService, logger)))

	mux.Handle("GET /investor/balance", asInvestor(handleBalance(balanceService, logger)))
	mux.Handle("GET /investor/home", asInvestor(handleHome(depositService, withdrawalService, balanceService, logger)))

	mux.Handle("GET /admin/deposits", asAdmin(handleAdminListDeposits(depositService, logger)))
	mux.Handle("POST /admin/deposits/{id}/confirm-cash", asAdmin(handleConfirmCash(depositService, logger)))
	mux.Handle("POST /admin/deposits/{id}/verify", asAdmin(handleVerifyDeposit(depositService, logger)))
	mux.Handle("POST /admin/deposits/{id}/resolve", asAdmin(handleResolveDeposit(depositService, logger)))
	mux.Handle("POST /admin/deposits/{id}/cancel", asAdmin(handleAdminCancelDeposit(depositService, logger)))

	mux.Handle("GET /admin/withdrawals", asAdmin(handleAdminListWithdrawals(withdrawalService, logger)))
	mux.Handle("POST /admin/withdrawals/{id}/approve", asAdmin(handleApproveWithdrawal(withdrawalService, logger)))
	mux.Handle("POST /admin/withdrawals/{id}/reject", asAdmin(handleRejectWithdrawal(withdrawalService, logger)))
	mux.Handle("POST /admin/withdrawals/{id}/mark-sent", asAdmin(handleMarkSent(withdrawalService, logger)))
	mux.Handle("POST /admin/withdrawals/{id}/resolve", asAdmin(handleResolveWithdrawal(withdrawalService, logger)))

	return chain(mux,
		middleware.LoggerMiddleware(logger),
	)
}

type authService interface {
	// Register investor with username and password, issue access token
	// Has to return apperrors.ErrInvestorAlreadyExists if username is taken
	Register(ctx context.Context, username string, password string) (string, error)

	// Login investor with username and password, issue access token
	// Has to return apperrors.ErrInvestorNotFound if credentials don't match
	Login(ctx context.Context, username string, password string) (string, error)

	// Resolve authenticated investor from the request
	Auth(ctx context.Context, r *http.Request) (models.Investor, error)
}

type depositService interface {
	Create(ctx context.Context, investorID uuid.UUID, p deposit.CreateParams) (models.Deposit, error)
	List(ctx context.Context, investorID uuid.UUID) ([]models.Deposit, error)
	ListAll(ctx context.Context, status string) ([]models.Deposit, error)
	UploadReceipt(ctx context.Context, investorID uuid.UUID, id uuid.UUID, receiptURL string) (models.Deposit, error)
	Confirm(ctx context.Context, investorID uuid.UUID, id uuid.UUID) (models.Deposit, error)
	Dispute(ctx context.Context, investorID uuid.UUID, id uuid.UUID, feedback string) (models.Deposit, error)
	Cancel(ctx context.Context, investorID uuid.UUID, id uuid.UUID) (models.Deposit, error)
	ConfirmCash(ctx context.Context, id uuid.UUID, notes string) (models.Deposit, error)
	Verify(ctx context.Context, id uuid.UUID, charges decimal.Decimal, notes string) (models.Deposit, error)
	Resolve(ctx context.Context, id uuid.UUID, notes string) (models.Deposit, error)
	CancelByAdmin(ctx context.Context, id uuid.UUID) (models.Deposit, error)
}

type withdrawalService interface {
	Create(ctx context.Context, investorID uuid.UUID, p withdrawal.CreateParams) (models.WithdrawalRequest, error)
	List(ctx context.Context, investorID uuid.UUID) ([]models.WithdrawalRequest, error)
	ListAll(ctx context.Context, status string) ([]models.WithdrawalRequest, error)
	Confirm(ctx context.Context, investorID uuid.UUID, id uuid.UUID) (models.WithdrawalRequest, error)
	Dispute(ctx context.Context, investorID uuid.UUID, id uuid.UUID, feedback string) (models.WithdrawalRequest, error)
	Cancel(ctx context.Context, investorID uuid.UUID, id uuid.UUID) (models.WithdrawalRequest, error)
	Approve(ctx context.Context, id uuid.UUID, approvedAmount decimal.Decimal, adminNotes string) (models.WithdrawalRequest, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (models.WithdrawalRequest, error)
	MarkSent(ctx context.Context, id uuid.UUID, receiptURL string) (models.WithdrawalRequest, error)
	Resolve(ctx context.Context, id uuid.UUID, adminNotes string) (models.WithdrawalRequest, error)
}

type balanceService interface {
	GetBalance(ctx context.Context, investorID uuid.UUID) (models.Balance, error)
}
