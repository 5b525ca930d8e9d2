package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndome/investhub/internal/models"
)

// Storage bundles the repositories so services can run several of them
// inside one transaction via InTx.
type Storage interface {
	Investors() InvestorRepo
	Balances() BalanceRepo
	Deposits() DepositRepo
	Withdrawals() WithdrawalRepo

	// Run fn within a db transaction. The storage passed to fn uses the
	// transaction; the error returned by fn rolls it back.
	InTx(ctx context.Context, fn func(Storage) error) error
}

type InvestorRepo interface {
	// Create investor with the given role
	// Must return apperrors.ErrInvestorAlreadyExists on a username clash
	CreateInvestor(ctx context.Context, username string, hashedPassword string, role string) (models.Investor, error)

	// Must return apperrors.ErrInvestorNotFound if no row matches
	GetInvestorByID(ctx context.Context, id uuid.UUID) (models.Investor, error)
	GetInvestorByUsername(ctx context.Context, username string) (models.Investor, error)
}

type BalanceRepo interface {
	CreateBalance(ctx context.Context, investorID uuid.UUID) error

	// forUpdate locks the row for the rest of the transaction
	GetBalance(ctx context.Context, investorID uuid.UUID, forUpdate bool) (models.Balance, error)

	// AddToBucket applies delta (positive or negative) to one balance bucket
	// and returns the updated balance
	AddToBucket(ctx context.Context, investorID uuid.UUID, bucket string, delta decimal.Decimal) (models.Balance, error)
}

type DepositRepo interface {
	// Create deposit; ID and DepositNumber are assigned by storage
	CreateDeposit(ctx context.Context, deposit models.Deposit) (models.Deposit, error)

	// Must return apperrors.ErrDepositNotFound if no row matches
	GetDeposit(ctx context.Context, id uuid.UUID, forUpdate bool) (models.Deposit, error)

	// Investor's own deposits, newest first
	ListDeposits(ctx context.Context, investorID uuid.UUID) ([]models.Deposit, error)

	// All deposits, optionally filtered by status; admin listing
	ListAllDeposits(ctx context.Context, status string) ([]models.Deposit, error)

	// Persist the mutable fields of the deposit
	UpdateDeposit(ctx context.Context, deposit models.Deposit) (models.Deposit, error)
}

type WithdrawalRepo interface {
	// Create request; ID and RequestNumber are assigned by storage
	CreateWithdrawal(ctx context.Context, request models.WithdrawalRequest) (models.WithdrawalRequest, error)

	// Must return apperrors.ErrWithdrawalNotFound if no row matches
	GetWithdrawal(ctx context.Context, id uuid.UUID, forUpdate bool) (models.WithdrawalRequest, error)

	ListWithdrawals(ctx context.Context, investorID uuid.UUID) ([]models.WithdrawalRequest, error)
	ListAllWithdrawals(ctx context.Context, status string) ([]models.WithdrawalRequest, error)

	UpdateWithdrawal(ctx context.Context, request models.WithdrawalRequest) (models.WithdrawalRequest, error)
}
