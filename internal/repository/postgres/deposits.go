package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/models"
)

type DepositRepo struct {
	DB DBTX
}

const depositColumns = `id, deposit_number, investor_id, gross_amount, charges, amount,
payment_method, confirmation_status, investor_receipt_url, notes, dispute_feedback,
created_at, deposited_at, admin_confirmed_at`

// The human-readable deposit number comes from a dedicated sequence so it
// stays gapless-ish and monotonic regardless of the uuid primary key.
const createDeposit = `-- name: CreateDeposit
INSERT INTO deposits (
	id, deposit_number, investor_id, gross_amount, charges, amount,
	payment_method, confirmation_status, investor_receipt_url, notes, dispute_feedback,
	created_at, deposited_at, admin_confirmed_at
)
VALUES (
	$1, 'DEP-' || lpad(nextval('deposit_numbers')::text, 6, '0'), $2, $3, $4, $5,
	$6, $7, $8, $9, $10,
	$11, $12, $13
)
RETURNING ` + depositColumns

func (r *DepositRepo) CreateDeposit(ctx context.Context, d models.Deposit) (models.Deposit, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	rows, _ := r.DB.Query(ctx, createDeposit,
		d.ID, d.InvestorID, d.GrossAmount, d.Charges, d.Amount,
		d.PaymentMethod, d.ConfirmationStatus, d.InvestorReceiptURL, d.Notes, d.DisputeFeedback,
		d.CreatedAt, d.DepositedAt, d.AdminConfirmedAt,
	)
	deposit, err := pgx.CollectOneRow(rows, rowToDeposit)
	if err != nil {
		return deposit, fmt.Errorf("db error: %w", err)
	}

	return deposit, nil
}

func (r *DepositRepo) GetDeposit(ctx context.Context, id uuid.UUID, forUpdate bool) (models.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	rows, _ := r.DB.Query(ctx, query, id)
	deposit, err := pgx.CollectOneRow(rows, rowToDeposit)

	switch {
	case err == nil:
		return deposit, nil
	case errors.Is(err, pgx.ErrNoRows):
		return deposit, apperrors.ErrDepositNotFound
	default:
		return deposit, fmt.Errorf("db error: %w", err)
	}
}

func (r *DepositRepo) ListDeposits(ctx context.Context, investorID uuid.UUID) ([]models.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE investor_id = $1 ORDER BY created_at DESC, id`

	rows, _ := r.DB.Query(ctx, query, investorID)
	deposits, err := pgx.CollectRows(rows, rowToDeposit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return deposits, nil
}

func (r *DepositRepo) ListAllDeposits(ctx context.Context, status string) ([]models.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits ORDER BY created_at DESC, id`
	args := []any{}

	if status != "" {
		query = `SELECT ` + depositColumns + ` FROM deposits WHERE confirmation_status = $1 ORDER BY created_at DESC, id`
		args = append(args, status)
	}

	rows, _ := r.DB.Query(ctx, query, args...)
	deposits, err := pgx.CollectRows(rows, rowToDeposit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return deposits, nil
}

const updateDeposit = `-- name: UpdateDeposit
UPDATE deposits
SET charges = $2,
	amount = $3,
	confirmation_status = $4,
	investor_receipt_url = $5,
	notes = $6,
	dispute_feedback = $7,
	deposited_at = $8,
	admin_confirmed_at = $9
WHERE id = $1
RETURNING ` + depositColumns

func (r *DepositRepo) UpdateDeposit(ctx context.Context, d models.Deposit) (models.Deposit, error) {
	rows, _ := r.DB.Query(ctx, updateDeposit,
		d.ID, d.Charges, d.Amount, d.ConfirmationStatus,
		d.InvestorReceiptURL, d.Notes, d.DisputeFeedback,
		d.DepositedAt, d.AdminConfirmedAt,
	)
	deposit, err := pgx.CollectOneRow(rows, rowToDeposit)

	switch {
	case err == nil:
		return deposit, nil
	case errors.Is(err, pgx.ErrNoRows):
		return deposit, apperrors.ErrDepositNotFound
	default:
		return deposit, fmt.Errorf("db error: %w", err)
	}
}

func rowToDeposit(row pgx.CollectableRow) (models.Deposit, error) {
	var d models.Deposit
	err := row.Scan(
		&d.ID, &d.DepositNumber, &d.InvestorID, &d.GrossAmount, &d.Charges, &d.Amount,
		&d.PaymentMethod, &d.ConfirmationStatus, &d.InvestorReceiptURL, &d.Notes, &d.DisputeFeedback,
		&d.CreatedAt, &d.DepositedAt, &d.AdminConfirmedAt,
	)
	return d, err
}
