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

type WithdrawalRepo struct {
	DB DBTX
}

const withdrawalColumns = `id, request_number, investor_id, type, amount, approved_amount,
momo_number, momo_name, momo_provider, status,
admin_receipt_url, admin_notes, rejection_reason, investor_feedback, request_reason,
requested_at, processed_at, investor_confirmed_at`

const createWithdrawal = `-- name: CreateWithdrawal
INSERT INTO withdrawal_requests (
	id, request_number, investor_id, type, amount, approved_amount,
	momo_number, momo_name, momo_provider, status,
	admin_receipt_url, admin_notes, rejection_reason, investor_feedback, request_reason,
	requested_at, processed_at, investor_confirmed_at
)
VALUES (
	$1, 'WDR-' || lpad(nextval('withdrawal_numbers')::text, 6, '0'), $2, $3, $4, $5,
	$6, $7, $8, $9,
	$10, $11, $12, $13, $14,
	$15, $16, $17
)
RETURNING ` + withdrawalColumns

func (r *WithdrawalRepo) CreateWithdrawal(ctx context.Context, w models.WithdrawalRequest) (models.WithdrawalRequest, error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.RequestedAt.IsZero() {
		w.RequestedAt = time.Now()
	}

	rows, _ := r.DB.Query(ctx, createWithdrawal,
		w.ID, w.InvestorID, w.Type, w.Amount, w.ApprovedAmount,
		w.MomoNumber, w.MomoName, w.MomoProvider, w.Status,
		w.AdminReceiptURL, w.AdminNotes, w.RejectionReason, w.InvestorFeedback, w.RequestReason,
		w.RequestedAt, w.ProcessedAt, w.InvestorConfirmedAt,
	)
	request, err := pgx.CollectOneRow(rows, rowToWithdrawal)
	if err != nil {
		return request, fmt.Errorf("db error: %w", err)
	}

	return request, nil
}

func (r *WithdrawalRepo) GetWithdrawal(ctx context.Context, id uuid.UUID, forUpdate bool) (models.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	rows, _ := r.DB.Query(ctx, query, id)
	request, err := pgx.CollectOneRow(rows, rowToWithdrawal)

	switch {
	case err == nil:
		return request, nil
	case errors.Is(err, pgx.ErrNoRows):
		return request, apperrors.ErrWithdrawalNotFound
	default:
		return request, fmt.Errorf("db error: %w", err)
	}
}

func (r *WithdrawalRepo) ListWithdrawals(ctx context.Context, investorID uuid.UUID) ([]models.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE investor_id = $1 ORDER BY requested_at DESC, id`

	rows, _ := r.DB.Query(ctx, query, investorID)
	requests, err := pgx.CollectRows(rows, rowToWithdrawal)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return requests, nil
}

func (r *WithdrawalRepo) ListAllWithdrawals(ctx context.Context, status string) ([]models.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests ORDER BY requested_at DESC, id`
	args := []any{}

	if status != "" {
		query = `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE status = $1 ORDER BY requested_at DESC, id`
		args = append(args, status)
	}

	rows, _ := r.DB.Query(ctx, query, args...)
	requests, err := pgx.CollectRows(rows, rowToWithdrawal)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return requests, nil
}

// Momo destination fields are immutable after creation, so the update
// deliberately leaves them out.
const updateWithdrawal = `-- name: UpdateWithdrawal
UPDATE withdrawal_requests
SET approved_amount = $2,
	status = $3,
	admin_receipt_url = $4,
	admin_notes = $5,
	rejection_reason = $6,
	investor_feedback = $7,
	processed_at = $8,
	investor_confirmed_at = $9
WHERE id = $1
RETURNING ` + withdrawalColumns

func (r *WithdrawalRepo) UpdateWithdrawal(ctx context.Context, w models.WithdrawalRequest) (models.WithdrawalRequest, error) {
	rows, _ := r.DB.Query(ctx, updateWithdrawal,
		w.ID, w.ApprovedAmount, w.Status,
		w.AdminReceiptURL, w.AdminNotes, w.RejectionReason, w.InvestorFeedback,
		w.ProcessedAt, w.InvestorConfirmedAt,
	)
	request, err := pgx.CollectOneRow(rows, rowToWithdrawal)

	switch {
	case err == nil:
		return request, nil
	case errors.Is(err, pgx.ErrNoRows):
		return request, apperrors.ErrWithdrawalNotFound
	default:
		return request, fmt.Errorf("db error: %w", err)
	}
}

func rowToWithdrawal(row pgx.CollectableRow) (models.WithdrawalRequest, error) {
	var w models.WithdrawalRequest
	err := row.Scan(
		&w.ID, &w.RequestNumber, &w.InvestorID, &w.Type, &w.Amount, &w.ApprovedAmount,
		&w.MomoNumber, &w.MomoName, &w.MomoProvider, &w.Status,
		&w.AdminReceiptURL, &w.AdminNotes, &w.RejectionReason, &w.InvestorFeedback, &w.RequestReason,
		&w.RequestedAt, &w.ProcessedAt, &w.InvestorConfirmedAt,
	)
	return w, err
}
