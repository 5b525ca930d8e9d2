package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/models"
)

type BalanceRepo struct {
	DB DBTX
}

// bucketColumn whitelists bucket names so they can be spliced into SQL
func bucketColumn(bucket string) (string, error) {
	switch bucket {
	case models.WithdrawalTypeCash:
		return "cash", nil
	case models.WithdrawalTypeProfit:
		return "profit", nil
	case models.WithdrawalTypeProduct:
		return "product", nil
	case models.WithdrawalTypeEquipmentShare:
		return "equipment_share", nil
	default:
		return "", fmt.Errorf("unknown balance bucket: %q", bucket)
	}
}

func (r *BalanceRepo) CreateBalance(ctx context.Context, investorID uuid.UUID) error {
	const createBalance = `
	INSERT INTO balances (id, investor_id, cash, profit, product, equipment_share)
	VALUES ($1, $2, 0, 0, 0, 0)
	`

	_, err := r.DB.Exec(ctx, createBalance, uuid.New(), investorID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("investor balance already exists: %w", err)
		}

		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *BalanceRepo) GetBalance(ctx context.Context, investorID uuid.UUID, forUpdate bool) (models.Balance, error) {
	query := `
	SELECT id, investor_id, cash, profit, product, equipment_share FROM balances
	WHERE investor_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	rows, _ := r.DB.Query(ctx, query, investorID)
	balance, err := pgx.CollectOneRow(rows, rowToBalance)

	switch {
	case err == nil:
		return balance, nil
	case errors.Is(err, pgx.ErrNoRows):
		return balance, apperrors.ErrInvestorNotFound
	default:
		return balance, fmt.Errorf("db error: %w", err)
	}
}

func (r *BalanceRepo) AddToBucket(ctx context.Context, investorID uuid.UUID, bucket string, delta decimal.Decimal) (models.Balance, error) {
	var balance models.Balance

	column, err := bucketColumn(bucket)
	if err != nil {
		return balance, err
	}

	query := fmt.Sprintf(`
	UPDATE balances
	SET %s = %s + $2
	WHERE investor_id = $1
	RETURNING id, investor_id, cash, profit, product, equipment_share
	`, column, column)

	rows, _ := r.DB.Query(ctx, query, investorID, delta)
	balance, err = pgx.CollectOneRow(rows, rowToBalance)

	switch {
	case err == nil:
		return balance, nil
	case errors.Is(err, pgx.ErrNoRows):
		return balance, apperrors.ErrInvestorNotFound
	default:
		return balance, fmt.Errorf("db error: %w", err)
	}
}

func rowToBalance(row pgx.CollectableRow) (models.Balance, error) {
	var b models.Balance
	err := row.Scan(&b.ID, &b.InvestorID, &b.Cash, &b.Profit, &b.Product, &b.EquipmentShare)
	return b, err
}
