package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/models"
)

type InvestorRepo struct {
	DB DBTX
}

const createInvestor = `-- name: CreateInvestor
INSERT INTO investors (id, created_at, username, hashed_password, role)
VALUES ($1, now(), $2, $3, $4)
RETURNING id, created_at, username, hashed_password, role
`

func (r *InvestorRepo) CreateInvestor(ctx context.Context, username string, hashedPassword string, role string) (models.Investor, error) {
	rows, _ := r.DB.Query(ctx, createInvestor, uuid.New(), username, hashedPassword, role)
	investor, err := pgx.CollectOneRow(rows, rowToInvestor)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return investor, apperrors.ErrInvestorAlreadyExists
		}
		return investor, fmt.Errorf("db error: %w", err)
	}

	return investor, nil
}

const getInvestorByID = `-- name: GetInvestorByID
SELECT id, created_at, username, hashed_password, role FROM investors
WHERE id = $1
`

func (r *InvestorRepo) GetInvestorByID(ctx context.Context, id uuid.UUID) (models.Investor, error) {
	rows, _ := r.DB.Query(ctx, getInvestorByID, id)
	investor, err := pgx.CollectOneRow(rows, rowToInvestor)

	switch {
	case err == nil:
		return investor, nil
	case errors.Is(err, pgx.ErrNoRows):
		return investor, apperrors.ErrInvestorNotFound
	default:
		return investor, fmt.Errorf("db error: %w", err)
	}
}

const getInvestorByUsername = `-- name: GetInvestorByUsername
SELECT id, created_at, username, hashed_password, role FROM investors
WHERE username = $1
`

func (r *InvestorRepo) GetInvestorByUsername(ctx context.Context, username string) (models.Investor, error) {
	rows, _ := r.DB.Query(ctx, getInvestorByUsername, username)
	investor, err := pgx.CollectOneRow(rows, rowToInvestor)

	switch {
	case err == nil:
		return investor, nil
	case errors.Is(err, pgx.ErrNoRows):
		return investor, apperrors.ErrInvestorNotFound
	default:
		return investor, fmt.Errorf("db error: %w", err)
	}
}

func rowToInvestor(row pgx.CollectableRow) (models.Investor, error) {
	var i models.Investor
	err := row.Scan(&i.ID, &i.CreatedAt, &i.Username, &i.HashedPassword, &i.Role)
	return i, err
}
