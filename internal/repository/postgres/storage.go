package postgres

import (
	"context"
	"fmt"

	"github.com/ndome/investhub/internal/repository"
)

type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) repository.Storage {
	return &Storage{db: db}
}

func (s *Storage) Investors() repository.InvestorRepo {
	return &InvestorRepo{DB: s.db}
}

func (s *Storage) Balances() repository.BalanceRepo {
	return &BalanceRepo{DB: s.db}
}

func (s *Storage) Deposits() repository.DepositRepo {
	return &DepositRepo{DB: s.db}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepo {
	return &WithdrawalRepo{DB: s.db}
}

func (s *Storage) InTx(ctx context.Context, fn func(repository.Storage) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db tx error: %w", err)
	}

	defer func() {
		switch err {
		case nil:
			err = tx.Commit(ctx)
		default:
			_ = tx.Rollback(ctx)
		}
	}()

	err = fn(NewStorage(tx))

	return err
}
