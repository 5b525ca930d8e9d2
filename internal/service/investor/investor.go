// Package investor holds investor account operations that don't belong
// to a money-movement flow.
package investor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/repository"
)

type Service struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *Service {
	return &Service{storage: storage}
}

// GetBalance returns the investor's balance split by bucket.
func (s *Service) GetBalance(ctx context.Context, investorID uuid.UUID) (models.Balance, error) {
	balance, err := s.storage.Balances().GetBalance(ctx, investorID, false)
	if err != nil {
		return models.Balance{}, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}
