// Package withdrawal runs the platform->investor money movement: request,
// admin approval and payout, and the investor confirmation that debits the
// typed balance bucket.
package withdrawal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/flow"
	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/repository"
)

type Service struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *Service {
	return &Service{storage: storage}
}

type CreateParams struct {
	Type          string
	Amount        decimal.Decimal
	MomoNumber    string
	MomoName      string
	MomoProvider  string
	RequestReason string
}

// Create opens a request in pending. The requested amount must fit inside
// the typed bucket at request time; admin re-checks at approval anyway.
// Momo destination details are immutable once stored.
func (s *Service) Create(ctx context.Context, investorID uuid.UUID, p CreateParams) (models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest

	switch p.Type {
	case models.WithdrawalTypeCash, models.WithdrawalTypeProfit,
		models.WithdrawalTypeProduct, models.WithdrawalTypeEquipmentShare:
	default:
		return request, apperrors.ErrWithdrawalTypeInvalid
	}

	if !p.Amount.IsPositive() {
		return request, apperrors.ErrAmountNotPositive
	}

	if p.MomoNumber == "" || p.MomoName == "" || p.MomoProvider == "" {
		return request, fmt.Errorf("momo destination details are required")
	}

	err := s.storage.InTx(ctx, func(storage repository.Storage) error {
		balance, err := storage.Balances().GetBalance(ctx, investorID, false)
		if err != nil {
			return err
		}
		if p.Amount.GreaterThan(balance.Bucket(p.Type)) {
			return apperrors.ErrBalanceInsufficient
		}

		request, err = storage.Withdrawals().CreateWithdrawal(ctx, models.WithdrawalRequest{
			InvestorID:    investorID,
			Type:          p.Type,
			Amount:        p.Amount,
			MomoNumber:    p.MomoNumber,
			MomoName:      p.MomoName,
			MomoProvider:  p.MomoProvider,
			Status:        models.WithdrawalPending,
			RequestReason: p.RequestReason,
		})
		return err
	})
	if err != nil {
		return request, err
	}

	return request, nil
}

func (s *Service) List(ctx context.Context, investorID uuid.UUID) ([]models.WithdrawalRequest, error) {
	return s.storage.Withdrawals().ListWithdrawals(ctx, investorID)
}

// ListAll is the admin listing, optionally filtered by status.
func (s *Service) ListAll(ctx context.Context, status string) ([]models.WithdrawalRequest, error) {
	if status != "" {
		status = flow.Withdrawals.Canonical(status)
	}
	return s.storage.Withdrawals().ListAllWithdrawals(ctx, status)
}

// Approve fixes the authoritative amount. A zero approvedAmount means the
// requested amount stands; whatever is approved must fit inside the typed
// bucket snapshot at this moment. A retried approve on an already approved
// request returns it unchanged, the first approval stays authoritative.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, approvedAmount decimal.Decimal, adminNotes string) (models.WithdrawalRequest, error) {
	if approvedAmount.IsNegative() {
		return models.WithdrawalRequest{}, apperrors.ErrAmountNotPositive
	}

	return s.transition(ctx, id, flow.ActionApprove, flow.ActorAdmin, nil, func(storage repository.Storage, w *models.WithdrawalRequest) error {
		amount := approvedAmount
		if amount.IsZero() {
			amount = w.Amount
		}

		balance, err := storage.Balances().GetBalance(ctx, w.InvestorID, false)
		if err != nil {
			return err
		}
		if amount.GreaterThan(balance.Bucket(w.Type)) {
			return apperrors.ErrBalanceInsufficient
		}

		w.ApprovedAmount = &amount
		if adminNotes != "" {
			w.AdminNotes = adminNotes
		}
		setOnce(&w.ProcessedAt)
		return nil
	}, nil)
}

// Reject closes the request before any money moved. A reason is mandatory.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) (models.WithdrawalRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return models.WithdrawalRequest{}, apperrors.ErrReasonRequired
	}

	return s.transition(ctx, id, flow.ActionReject, flow.ActorAdmin, nil, func(_ repository.Storage, w *models.WithdrawalRequest) error {
		w.RejectionReason = reason
		setOnce(&w.ProcessedAt)
		return nil
	}, nil)
}

// MarkSent records the admin's proof the mobile money went out and hands
// the request to the investor for confirmation.
func (s *Service) MarkSent(ctx context.Context, id uuid.UUID, receiptURL string) (models.WithdrawalRequest, error) {
	if strings.TrimSpace(receiptURL) == "" {
		return models.WithdrawalRequest{}, apperrors.ErrReceiptURLRequired
	}

	return s.transition(ctx, id, flow.ActionMarkSent, flow.ActorAdmin, nil, func(_ repository.Storage, w *models.WithdrawalRequest) error {
		w.AdminReceiptURL = receiptURL
		return nil
	}, nil)
}

// Confirm is the investor acknowledging receipt. The typed bucket is
// debited with the authoritative amount exactly once; a retried confirm on
// a settled request is a no-op returning the current row.
func (s *Service) Confirm(ctx context.Context, investorID uuid.UUID, id uuid.UUID) (models.WithdrawalRequest, error) {
	return s.transition(ctx, id, flow.ActionConfirm, flow.ActorInvestor, &investorID, func(_ repository.Storage, w *models.WithdrawalRequest) error {
		setOnce(&w.InvestorConfirmedAt)
		return nil
	}, s.debit)
}

// Dispute rejects the asserted payout; feedback is mandatory and nothing
// transitions without it.
func (s *Service) Dispute(ctx context.Context, investorID uuid.UUID, id uuid.UUID, feedback string) (models.WithdrawalRequest, error) {
	if strings.TrimSpace(feedback) == "" {
		return models.WithdrawalRequest{}, apperrors.ErrFeedbackRequired
	}

	return s.transition(ctx, id, flow.ActionDispute, flow.ActorInvestor, &investorID, func(_ repository.Storage, w *models.WithdrawalRequest) error {
		w.InvestorFeedback = feedback
		return nil
	}, nil)
}

// Resolve answers a dispute; the request re-enters the confirmation step
// with amounts untouched.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, adminNotes string) (models.WithdrawalRequest, error) {
	return s.transition(ctx, id, flow.ActionResolve, flow.ActorAdmin, nil, func(_ repository.Storage, w *models.WithdrawalRequest) error {
		if adminNotes != "" {
			w.AdminNotes = adminNotes
		}
		return nil
	}, nil)
}

// Cancel by the investor; the machine only allows it while pending.
func (s *Service) Cancel(ctx context.Context, investorID uuid.UUID, id uuid.UUID) (models.WithdrawalRequest, error) {
	return s.transition(ctx, id, flow.ActionCancel, flow.ActorInvestor, &investorID, nil, nil)
}

// debit applies the authoritative amount against the typed bucket inside
// the confirming transaction.
func (s *Service) debit(ctx context.Context, storage repository.Storage, w models.WithdrawalRequest) error {
	amount := w.DebitAmount()

	balance, err := storage.Balances().GetBalance(ctx, w.InvestorID, true)
	if err != nil {
		return err
	}
	if amount.GreaterThan(balance.Bucket(w.Type)) {
		return apperrors.ErrBalanceInsufficient
	}

	_, err = storage.Balances().AddToBucket(ctx, w.InvestorID, w.Type, amount.Neg())
	return err
}

func (s *Service) transition(
	ctx context.Context,
	id uuid.UUID,
	action flow.Action,
	actor flow.Actor,
	ownerID *uuid.UUID,
	mutate func(repository.Storage, *models.WithdrawalRequest) error,
	sideEffect func(context.Context, repository.Storage, models.WithdrawalRequest) error,
) (models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest

	err := s.storage.InTx(ctx, func(storage repository.Storage) error {
		w, err := storage.Withdrawals().GetWithdrawal(ctx, id, true)
		if err != nil {
			return err
		}
		if ownerID != nil && w.InvestorID != *ownerID {
			return apperrors.ErrWithdrawalNotFound
		}

		status := flow.Withdrawals.Canonical(w.Status)

		next, err := flow.Withdrawals.Next(status, action, actor)
		if err != nil {
			// Mobile clients retry commands on timeout. A command whose
			// outcome already stands reports the current row, not a conflict
			if flow.Withdrawals.Reached(status, action, actor) {
				request = w
				return nil
			}
			return err
		}

		if mutate != nil {
			if err := mutate(storage, &w); err != nil {
				return err
			}
		}
		w.Status = next

		w, err = storage.Withdrawals().UpdateWithdrawal(ctx, w)
		if err != nil {
			return err
		}

		if sideEffect != nil && next == models.WithdrawalConfirmed && status != models.WithdrawalConfirmed {
			if err := sideEffect(ctx, storage, w); err != nil {
				return err
			}
		}

		request = w
		return nil
	})
	if err != nil {
		return request, err
	}

	return request, nil
}

func setOnce(at **time.Time) {
	if *at == nil {
		now := time.Now()
		*at = &now
	}
}
