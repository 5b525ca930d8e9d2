// Package deposit runs the investor->platform money movement: creation,
// receipt upload, admin verification with charges, and the final
// confirmation that credits the investor's cash balance.
package deposit

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

// Configured floor for a single deposit, in whole FCFA
var defaultMinimumDeposit = decimal.NewFromInt(1000)

type Config struct {
	// Minimum accepted gross amount; defaults to 1000 if zero
	MinimumDeposit decimal.Decimal
}

type Service struct {
	minimum decimal.Decimal
	storage repository.Storage
}

func NewService(cfg Config, storage repository.Storage) *Service {
	minimum := cfg.MinimumDeposit
	if minimum.IsZero() {
		minimum = defaultMinimumDeposit
	}

	return &Service{
		minimum: minimum,
		storage: storage,
	}
}

type CreateParams struct {
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
}

// Create opens a deposit in awaiting_payment. The stated amount is gross;
// net equals gross until admin verification sets charges.
func (s *Service) Create(ctx context.Context, investorID uuid.UUID, p CreateParams) (models.Deposit, error) {
	var deposit models.Deposit

	switch p.PaymentMethod {
	case models.PaymentMethodCash, models.PaymentMethodMobileMoney:
	default:
		return deposit, apperrors.ErrPaymentMethodInvalid
	}

	// FCFA has no subdivision
	amount := p.Amount.Round(0)

	if !amount.IsPositive() {
		return deposit, apperrors.ErrAmountNotPositive
	}
	if amount.LessThan(s.minimum) {
		return deposit, apperrors.ErrAmountBelowMinimum
	}

	deposit, err := s.storage.Deposits().CreateDeposit(ctx, models.Deposit{
		InvestorID:         investorID,
		GrossAmount:        amount,
		Charges:            decimal.Zero,
		Amount:             amount,
		PaymentMethod:      p.PaymentMethod,
		ConfirmationStatus: models.DepositAwaitingPayment,
		Notes:              p.Notes,
	})
	if err != nil {
		return deposit, fmt.Errorf("can't create deposit. Err: %w", err)
	}

	return deposit, nil
}

func (s *Service) List(ctx context.Context, investorID uuid.UUID) ([]models.Deposit, error) {
	return s.storage.Deposits().ListDeposits(ctx, investorID)
}

// ListAll is the admin listing, optionally filtered by status.
// Legacy status spellings in the filter are folded to the canonical set.
func (s *Service) ListAll(ctx context.Context, status string) ([]models.Deposit, error) {
	if status != "" {
		status = flow.Deposits.Canonical(status)
	}
	return s.storage.Deposits().ListAllDeposits(ctx, status)
}

// UploadReceipt records the investor's proof of sending mobile money.
// The receipt is written exactly once; depositedAt is stamped with it.
func (s *Service) UploadReceipt(ctx context.Context, investorID uuid.UUID, id uuid.UUID, receiptURL string) (models.Deposit, error) {
	if strings.TrimSpace(receiptURL) == "" {
		return models.Deposit{}, apperrors.ErrReceiptURLRequired
	}

	return s.transition(ctx, id, flow.ActionUploadReceipt, flow.ActorInvestor, &investorID, func(d *models.Deposit) error {
		if d.PaymentMethod != models.PaymentMethodMobileMoney {
			return apperrors.ErrReceiptNotExpected
		}
		if d.InvestorReceiptURL != "" {
			// A retry resending the same receipt is a no-op; a different
			// receipt is rejected, the stored one stays authoritative
			if d.InvestorReceiptURL == receiptURL {
				return nil
			}
			return apperrors.ErrReceiptAlreadySet
		}

		d.InvestorReceiptURL = receiptURL
		setOnce(&d.DepositedAt)
		return nil
	}, nil)
}

// ConfirmCash is the admin shortcut for cash handed over in person:
// awaiting_payment -> confirmed in one step, crediting the net amount.
func (s *Service) ConfirmCash(ctx context.Context, id uuid.UUID, notes string) (models.Deposit, error) {
	return s.transition(ctx, id, flow.ActionConfirmCash, flow.ActorAdmin, nil, func(d *models.Deposit) error {
		if d.PaymentMethod != models.PaymentMethodCash {
			return apperrors.ErrTransitionNotAllowed
		}

		if notes != "" {
			d.Notes = notes
		}
		setOnce(&d.DepositedAt)
		setOnce(&d.AdminConfirmedAt)
		return nil
	}, s.credit)
}

// Verify is the admin check of a mobile money deposit: charges are recorded
// and the net amount recomputed. Charges above gross are a validation error,
// not a silent floor at zero.
func (s *Service) Verify(ctx context.Context, id uuid.UUID, charges decimal.Decimal, notes string) (models.Deposit, error) {
	charges = charges.Round(0) // FCFA has no subdivision
	if charges.IsNegative() {
		return models.Deposit{}, apperrors.ErrChargesNegative
	}

	return s.transition(ctx, id, flow.ActionVerify, flow.ActorAdmin, nil, func(d *models.Deposit) error {
		if charges.GreaterThan(d.GrossAmount) {
			return apperrors.ErrChargesExceedGross
		}

		d.Charges = charges
		d.Amount = d.GrossAmount.Sub(charges)
		if notes != "" {
			d.Notes = notes
		}
		setOnce(&d.AdminConfirmedAt)
		return nil
	}, nil)
}

// Confirm is the investor accepting the verified net amount. The cash
// balance is credited exactly once: confirming an already confirmed deposit
// is a no-op returning the current row, so mobile retries are safe.
func (s *Service) Confirm(ctx context.Context, investorID uuid.UUID, id uuid.UUID) (models.Deposit, error) {
	return s.transition(ctx, id, flow.ActionConfirm, flow.ActorInvestor, &investorID, nil, s.credit)
}

// Dispute rejects the admin-asserted verification. Feedback is mandatory;
// without it nothing transitions.
func (s *Service) Dispute(ctx context.Context, investorID uuid.UUID, id uuid.UUID, feedback string) (models.Deposit, error) {
	if strings.TrimSpace(feedback) == "" {
		return models.Deposit{}, apperrors.ErrFeedbackRequired
	}

	return s.transition(ctx, id, flow.ActionDispute, flow.ActorInvestor, &investorID, func(d *models.Deposit) error {
		d.DisputeFeedback = feedback
		return nil
	}, nil)
}

// Resolve is the admin answering a dispute; the deposit re-enters
// pending_confirmation for the investor to confirm or dispute again.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID, notes string) (models.Deposit, error) {
	return s.transition(ctx, id, flow.ActionResolve, flow.ActorAdmin, nil, func(d *models.Deposit) error {
		if notes != "" {
			d.Notes = notes
		}
		return nil
	}, nil)
}

// Cancel by the investor; ownership is checked like any investor command.
func (s *Service) Cancel(ctx context.Context, investorID uuid.UUID, id uuid.UUID) (models.Deposit, error) {
	return s.transition(ctx, id, flow.ActionCancel, flow.ActorInvestor, &investorID, nil, nil)
}

// CancelByAdmin cancels on behalf of the platform.
func (s *Service) CancelByAdmin(ctx context.Context, id uuid.UUID) (models.Deposit, error) {
	return s.transition(ctx, id, flow.ActionCancel, flow.ActorAdmin, nil, nil, nil)
}

// credit applies the authoritative net amount to the investor cash balance.
// Runs in the same transaction as the status change.
func (s *Service) credit(ctx context.Context, storage repository.Storage, d models.Deposit) error {
	_, err := storage.Balances().AddToBucket(ctx, d.InvestorID, models.WithdrawalTypeCash, d.Amount)
	return err
}

// transition runs one state machine step in a transaction: lock the row,
// check ownership, consult the machine, let mutate adjust fields, persist,
// and run the side effect. Commands whose target state the row already
// reached return the row unchanged.
func (s *Service) transition(
	ctx context.Context,
	id uuid.UUID,
	action flow.Action,
	actor flow.Actor,
	ownerID *uuid.UUID,
	mutate func(*models.Deposit) error,
	sideEffect func(context.Context, repository.Storage, models.Deposit) error,
) (models.Deposit, error) {
	var deposit models.Deposit

	err := s.storage.InTx(ctx, func(storage repository.Storage) error {
		d, err := storage.Deposits().GetDeposit(ctx, id, true)
		if err != nil {
			return err
		}
		if ownerID != nil && d.InvestorID != *ownerID {
			return apperrors.ErrDepositNotFound
		}

		status := flow.Deposits.Canonical(d.ConfirmationStatus)

		next, err := flow.Deposits.Next(status, action, actor)
		if err != nil {
			// Mobile clients retry commands on timeout. A command whose
			// outcome already stands reports the current row, not a conflict
			if flow.Deposits.Reached(status, action, actor) {
				deposit = d
				return nil
			}
			return err
		}

		if mutate != nil {
			if err := mutate(&d); err != nil {
				return err
			}
		}
		d.ConfirmationStatus = next

		d, err = storage.Deposits().UpdateDeposit(ctx, d)
		if err != nil {
			return err
		}

		if sideEffect != nil && next == models.DepositConfirmed && status != models.DepositConfirmed {
			if err := sideEffect(ctx, storage, d); err != nil {
				return err
			}
		}

		deposit = d
		return nil
	})
	if err != nil {
		return deposit, err
	}

	return deposit, nil
}

func setOnce(at **time.Time) {
	if *at == nil {
		now := time.Now()
		*at = &now
	}
}
