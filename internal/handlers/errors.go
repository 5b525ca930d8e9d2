package handlers

import (
	"errors"
	"net/http"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/handlers/render"
	"github.com/ndome/investhub/internal/logger"
)

// writeCommandError maps service errors onto the HTTP error taxonomy:
// validation 400, conflict 409 (client should refetch and resync), wrong
// role 403, unknown entity 404, insufficient balance 402. Anything else is
// a 500 and gets logged.
func writeCommandError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDepositNotFound),
		errors.Is(err, apperrors.ErrWithdrawalNotFound),
		errors.Is(err, apperrors.ErrInvestorNotFound):
		render.ServiceError(w, "Not found", http.StatusNotFound)

	case errors.Is(err, apperrors.ErrBalanceInsufficient):
		render.ServiceError(w, "Insufficient balance", http.StatusPaymentRequired)

	case errors.Is(err, apperrors.ErrTransitionNotAllowed),
		errors.Is(err, apperrors.ErrUnknownStatus):
		render.ServiceError(w, "Action not allowed in current status", http.StatusConflict)

	case errors.Is(err, apperrors.ErrActorNotAllowed):
		render.ServiceError(w, "Forbidden", http.StatusForbidden)

	case errors.Is(err, apperrors.ErrFeedbackRequired),
		errors.Is(err, apperrors.ErrReasonRequired),
		errors.Is(err, apperrors.ErrReceiptURLRequired),
		errors.Is(err, apperrors.ErrReceiptNotExpected),
		errors.Is(err, apperrors.ErrReceiptAlreadySet),
		errors.Is(err, apperrors.ErrChargesExceedGross),
		errors.Is(err, apperrors.ErrChargesNegative),
		errors.Is(err, apperrors.ErrAmountNotPositive),
		errors.Is(err, apperrors.ErrAmountBelowMinimum),
		errors.Is(err, apperrors.ErrPaymentMethodInvalid),
		errors.Is(err, apperrors.ErrWithdrawalTypeInvalid):
		render.ServiceError(w, err.Error(), http.StatusBadRequest)

	default:
		l.Error("Command failed", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}
