package investorctx

import (
	"context"

	"github.com/ndome/investhub/internal/models"
)

type ctxKey string

const investorKey ctxKey = "investor"

// Create a new context with the investor
func New(ctx context.Context, i models.Investor) context.Context {
	return context.WithValue(ctx, investorKey, i)
}

// Extract the investor from the context
func FromContext(ctx context.Context) (models.Investor, bool) {
	i, ok := ctx.Value(investorKey).(models.Investor)
	return i, ok
}
