package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleInvestor = "investor"
	RoleAdmin    = "admin"
)

type Investor struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Username       string
	HashedPassword string
	Role           string
}
