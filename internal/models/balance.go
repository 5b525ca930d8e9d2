package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Balance struct {
	ID         uuid.UUID
	InvestorID uuid.UUID

	Cash           decimal.Decimal
	Profit         decimal.Decimal
	Product        decimal.Decimal
	EquipmentShare decimal.Decimal
}

// Bucket returns the balance debited by a withdrawal of the given type.
func (b Balance) Bucket(withdrawalType string) decimal.Decimal {
	switch withdrawalType {
	case WithdrawalTypeProfit:
		return b.Profit
	case WithdrawalTypeProduct:
		return b.Product
	case WithdrawalTypeEquipmentShare:
		return b.EquipmentShare
	default:
		return b.Cash
	}
}
