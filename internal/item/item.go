package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type distinguishes physical goods from services.
type Type string

const (
	TypeService Type = "SERVICE"
	TypeGoods   Type = "GOODS"
)

// Item is a sellable product or service in an organization's catalog.
type Item struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	TaxID          *uuid.UUID
	Type           Type
	Name           string
	Description    string
	SKU            string
	Unit           string
	Rate           decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
