package tax

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type tags a tax rate with its statutory category.
type Type string

const (
	TypeGST  Type = "GST"
	TypeIGST Type = "IGST"
	TypeCGST Type = "CGST"
	TypeSGST Type = "SGST"
	TypeCESS Type = "CESS"
	TypeNone Type = "NONE"
)

// Tax is a named percentage rate, unique by name per organization.
type Tax struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Rate           decimal.Decimal
	Type           Type
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
