package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type distinguishes business customers from individuals.
type Type string

const (
	TypeBusiness   Type = "BUSINESS"
	TypeIndividual Type = "INDIVIDUAL"
)

// Address is a postal address block, used for both billing and shipping.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Customer is a buyer belonging to one organization.
type Customer struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	Type             Type
	Name             string
	Email            string
	Phone            string
	BillingAddress   Address
	ShippingAddress  Address
	TaxID            string
	CurrencyCode     string
	PaymentTermsDays int
	CreditLimit      *decimal.Decimal
	Notes            string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
