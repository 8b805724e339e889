// Package catalog resolves customer, item and tax references while quote and
// invoice line items are materialized. Lookups return only active,
// non-deleted entities scoped to the caller's organization.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the subset of customer data document creation needs.
type Customer struct {
	ID               uuid.UUID
	Name             string
	Email            string
	CurrencyCode     string
	PaymentTermsDays int
}

// Item is a catalog product or service reference.
type Item struct {
	ID          uuid.UUID
	Name        string
	Description string
	Rate        decimal.Decimal
	TaxID       *uuid.UUID
}

// Tax is a named tax rate reference.
type Tax struct {
	ID   uuid.UUID
	Name string
	Rate decimal.Decimal
}

//go:generate mockgen -source=catalog.go -destination=reader_mock.go -package=catalog
type Reader interface {
	Customer(ctx context.Context, orgID, id uuid.UUID) (*Customer, error)
	Item(ctx context.Context, orgID, id uuid.UUID) (*Item, error)
	Tax(ctx context.Context, orgID, id uuid.UUID) (*Tax, error)
}
