// Package expense tracks business costs: vendor bills, travel, supplies.
// Expenses sit outside the invoice lifecycle but feed the same reporting
// views, and a billable expense links to the customer it will be passed on
// to.
package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method is how an expense was paid.
type Method string

const (
	MethodCash         Method = "CASH"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCreditCard   Method = "CREDIT_CARD"
	MethodDebitCard    Method = "DEBIT_CARD"
	MethodCheque       Method = "CHEQUE"
	MethodUPI          Method = "UPI"
	MethodOnline       Method = "ONLINE"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCreditCard, MethodDebitCard,
		MethodCheque, MethodUPI, MethodOnline:
		return true
	}

	return false
}

type Expense struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	CustomerID     *uuid.UUID
	CreatedBy      *uuid.UUID

	ExpenseNumber string
	VendorName    string
	ExpenseDate   time.Time
	Category      string

	Amount    decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal

	Method          Method
	ReferenceNumber string
	Description     string
	ReceiptURL      string

	IsBillable bool
	IsDeleted  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
