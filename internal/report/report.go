// Package report computes read-only aggregations over invoices, payments and
// expenses. Reports never mutate anything; a figure that does not reconcile
// here points at a bug in the document engines, not in the report.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange bounds a report by document date. Nil ends are unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type SalesSummary struct {
	TotalInvoices    int
	TotalSales       decimal.Decimal
	TotalTax         decimal.Decimal
	TotalPaid        decimal.Decimal
	TotalOutstanding decimal.Decimal
}

// OpenInvoice is the slice of invoice data aging needs.
type OpenInvoice struct {
	DueDate    time.Time
	BalanceDue decimal.Decimal
}

type AgingBucket struct {
	Count  int
	Amount decimal.Decimal
}

// Aging buckets outstanding balances by days past due.
type Aging struct {
	Current    AgingBucket // due within the last 30 days or not yet due
	Days31to60 AgingBucket
	Days61to90 AgingBucket
	Over90     AgingBucket
	Total      AgingBucket
}

type CustomerBalance struct {
	CustomerID         uuid.UUID
	CustomerName       string
	OutstandingBalance decimal.Decimal
	UnpaidInvoices     int
}

type MethodTotal struct {
	Method string
	Count  int
	Amount decimal.Decimal
}

type PaymentSummary struct {
	TotalPayments int
	TotalAmount   decimal.Decimal
	ByMethod      []MethodTotal
}

type CategoryTotal struct {
	Category string
	Count    int
	Amount   decimal.Decimal
}

type ExpenseSummary struct {
	TotalExpenses int
	TotalAmount   decimal.Decimal
	TotalTax      decimal.Decimal
	ByCategory    []CategoryTotal
}

type CustomerSales struct {
	CustomerID   uuid.UUID
	CustomerName string
	InvoiceCount int
	TotalSales   decimal.Decimal
}

// bucketAging distributes open invoice balances into aging buckets by the
// number of days between due date and today. Invoices not yet due count as
// current.
func bucketAging(invoices []OpenInvoice, today time.Time) *Aging {
	aging := &Aging{
		Current:    AgingBucket{Amount: decimal.Zero},
		Days31to60: AgingBucket{Amount: decimal.Zero},
		Days61to90: AgingBucket{Amount: decimal.Zero},
		Over90:     AgingBucket{Amount: decimal.Zero},
		Total:      AgingBucket{Amount: decimal.Zero},
	}

	for _, inv := range invoices {
		daysOverdue := int(today.Sub(inv.DueDate).Hours() / 24)

		aging.Total.Count++
		aging.Total.Amount = aging.Total.Amount.Add(inv.BalanceDue)

		var bucket *AgingBucket
		switch {
		case daysOverdue <= 30:
			bucket = &aging.Current
		case daysOverdue <= 60:
			bucket = &aging.Days31to60
		case daysOverdue <= 90:
			bucket = &aging.Days61to90
		default:
			bucket = &aging.Over90
		}

		bucket.Count++
		bucket.Amount = bucket.Amount.Add(inv.BalanceDue)
	}

	return aging
}
