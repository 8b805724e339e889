package reports

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/http/request"
	"github.com/quillbooks/quillbooks/internal/http/respond"
	"github.com/quillbooks/quillbooks/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/sales-summary", h.salesSummary)
	r.Get("/ar-aging", h.arAging)
	r.Get("/customer-balances", h.customerBalances)
	r.Get("/payment-summary", h.paymentSummary)
	r.Get("/expense-summary", h.expenseSummary)
	r.Get("/top-customers", h.topCustomers)
}

func dateRange(r *http.Request) report.DateRange {
	return report.DateRange{
		Start: request.Date(r, "start_date"),
		End:   request.Date(r, "end_date"),
	}
}

type salesSummaryResponse struct {
	TotalInvoices    int             `json:"total_invoices"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

func (h *Handler) salesSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.SalesSummary(r.Context(), id.Organization.ID, dateRange(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, salesSummaryResponse{
		TotalInvoices:    summary.TotalInvoices,
		TotalSales:       summary.TotalSales,
		TotalTax:         summary.TotalTax,
		TotalPaid:        summary.TotalPaid,
		TotalOutstanding: summary.TotalOutstanding,
	})
}

type agingBucketResponse struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type arAgingResponse struct {
	Current    agingBucketResponse `json:"current"`
	Days31to60 agingBucketResponse `json:"days_31_60"`
	Days61to90 agingBucketResponse `json:"days_61_90"`
	Over90     agingBucketResponse `json:"over_90"`
	Total      agingBucketResponse `json:"total"`
}

func toBucket(b report.AgingBucket) agingBucketResponse {
	return agingBucketResponse{Count: b.Count, Amount: b.Amount}
}

func (h *Handler) arAging(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	aging, err := h.svc.ARAging(r.Context(), id.Organization.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, arAgingResponse{
		Current:    toBucket(aging.Current),
		Days31to60: toBucket(aging.Days31to60),
		Days61to90: toBucket(aging.Days61to90),
		Over90:     toBucket(aging.Over90),
		Total:      toBucket(aging.Total),
	})
}

type customerBalanceResponse struct {
	CustomerID         uuid.UUID       `json:"customer_id"`
	CustomerName       string          `json:"customer_name"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	UnpaidInvoices     int             `json:"unpaid_invoices"`
}

func (h *Handler) customerBalances(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	balances, err := h.svc.CustomerBalances(r.Context(), id.Organization.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]customerBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = customerBalanceResponse{
			CustomerID:         b.CustomerID,
			CustomerName:       b.CustomerName,
			OutstandingBalance: b.OutstandingBalance,
			UnpaidInvoices:     b.UnpaidInvoices,
		}
	}

	respond.JSON(w, r, http.StatusOK, resp)
}

type methodTotalResponse struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type paymentSummaryResponse struct {
	TotalPayments int                   `json:"total_payments"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	ByMethod      []methodTotalResponse `json:"by_method"`
}

func (h *Handler) paymentSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.PaymentSummary(r.Context(), id.Organization.ID, dateRange(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	byMethod := make([]methodTotalResponse, len(summary.ByMethod))
	for i, m := range summary.ByMethod {
		byMethod[i] = methodTotalResponse{Method: m.Method, Count: m.Count, Amount: m.Amount}
	}

	respond.JSON(w, r, http.StatusOK, paymentSummaryResponse{
		TotalPayments: summary.TotalPayments,
		TotalAmount:   summary.TotalAmount,
		ByMethod:      byMethod,
	})
}

type categoryTotalResponse struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

type expenseSummaryResponse struct {
	TotalExpenses int                     `json:"total_expenses"`
	TotalAmount   decimal.Decimal         `json:"total_amount"`
	TotalTax      decimal.Decimal         `json:"total_tax"`
	ByCategory    []categoryTotalResponse `json:"by_category"`
}

func (h *Handler) expenseSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.ExpenseSummary(r.Context(), id.Organization.ID, dateRange(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	byCategory := make([]categoryTotalResponse, len(summary.ByCategory))
	for i, c := range summary.ByCategory {
		byCategory[i] = categoryTotalResponse{Category: c.Category, Count: c.Count, Amount: c.Amount}
	}

	respond.JSON(w, r, http.StatusOK, expenseSummaryResponse{
		TotalExpenses: summary.TotalExpenses,
		TotalAmount:   summary.TotalAmount,
		TotalTax:      summary.TotalTax,
		ByCategory:    byCategory,
	})
}

type customerSalesResponse struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	InvoiceCount int             `json:"invoice_count"`
	TotalSales   decimal.Decimal `json:"total_sales"`
}

func (h *Handler) topCustomers(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	sales, err := h.svc.TopCustomers(r.Context(), id.Organization.ID, dateRange(r), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]customerSalesResponse, len(sales))
	for i, cs := range sales {
		resp[i] = customerSalesResponse{
			CustomerID:   cs.CustomerID,
			CustomerName: cs.CustomerName,
			InvoiceCount: cs.InvoiceCount,
			TotalSales:   cs.TotalSales,
		}
	}

	respond.JSON(w, r, http.StatusOK, resp)
}
