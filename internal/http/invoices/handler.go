package invoices

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/http/request"
	"github.com/quillbooks/quillbooks/internal/http/respond"
	"github.com/quillbooks/quillbooks/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/send", h.send)
	r.Post("/{id}/void", h.void)
}

type lineItemRequest struct {
	ItemID      *uuid.UUID      `json:"item_id"`
	TaxID       *uuid.UUID      `json:"tax_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

type createInvoiceRequest struct {
	CustomerID    uuid.UUID         `json:"customer_id"`
	InvoiceDate   time.Time         `json:"invoice_date"`
	DueDate       time.Time         `json:"due_date"`
	Items         []lineItemRequest `json:"items"`
	Notes         string            `json:"notes"`
	InternalNotes string            `json:"internal_notes"`
	Terms         string            `json:"terms"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	items := make([]invoice.LineItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = invoice.LineItemParams{
			ItemID:      it.ItemID,
			TaxID:       it.TaxID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		}
	}

	inv, err := h.svc.Create(r.Context(), id.Organization.ID, id.User.ID, invoice.CreateParams{
		CustomerID:    req.CustomerID,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		Items:         items,
		Notes:         req.Notes,
		InternalNotes: req.InternalNotes,
		Terms:         req.Terms,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(inv))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	invoiceID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	inv, err := h.svc.Get(r.Context(), id.Organization.ID, invoiceID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	invoiceID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id.Organization.ID, invoiceID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	invoiceID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	inv, err := h.svc.Send(r.Context(), id.Organization.ID, invoiceID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inv))
}

type voidInvoiceRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	invoiceID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req voidInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	inv, err := h.svc.Void(r.Context(), id.Organization.ID, invoiceID, req.Reason)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	filter := invoice.ListFilter{CustomerID: request.UUID(r, "customer_id")}
	filter.Skip, filter.Limit = request.Pagination(r)

	if s := r.URL.Query().Get("status"); s != "" {
		status := invoice.Status(s)
		filter.Status = &status
	}

	invoices, total, err := h.svc.List(r.Context(), id.Organization.ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = toResponse(inv)
	}

	respond.JSON(w, r, http.StatusOK, respond.Page{
		Items: items,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	})
}

type lineItemResponse struct {
	ItemID      *uuid.UUID      `json:"item_id,omitempty"`
	TaxID       *uuid.UUID      `json:"tax_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
	SortOrder   int             `json:"sort_order"`
}

type invoiceResponse struct {
	ID               uuid.UUID          `json:"id"`
	CustomerID       uuid.UUID          `json:"customer_id"`
	InvoiceNumber    string             `json:"invoice_number"`
	Status           invoice.Status     `json:"status"`
	InvoiceDate      time.Time          `json:"invoice_date"`
	DueDate          time.Time          `json:"due_date"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	TaxTotal         decimal.Decimal    `json:"tax_total"`
	Total            decimal.Decimal    `json:"total"`
	AmountPaid       decimal.Decimal    `json:"amount_paid"`
	BalanceDue       decimal.Decimal    `json:"balance_due"`
	CurrencyCode     string             `json:"currency_code"`
	PaymentTermsDays int                `json:"payment_terms_days"`
	Notes            string             `json:"notes,omitempty"`
	InternalNotes    string             `json:"internal_notes,omitempty"`
	Terms            string             `json:"terms,omitempty"`
	SentAt           *time.Time         `json:"sent_at,omitempty"`
	ViewedAt         *time.Time         `json:"viewed_at,omitempty"`
	PaidAt           *time.Time         `json:"paid_at,omitempty"`
	VoidedAt         *time.Time         `json:"voided_at,omitempty"`
	VoidReason       string             `json:"void_reason,omitempty"`
	Items            []lineItemResponse `json:"items"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := make([]lineItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = lineItemResponse{
			ItemID:      it.ItemID,
			TaxID:       it.TaxID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
			TaxRate:     it.TaxRate,
			TaxAmount:   it.TaxAmount,
			Total:       it.Total,
			SortOrder:   it.SortOrder,
		}
	}

	return invoiceResponse{
		ID:               inv.ID,
		CustomerID:       inv.CustomerID,
		InvoiceNumber:    inv.InvoiceNumber,
		Status:           inv.EffectiveStatus(time.Now().UTC().Truncate(24 * time.Hour)),
		InvoiceDate:      inv.InvoiceDate,
		DueDate:          inv.DueDate,
		Subtotal:         inv.Subtotal,
		TaxTotal:         inv.TaxTotal,
		Total:            inv.Total,
		AmountPaid:       inv.AmountPaid,
		BalanceDue:       inv.BalanceDue,
		CurrencyCode:     inv.CurrencyCode,
		PaymentTermsDays: inv.PaymentTermsDays,
		Notes:            inv.Notes,
		InternalNotes:    inv.InternalNotes,
		Terms:            inv.Terms,
		SentAt:           inv.SentAt,
		ViewedAt:         inv.ViewedAt,
		PaidAt:           inv.PaidAt,
		VoidedAt:         inv.VoidedAt,
		VoidReason:       inv.VoidReason,
		Items:            items,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}
