package quotes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/http/request"
	"github.com/quillbooks/quillbooks/internal/http/respond"
	"github.com/quillbooks/quillbooks/internal/quote"
)

type Handler struct {
	svc *quote.Service
}

func NewHandler(svc *quote.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/send", h.send)
	r.Post("/{id}/accept", h.accept)
	r.Post("/{id}/reject", h.reject)
	r.Post("/{id}/convert", h.convert)
}

type lineItemRequest struct {
	ItemID      *uuid.UUID      `json:"item_id"`
	TaxID       *uuid.UUID      `json:"tax_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

type createQuoteRequest struct {
	CustomerID uuid.UUID         `json:"customer_id"`
	QuoteDate  time.Time         `json:"quote_date"`
	ExpiryDate time.Time         `json:"expiry_date"`
	Items      []lineItemRequest `json:"items"`
	Notes      string            `json:"notes"`
	Terms      string            `json:"terms"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	var req createQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	items := make([]quote.LineItemParams, len(req.Items))
	for i, it := range req.Items {
		items[i] = quote.LineItemParams{
			ItemID:      it.ItemID,
			TaxID:       it.TaxID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		}
	}

	q, err := h.svc.Create(r.Context(), id.Organization.ID, id.User.ID, quote.CreateParams{
		CustomerID: req.CustomerID,
		QuoteDate:  req.QuoteDate,
		ExpiryDate: req.ExpiryDate,
		Items:      items,
		Notes:      req.Notes,
		Terms:      req.Terms,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(q))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	quoteID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	q, err := h.svc.Get(r.Context(), id.Organization.ID, quoteID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(q))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	quoteID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id.Organization.ID, quoteID); err != nil {
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

	quoteID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	q, err := h.svc.Send(r.Context(), id.Organization.ID, quoteID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(q))
}

type acceptQuoteRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	quoteID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req acceptQuoteRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Invalid(w, r, "invalid request body")
			return
		}
	}

	q, err := h.svc.Accept(r.Context(), id.Organization.ID, quoteID, req.Notes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(q))
}

type rejectQuoteRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	quoteID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req rejectQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	q, err := h.svc.Reject(r.Context(), id.Organization.ID, quoteID, req.Reason)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(q))
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	quoteID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	q, err := h.svc.Convert(r.Context(), id.Organization.ID, quoteID, id.User.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(q))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	filter := quote.ListFilter{CustomerID: request.UUID(r, "customer_id")}
	filter.Skip, filter.Limit = request.Pagination(r)

	if s := r.URL.Query().Get("status"); s != "" {
		status := quote.Status(s)
		filter.Status = &status
	}

	quotes, total, err := h.svc.List(r.Context(), id.Organization.ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items := make([]quoteResponse, len(quotes))
	for i, q := range quotes {
		items[i] = toResponse(q)
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

type quoteResponse struct {
	ID                 uuid.UUID          `json:"id"`
	CustomerID         uuid.UUID          `json:"customer_id"`
	QuoteNumber        string             `json:"quote_number"`
	Status             quote.Status       `json:"status"`
	QuoteDate          time.Time          `json:"quote_date"`
	ExpiryDate         time.Time          `json:"expiry_date"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	TaxTotal           decimal.Decimal    `json:"tax_total"`
	Total              decimal.Decimal    `json:"total"`
	CurrencyCode       string             `json:"currency_code"`
	Notes              string             `json:"notes,omitempty"`
	Terms              string             `json:"terms,omitempty"`
	SentAt             *time.Time         `json:"sent_at,omitempty"`
	ViewedAt           *time.Time         `json:"viewed_at,omitempty"`
	AcceptedAt         *time.Time         `json:"accepted_at,omitempty"`
	RejectedAt         *time.Time         `json:"rejected_at,omitempty"`
	ConvertedAt        *time.Time         `json:"converted_at,omitempty"`
	ConvertedInvoiceID *uuid.UUID         `json:"converted_invoice_id,omitempty"`
	Items              []lineItemResponse `json:"items"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(q *quote.Quote) quoteResponse {
	items := make([]lineItemResponse, len(q.Items))
	for i, it := range q.Items {
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

	return quoteResponse{
		ID:                 q.ID,
		CustomerID:         q.CustomerID,
		QuoteNumber:        q.QuoteNumber,
		Status:             q.EffectiveStatus(time.Now().UTC().Truncate(24 * time.Hour)),
		QuoteDate:          q.QuoteDate,
		ExpiryDate:         q.ExpiryDate,
		Subtotal:           q.Subtotal,
		TaxTotal:           q.TaxTotal,
		Total:              q.Total,
		CurrencyCode:       q.CurrencyCode,
		Notes:              q.Notes,
		Terms:              q.Terms,
		SentAt:             q.SentAt,
		ViewedAt:           q.ViewedAt,
		AcceptedAt:         q.AcceptedAt,
		RejectedAt:         q.RejectedAt,
		ConvertedAt:        q.ConvertedAt,
		ConvertedInvoiceID: q.ConvertedInvoiceID,
		Items:              items,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}
