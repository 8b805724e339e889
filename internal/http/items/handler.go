package items

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/http/request"
	"github.com/quillbooks/quillbooks/internal/http/respond"
	"github.com/quillbooks/quillbooks/internal/item"
)

type Handler struct {
	svc *item.Service
}

func NewHandler(svc *item.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createItemRequest struct {
	Type        item.Type       `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	TaxID       *uuid.UUID      `json:"tax_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	it, err := h.svc.Create(r.Context(), id.Organization.ID, item.CreateParams{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Unit:        req.Unit,
		Rate:        req.Rate,
		TaxID:       req.TaxID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(it))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	itemID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	it, err := h.svc.Get(r.Context(), id.Organization.ID, itemID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(it))
}

type updateItemRequest struct {
	Type        *item.Type       `json:"type"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	Unit        *string          `json:"unit"`
	Rate        *decimal.Decimal `json:"rate"`
	TaxID       *uuid.UUID       `json:"tax_id"`
	IsActive    *bool            `json:"is_active"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	itemID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	it, err := h.svc.Update(r.Context(), id.Organization.ID, itemID, item.UpdateParams{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Unit:        req.Unit,
		Rate:        req.Rate,
		TaxID:       req.TaxID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(it))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	itemID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id.Organization.ID, itemID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	filter := item.ListFilter{Search: r.URL.Query().Get("search")}
	filter.Skip, filter.Limit = request.Pagination(r)

	if s := r.URL.Query().Get("type"); s != "" {
		typ := item.Type(s)
		filter.Type = &typ
	}

	filter.IsActive = request.Bool(r, "is_active")

	items, total, err := h.svc.List(r.Context(), id.Organization.ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = toResponse(it)
	}

	respond.JSON(w, r, http.StatusOK, respond.Page{
		Items: resp,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	})
}

type itemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        item.Type       `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	TaxID       *uuid.UUID      `json:"tax_id,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(it *item.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Type:        it.Type,
		Name:        it.Name,
		Description: it.Description,
		SKU:         it.SKU,
		Unit:        it.Unit,
		Rate:        it.Rate,
		TaxID:       it.TaxID,
		IsActive:    it.IsActive,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
