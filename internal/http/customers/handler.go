package customers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/customer"
	"github.com/quillbooks/quillbooks/internal/http/request"
	"github.com/quillbooks/quillbooks/internal/http/respond"
)

type Handler struct {
	svc *customer.Service
}

func NewHandler(svc *customer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type addressPayload struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (a addressPayload) toAddress() customer.Address {
	return customer.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

type createCustomerRequest struct {
	Type             customer.Type    `json:"type"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	BillingAddress   addressPayload   `json:"billing_address"`
	ShippingAddress  addressPayload   `json:"shipping_address"`
	TaxID            string           `json:"tax_id"`
	CurrencyCode     string           `json:"currency_code"`
	PaymentTermsDays int              `json:"payment_terms_days"`
	CreditLimit      *decimal.Decimal `json:"credit_limit"`
	Notes            string           `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), id.Organization.ID, customer.CreateParams{
		Type:             req.Type,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		BillingAddress:   req.BillingAddress.toAddress(),
		ShippingAddress:  req.ShippingAddress.toAddress(),
		TaxID:            req.TaxID,
		CurrencyCode:     req.CurrencyCode,
		PaymentTermsDays: req.PaymentTermsDays,
		CreditLimit:      req.CreditLimit,
		Notes:            req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	customerID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id.Organization.ID, customerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(c))
}

type updateCustomerRequest struct {
	Type             *customer.Type   `json:"type"`
	Name             *string          `json:"name"`
	Email            *string          `json:"email"`
	Phone            *string          `json:"phone"`
	BillingAddress   *addressPayload  `json:"billing_address"`
	ShippingAddress  *addressPayload  `json:"shipping_address"`
	TaxID            *string          `json:"tax_id"`
	CurrencyCode     *string          `json:"currency_code"`
	PaymentTermsDays *int             `json:"payment_terms_days"`
	CreditLimit      *decimal.Decimal `json:"credit_limit"`
	Notes            *string          `json:"notes"`
	IsActive         *bool            `json:"is_active"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	customerID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	params := customer.UpdateParams{
		Type:             req.Type,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		TaxID:            req.TaxID,
		CurrencyCode:     req.CurrencyCode,
		PaymentTermsDays: req.PaymentTermsDays,
		CreditLimit:      req.CreditLimit,
		Notes:            req.Notes,
		IsActive:         req.IsActive,
	}

	if req.BillingAddress != nil {
		billing := req.BillingAddress.toAddress()
		params.BillingAddress = &billing
	}

	if req.ShippingAddress != nil {
		shipping := req.ShippingAddress.toAddress()
		params.ShippingAddress = &shipping
	}

	c, err := h.svc.Update(r.Context(), id.Organization.ID, customerID, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	customerID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id.Organization.ID, customerID); err != nil {
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

	filter := customer.ListFilter{Search: r.URL.Query().Get("search")}
	filter.Skip, filter.Limit = request.Pagination(r)

	if s := r.URL.Query().Get("type"); s != "" {
		typ := customer.Type(s)
		filter.Type = &typ
	}

	filter.IsActive = request.Bool(r, "is_active")

	customers, total, err := h.svc.List(r.Context(), id.Organization.ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items := make([]customerResponse, len(customers))
	for i, c := range customers {
		items[i] = toResponse(c)
	}

	respond.JSON(w, r, http.StatusOK, respond.Page{
		Items: items,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	})
}

type customerResponse struct {
	ID               uuid.UUID        `json:"id"`
	Type             customer.Type    `json:"type"`
	Name             string           `json:"name"`
	Email            string           `json:"email,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	BillingAddress   addressPayload   `json:"billing_address"`
	ShippingAddress  addressPayload   `json:"shipping_address"`
	TaxID            string           `json:"tax_id,omitempty"`
	CurrencyCode     string           `json:"currency_code"`
	PaymentTermsDays int              `json:"payment_terms_days"`
	CreditLimit      *decimal.Decimal `json:"credit_limit,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

func toAddressPayload(a customer.Address) addressPayload {
	return addressPayload{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:               c.ID,
		Type:             c.Type,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		BillingAddress:   toAddressPayload(c.BillingAddress),
		ShippingAddress:  toAddressPayload(c.ShippingAddress),
		TaxID:            c.TaxID,
		CurrencyCode:     c.CurrencyCode,
		PaymentTermsDays: c.PaymentTermsDays,
		CreditLimit:      c.CreditLimit,
		Notes:            c.Notes,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
