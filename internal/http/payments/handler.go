package payments

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/http/request"
	"github.com/quillbooks/quillbooks/internal/http/respond"
	"github.com/quillbooks/quillbooks/internal/payment"
)

type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Post("/gateway", h.recordGateway)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/void", h.void)
}

type recordPaymentRequest struct {
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	PaymentDate     time.Time       `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	Method          payment.Method  `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	p, err := h.svc.Record(r.Context(), id.Organization.ID, id.User.ID, payment.RecordParams{
		InvoiceID:       req.InvoiceID,
		PaymentDate:     req.PaymentDate,
		Amount:          req.Amount,
		Method:          req.Method,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(p))
}

type gatewayPaymentRequest struct {
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	PaymentDate      time.Time       `json:"payment_date"`
	Amount           decimal.Decimal `json:"amount"`
	GatewayName      string          `json:"gateway_name"`
	GatewayPaymentID string          `json:"gateway_payment_id"`
	GatewayOrderID   string          `json:"gateway_order_id"`
	GatewayResponse  string          `json:"gateway_response"`
}

// recordGateway applies a gateway-confirmed payment. The operation is
// idempotent on gateway_payment_id, so replays get the same 200 response as
// the first delivery.
func (h *Handler) recordGateway(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	var req gatewayPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	p, err := h.svc.RecordGateway(r.Context(), id.Organization.ID, payment.GatewayParams{
		InvoiceID:        req.InvoiceID,
		PaymentDate:      req.PaymentDate,
		Amount:           req.Amount,
		GatewayName:      req.GatewayName,
		GatewayPaymentID: req.GatewayPaymentID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayResponse:  req.GatewayResponse,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(p))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	paymentID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id.Organization.ID, paymentID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(p))
}

type voidPaymentRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	paymentID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req voidPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	p, err := h.svc.Void(r.Context(), id.Organization.ID, id.User.ID, paymentID, req.Reason)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	filter := payment.ListFilter{
		InvoiceID:  request.UUID(r, "invoice_id"),
		CustomerID: request.UUID(r, "customer_id"),
		IsVoided:   request.Bool(r, "is_voided"),
	}
	filter.Skip, filter.Limit = request.Pagination(r)

	payments, total, err := h.svc.List(r.Context(), id.Organization.ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items := make([]paymentResponse, len(payments))
	for i, p := range payments {
		items[i] = toResponse(p)
	}

	respond.JSON(w, r, http.StatusOK, respond.Page{
		Items: items,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	})
}

type paymentResponse struct {
	ID               uuid.UUID       `json:"id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	PaymentNumber    string          `json:"payment_number"`
	PaymentDate      time.Time       `json:"payment_date"`
	Amount           decimal.Decimal `json:"amount"`
	Method           payment.Method  `json:"payment_method"`
	ReferenceNumber  string          `json:"reference_number,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	GatewayName      string          `json:"gateway_name,omitempty"`
	GatewayPaymentID string          `json:"gateway_payment_id,omitempty"`
	IsVoided         bool            `json:"is_voided"`
	VoidedAt         *time.Time      `json:"voided_at,omitempty"`
	VoidReason       string          `json:"void_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		ID:               p.ID,
		CustomerID:       p.CustomerID,
		InvoiceID:        p.InvoiceID,
		PaymentNumber:    p.PaymentNumber,
		PaymentDate:      p.PaymentDate,
		Amount:           p.Amount,
		Method:           p.Method,
		ReferenceNumber:  p.ReferenceNumber,
		Notes:            p.Notes,
		GatewayName:      p.GatewayName,
		GatewayPaymentID: p.GatewayPaymentID,
		IsVoided:         p.IsVoided,
		VoidedAt:         p.VoidedAt,
		VoidReason:       p.VoidReason,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
