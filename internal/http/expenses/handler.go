package expenses

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/expense"
	"github.com/quillbooks/quillbooks/internal/http/request"
	"github.com/quillbooks/quillbooks/internal/http/respond"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	VendorName      string          `json:"vendor_name"`
	ExpenseDate     time.Time       `json:"expense_date"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Method          expense.Method  `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Description     string          `json:"description"`
	ReceiptURL      string          `json:"receipt_url"`
	IsBillable      bool            `json:"is_billable"`
	CustomerID      *uuid.UUID      `json:"customer_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	e, err := h.svc.Create(r.Context(), id.Organization.ID, id.User.ID, expense.CreateParams{
		VendorName:      req.VendorName,
		ExpenseDate:     req.ExpenseDate,
		Category:        req.Category,
		Amount:          req.Amount,
		TaxAmount:       req.TaxAmount,
		Method:          req.Method,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		ReceiptURL:      req.ReceiptURL,
		IsBillable:      req.IsBillable,
		CustomerID:      req.CustomerID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(e))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	expenseID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.Get(r.Context(), id.Organization.ID, expenseID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(e))
}

type updateExpenseRequest struct {
	VendorName      *string          `json:"vendor_name"`
	ExpenseDate     *time.Time       `json:"expense_date"`
	Category        *string          `json:"category"`
	Amount          *decimal.Decimal `json:"amount"`
	TaxAmount       *decimal.Decimal `json:"tax_amount"`
	Method          *expense.Method  `json:"payment_method"`
	ReferenceNumber *string          `json:"reference_number"`
	Description     *string          `json:"description"`
	ReceiptURL      *string          `json:"receipt_url"`
	IsBillable      *bool            `json:"is_billable"`
	CustomerID      *uuid.UUID       `json:"customer_id"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	expenseID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	e, err := h.svc.Update(r.Context(), id.Organization.ID, expenseID, expense.UpdateParams{
		VendorName:      req.VendorName,
		ExpenseDate:     req.ExpenseDate,
		Category:        req.Category,
		Amount:          req.Amount,
		TaxAmount:       req.TaxAmount,
		Method:          req.Method,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		ReceiptURL:      req.ReceiptURL,
		IsBillable:      req.IsBillable,
		CustomerID:      req.CustomerID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := request.Caller(w, r)
	if !ok {
		return
	}

	expenseID, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id.Organization.ID, expenseID); err != nil {
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

	filter := expense.ListFilter{
		Category:   r.URL.Query().Get("category"),
		IsBillable: request.Bool(r, "is_billable"),
		CustomerID: request.UUID(r, "customer_id"),
		StartDate:  request.Date(r, "start_date"),
		EndDate:    request.Date(r, "end_date"),
	}
	filter.Skip, filter.Limit = request.Pagination(r)

	expenses, total, err := h.svc.List(r.Context(), id.Organization.ID, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = toResponse(e)
	}

	respond.JSON(w, r, http.StatusOK, respond.Page{
		Items: items,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	})
}

type expenseResponse struct {
	ID              uuid.UUID       `json:"id"`
	ExpenseNumber   string          `json:"expense_number"`
	VendorName      string          `json:"vendor_name"`
	ExpenseDate     time.Time       `json:"expense_date"`
	Category        string          `json:"category,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	Method          expense.Method  `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Description     string          `json:"description,omitempty"`
	ReceiptURL      string          `json:"receipt_url,omitempty"`
	IsBillable      bool            `json:"is_billable"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:              e.ID,
		ExpenseNumber:   e.ExpenseNumber,
		VendorName:      e.VendorName,
		ExpenseDate:     e.ExpenseDate,
		Category:        e.Category,
		Amount:          e.Amount,
		TaxAmount:       e.TaxAmount,
		Total:           e.Total,
		Method:          e.Method,
		ReferenceNumber: e.ReferenceNumber,
		Description:     e.Description,
		ReceiptURL:      e.ReceiptURL,
		IsBillable:      e.IsBillable,
		CustomerID:      e.CustomerID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
