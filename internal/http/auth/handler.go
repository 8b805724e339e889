// Package auth exposes registration, login and session introspection.
package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/http/respond"
	"github.com/quillbooks/quillbooks/internal/identity"
)

type Handler struct {
	svc *identity.Service
}

func NewHandler(svc *identity.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the public endpoints. Me is mounted separately behind the
// authenticator.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

type registerRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	OrganizationName string `json:"organization_name"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	session, err := h.svc.Register(r.Context(), identity.RegisterParams{
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toSessionResponse(session))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Invalid(w, r, "invalid request body")
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, toSessionResponse(session))
}

// Me returns the identity resolved from the bearer token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		respond.Error(w, r, fault.Unauthorized("authentication required"))
		return
	}

	respond.JSON(w, r, http.StatusOK, meResponse{
		User:         toUserResponse(id.User),
		Organization: toOrganizationResponse(id.Organization),
		Role:         string(id.Role),
	})
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type organizationResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	CurrencyCode       string    `json:"currency_code"`
	FiscalYearEndMonth int       `json:"fiscal_year_end_month"`
	CreatedAt          time.Time `json:"created_at"`
}

type orgRoleResponse struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
}

type sessionResponse struct {
	Token         string               `json:"token"`
	User          userResponse         `json:"user"`
	Organization  organizationResponse `json:"organization"`
	Role          string               `json:"role"`
	Organizations []orgRoleResponse    `json:"organizations"`
}

type meResponse struct {
	User         userResponse         `json:"user"`
	Organization organizationResponse `json:"organization"`
	Role         string               `json:"role"`
}

func toUserResponse(u *identity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

func toOrganizationResponse(org *identity.Organization) organizationResponse {
	return organizationResponse{
		ID:                 org.ID,
		Name:               org.Name,
		CurrencyCode:       org.CurrencyCode,
		FiscalYearEndMonth: org.FiscalYearEndMonth,
		CreatedAt:          org.CreatedAt,
	}
}

func toSessionResponse(s *identity.Session) sessionResponse {
	orgs := make([]orgRoleResponse, len(s.Organizations))
	for i, o := range s.Organizations {
		orgs[i] = orgRoleResponse{OrganizationID: o.OrganizationID, Name: o.Name, Role: string(o.Role)}
	}

	return sessionResponse{
		Token:         s.Token,
		User:          toUserResponse(s.User),
		Organization:  toOrganizationResponse(s.Organization),
		Role:          string(s.Role),
		Organizations: orgs,
	}
}
