// Package request holds the query and path parsing shared by the handlers.
package request

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/http/respond"
	"github.com/quillbooks/quillbooks/internal/identity"
)

// Caller resolves the authenticated identity, writing 401 when the request
// reached a protected handler without one.
func Caller(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		respond.Error(w, r, fault.Unauthorized("authentication required"))
	}

	return id, ok
}

// ID parses a UUID path parameter.
func ID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fault.Invalidf("invalid %s", name)
	}

	return id, nil
}

// Pagination reads skip and limit query parameters with their defaults. The
// engines enforce the bounds.
func Pagination(r *http.Request) (skip, limit int) {
	skip, limit = 0, 100

	if s := r.URL.Query().Get("skip"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			skip = n
		}
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	return skip, limit
}

// Date reads an optional date query parameter in YYYY-MM-DD form.
func Date(r *http.Request, key string) *time.Time {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}

	return &t
}

// Bool reads an optional boolean query parameter.
func Bool(r *http.Request, key string) *bool {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}

	return &b
}

// UUID reads an optional UUID query parameter.
func UUID(r *http.Request, key string) *uuid.UUID {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}

	return &id
}
