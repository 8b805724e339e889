// Package identity owns authentication principals and tenant membership:
// users, organizations and the roles linking them. The engines only ever see
// the resolved Identity it produces.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's role within one organization.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleViewer Role = "VIEWER"
)

type User struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time

	// HashedPassword is never serialized outward.
	HashedPassword string
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}

type Organization struct {
	ID                 uuid.UUID
	Name               string
	LegalName          string
	Email              string
	Phone              string
	AddressLine1       string
	AddressLine2       string
	City               string
	State              string
	PostalCode         string
	Country            string
	TaxID              string
	CurrencyCode       string
	FiscalYearEndMonth int
	LogoURL            string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// Membership links a user to an organization with a role.
type Membership struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           Role
	IsActive       bool
	InvitedBy      *uuid.UUID
	JoinedAt       time.Time
}

// OrgRole is a user's active membership with the organization name resolved,
// as returned to clients at login.
type OrgRole struct {
	OrganizationID uuid.UUID
	Name           string
	Role           Role
}

// Identity is the resolved (user, organization, role) triple every
// authenticated request carries.
type Identity struct {
	User         *User
	Organization *Organization
	Role         Role
}

// Session is the outcome of a successful register or login.
type Session struct {
	Token         string
	User          *User
	Organization  *Organization
	Role          Role
	Organizations []OrgRole
}
