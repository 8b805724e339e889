package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillbooks/quillbooks/internal/fault"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=identity
type Repository interface {
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*User, error)
	OrganizationByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	Membership(ctx context.Context, userID, orgID uuid.UUID) (*Membership, error)
	MembershipsOf(ctx context.Context, userID uuid.UUID) ([]OrgRole, error)

	// CreateUserWithOrganization persists the user, their organization and
	// the OWNER membership in one transaction.
	CreateUserWithOrganization(ctx context.Context, u *User, org *Organization) error
}

type Service struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, secret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

type RegisterParams struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	OrganizationName string
}

// Register creates a user together with their organization and an OWNER
// membership, then issues a session for the new organization.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, fault.Invalid("email is required")
	}

	if len(params.Password) < 8 {
		return nil, fault.Invalid("password must be at least 8 characters")
	}

	if params.OrganizationName == "" {
		return nil, fault.Invalid("organization name is required")
	}

	existing, err := s.repo.UserByEmail(ctx, email)
	if err != nil && !fault.IsKind(err, fault.KindNotFound) {
		return nil, err
	}

	if existing != nil {
		return nil, fault.Conflict("user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:          email,
		HashedPassword: string(hash),
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		IsActive:       true,
	}

	org := &Organization{
		Name:     params.OrganizationName,
		Email:    email,
		IsActive: true,
	}

	if err := s.repo.CreateUserWithOrganization(ctx, user, org); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID, org.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:        token,
		User:         user,
		Organization: org,
		Role:         RoleOwner,
		Organizations: []OrgRole{
			{OrganizationID: org.ID, Name: org.Name, Role: RoleOwner},
		},
	}, nil
}

// Login authenticates by email and password and issues a session scoped to
// the user's first active organization.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if fault.IsKind(err, fault.KindNotFound) {
			return nil, fault.Unauthorized("invalid email or password")
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fault.Unauthorized("invalid email or password")
	}

	if !user.IsActive {
		return nil, fault.Unauthorized("user account is disabled")
	}

	memberships, err := s.repo.MembershipsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if len(memberships) == 0 {
		return nil, fault.Unauthorized("user has no active organizations")
	}

	current := memberships[0]

	org, err := s.repo.OrganizationByID(ctx, current.OrganizationID)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID, org.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:         token,
		User:          user,
		Organization:  org,
		Role:          current.Role,
		Organizations: memberships,
	}, nil
}

// Authenticate resolves a bearer token to the acting identity, rejecting
// inactive users, inactive organizations and revoked memberships.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	userID, orgID, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		if fault.IsKind(err, fault.KindNotFound) {
			return nil, fault.Unauthorized("unknown user")
		}

		return nil, err
	}

	if !user.IsActive {
		return nil, fault.Unauthorized("user account is disabled")
	}

	membership, err := s.repo.Membership(ctx, userID, orgID)
	if err != nil {
		if fault.IsKind(err, fault.KindNotFound) {
			return nil, fault.Unauthorized("organization access not granted")
		}

		return nil, err
	}

	if !membership.IsActive {
		return nil, fault.Unauthorized("organization access revoked")
	}

	org, err := s.repo.OrganizationByID(ctx, orgID)
	if err != nil {
		if fault.IsKind(err, fault.KindNotFound) {
			return nil, fault.Unauthorized("unknown organization")
		}

		return nil, err
	}

	if !org.IsActive {
		return nil, fault.Unauthorized("organization is inactive")
	}

	return &Identity{User: user, Organization: org, Role: membership.Role}, nil
}
