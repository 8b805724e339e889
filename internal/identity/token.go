package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/fault"
)

type claims struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(userID, orgID uuid.UUID, email string) (string, error) {
	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:         userID.String(),
		OrganizationID: orgID.String(),
		Email:          email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})

	return token.SignedString(s.secret)
}

// parseToken validates the signature and expiry and returns the embedded
// user and organization ids.
func (s *Service) parseToken(tokenString string) (userID, orgID uuid.UUID, err error) {
	var c claims

	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fault.Unauthorized("unexpected signing method")
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, fault.Unauthorized("invalid or expired token")
	}

	userID, err = uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fault.Unauthorized("invalid token subject")
	}

	orgID, err = uuid.Parse(c.OrganizationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fault.Unauthorized("invalid token organization")
	}

	return userID, orgID, nil
}
