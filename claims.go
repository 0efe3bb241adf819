package storefront

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claims payload the storefront reads out of the bearer
// token. The token is an opaque credential as far as authorization goes:
// claims are decoded without signature verification and drive UI affordances
// only. The backend re-validates every privileged request.
type TokenClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"uid,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// UserID returns the user ID, falling back to the subject claim.
func (c *TokenClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Role returns the role claim degraded to RoleAnonymous when absent or
// unknown. Backends that issue Spring-style values ("ROLE_ADMIN", "ADMIN")
// are normalized to the canonical lowercase form.
func (c *TokenClaims) Role() Role {
	role, _ := ParseRole(NormalizeRoleClaim(c.UserRole))
	return role
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// DecodeTokenClaims decodes the claims segment of a three-part token without
// verifying the signature. Callers that need a hard failure should check the
// returned error; session code treats any failure as "no claims".
func DecodeTokenClaims(raw string) (*TokenClaims, error) {
	if raw == "" {
		return nil, ErrTokenMalformed
	}

	claims := &TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, ErrTokenMalformed.Clone().WithMetadata(map[string]any{
			"cause": err.Error(),
		})
	}

	return claims, nil
}
