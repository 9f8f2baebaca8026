package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// ValidRole reports whether role is one of the account types.
func ValidRole(role string) bool {
	return role == RolePatient || role == RoleDoctor
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (p Principal) IsDoctor() bool { return p.Role == RoleDoctor }

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the caller, if the request carried a valid token.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
