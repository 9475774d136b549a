package ports

import (
	"context"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// RegisterInput carries a self-registration request. Accounts created this
// way are cliente users in pending state.
type RegisterInput struct {
	Nombre               string
	Apellido             string
	DNI                  string
	Email                string
	Telefono             string
	Password             string
	PasswordConfirmation string
}

// AuthService defines login, logout and password-recovery use cases.
type AuthService interface {
	// Login exchanges DNI + password for a signed bearer token. Any failure
	// other than infrastructure errors collapses to ErrInvalidCredentials so
	// the response never discloses whether the DNI exists.
	Login(ctx context.Context, dni, password string) (string, *domain.User, error)
	// Logout revokes the presented token until its natural expiry.
	// Revoking an already revoked token is a no-op.
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	// VerifyRecovery checks DNI + telefono and issues a short-lived,
	// single-use reset token.
	VerifyRecovery(ctx context.Context, dni, telefono string) (string, error)
	// ResetPassword consumes a reset token and sets the new password after
	// equality and minimum-length checks.
	ResetPassword(ctx context.Context, token, password, confirmation string) error
}
