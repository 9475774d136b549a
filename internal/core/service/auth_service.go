package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

// ResetTokenStore abstracts the short-lived password-reset tokens (Redis).
type ResetTokenStore interface {
	// Issue creates a single-use token bound to the user.
	Issue(ctx context.Context, userID string) (string, error)
	// Consume resolves and invalidates a token, returning the bound user ID.
	// Unknown or expired tokens fail with domain.ErrInvalidResetToken.
	Consume(ctx context.Context, token string) (string, error)
}

// TokenRevoker abstracts the logout denylist (Redis).
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// AuthService implements login, logout, registration and password recovery.
type AuthService struct {
	users     ports.UserRepository
	resets    ResetTokenStore
	revoker   TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	resets ResetTokenStore,
	revoker TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		resets:    resets,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login exchanges DNI + password for a signed token. Every authentication
// failure collapses to ErrInvalidCredentials: the response must not disclose
// whether the DNI exists or the account is pending.
func (s *AuthService) Login(ctx context.Context, dni, password string) (string, *domain.User, error) {
	dni = strings.TrimSpace(dni)
	if dni == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByDNI(ctx, dni)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if user.Status != domain.UserStatusActive {
		s.log.Info().Str("dni", dni).Msg("login rejected: account not active")
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout denylists the presented token for its remaining lifetime. Malformed
// or already expired tokens are swallowed: logout is best-effort and
// idempotent from the caller's point of view.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("logout with unparseable token ignored")
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return nil
	}

	return s.revoker.Revoke(ctx, token, ttl)
}

// Register creates a pending cliente account from the public registration form.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Nombre == "" || input.Apellido == "" || input.DNI == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if input.Password != input.PasswordConfirmation {
		return nil, domain.ErrPasswordMismatch
	}

	if _, err := s.users.FindByDNI(ctx, input.DNI); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Nombre:       input.Nombre,
		Apellido:     input.Apellido,
		DNI:          input.DNI,
		Email:        input.Email,
		Telefono:     input.Telefono,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		TipoCliente:  domain.ClientTypeRegular,
		Status:       domain.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("dni", created.DNI).Msg("cliente registered, pending approval")
	return created, nil
}

// Me returns the identity behind an authenticated request.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// VerifyRecovery checks DNI + telefono and issues a reset token. A phone
// mismatch reports ErrInvalidCredentials, indistinguishable from an unknown
// DNI.
func (s *AuthService) VerifyRecovery(ctx context.Context, dni, telefono string) (string, error) {
	dni = strings.TrimSpace(dni)
	telefono = strings.TrimSpace(telefono)
	if dni == "" || telefono == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByDNI(ctx, dni)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if user.Telefono == "" || user.Telefono != telefono {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.resets.Issue(ctx, user.ID)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset token issued")
	return token, nil
}

// ResetPassword consumes a reset token and stores the new password. The
// equality and length checks run before the token is touched so a mismatch
// does not burn it.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirmation string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if password != confirmation {
		return domain.ErrPasswordMismatch
	}

	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"dni":          user.DNI,
		"tipo_usuario": string(user.Role),
		"exp":          time.Now().Add(s.tokenTTL).Unix(),
	}
	if user.Role == domain.RoleClient {
		claims["tipo_cliente"] = string(user.TipoCliente)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
