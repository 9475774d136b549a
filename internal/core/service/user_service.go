package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/surtekbb/pileta-system/internal/core/domain"
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

const searchLimit = 50

// UserService implements the administrative user operations.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// CreateAlumno creates an active cliente account from the front desk.
func (s *UserService) CreateAlumno(ctx context.Context, input ports.CreateAlumnoInput) (*domain.User, error) {
	if input.Nombre == "" || input.Apellido == "" || input.DNI == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	if _, err := s.users.FindByDNI(ctx, input.DNI); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	tipo := input.TipoCliente
	if tipo == "" {
		tipo = domain.ClientTypeRegular
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
		TipoCliente:  tipo,
		Status:       domain.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("alumno_id", created.ID).Str("dni", created.DNI).Msg("alumno created")
	return created, nil
}

func (s *UserService) SearchAlumnos(ctx context.Context, query string) ([]domain.User, error) {
	return s.users.SearchAlumnos(ctx, query, searchLimit)
}

func (s *UserService) ListPending(ctx context.Context) ([]domain.User, error) {
	return s.users.ListPending(ctx)
}

// Approve activates a pending self-registered account.
func (s *UserService) Approve(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status == domain.UserStatusActive {
		return user, nil
	}

	if err := s.users.UpdateStatus(ctx, id, domain.UserStatusActive); err != nil {
		return nil, err
	}
	user.Status = domain.UserStatusActive

	s.log.Info().Str("user_id", id).Msg("pending account approved")
	return user, nil
}
