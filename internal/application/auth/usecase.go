// Package auth implementa registro, login y logout sobre el almacén de credenciales y la sesión
// explícita de cada contexto.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/application/session"
	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/credentials"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
	"github.com/jhoicas/reservas-canchas/pkg/jwt"
	"github.com/jhoicas/reservas-canchas/pkg/metrics"
	"github.com/jhoicas/reservas-canchas/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros del caso de uso.
type Config struct {
	JWT         JWTConfig
	DefaultRole string // rol cuando el registro no indica uno
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
type AuthUseCase struct {
	users       repository.UserRepository
	sessions    *session.Manager
	hasher      *password.Hasher
	metrics     *metrics.Metrics
	log         zerolog.Logger
	jwtCfg      JWTConfig
	defaultRole string
}

// NewAuthUseCase construye el caso de uso de auth. Un DefaultRole vacío, desconocido o admin se
// reemplaza por registrador.
func NewAuthUseCase(
	users repository.UserRepository,
	sessions *session.Manager,
	hasher *password.Hasher,
	m *metrics.Metrics,
	log zerolog.Logger,
	cfg Config,
) *AuthUseCase {
	role := strings.ToLower(strings.TrimSpace(cfg.DefaultRole))
	if !entity.IsSelfAssignable(role) {
		if role != "" {
			log.Warn().Str("default_role", role).Msg("rol por defecto no asignable en el registro, se usa registrador")
		}
		role = entity.RoleRegistrador
	}
	return &AuthUseCase{
		users:       users,
		sessions:    sessions,
		hasher:      hasher,
		metrics:     m,
		log:         log,
		jwtCfg:      cfg.JWT,
		defaultRole: role,
	}
}

// Register valida y crea un usuario. Devuelve *domain.ValidationError, ErrEmailAlreadyExists o
// un error que envuelve ErrStore.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	name := credentials.NormalizeName(in.Name)
	email := credentials.NormalizeEmail(in.Email)
	if err := credentials.ValidateRegistration(name, email, in.Password); err != nil {
		uc.metrics.Registrations.WithLabelValues(metrics.OutcomeValidation).Inc()
		return nil, err
	}
	role, err := uc.resolveRole(in.Role)
	if err != nil {
		uc.metrics.Registrations.WithLabelValues(metrics.OutcomeValidation).Inc()
		return nil, err
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, uc.storeError(uc.metrics.Registrations, "buscar usuario", err)
	}
	if existing != nil {
		uc.metrics.Registrations.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			uc.metrics.Registrations.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return nil, err
		}
		return nil, uc.storeError(uc.metrics.Registrations, "crear usuario", err)
	}
	uc.metrics.Registrations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) resolveRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return uc.defaultRole, nil
	}
	if !entity.IsValidRole(role) {
		return "", domain.NewValidationError("rol", "el rol no existe")
	}
	if !entity.IsSelfAssignable(role) {
		return "", domain.NewValidationError("rol", "el rol no puede asignarse en el registro")
	}
	return role, nil
}

// Login verifica email/password, liga una sesión nueva y firma el token.
//
// Si current ya está autenticada, se cierra (sellando su entrada en bitácora) antes de ligar la
// nueva. Con credenciales inválidas current queda intacta y no se crea ninguna sesión.
func (uc *AuthUseCase) Login(ctx context.Context, current *session.Session, in dto.LoginRequest, client entity.ClientContext) (*dto.LoginResponse, error) {
	email := credentials.NormalizeEmail(in.Email)
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, uc.storeError(uc.metrics.LoginAttempts, "buscar usuario", err)
	}
	if user == nil {
		uc.metrics.LoginAttempts.WithLabelValues(metrics.OutcomeUserNotFound).Inc()
		return nil, domain.ErrUserNotFound
	}
	if err := uc.hasher.Verify(user.PasswordHash, in.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("hash de contraseña ilegible")
		}
		uc.metrics.LoginAttempts.WithLabelValues(metrics.OutcomeBadPassword).Inc()
		return nil, domain.ErrInvalidPassword
	}

	if current.IsAuthenticated() {
		uc.log.Debug().Str("session_id", current.ID).Str("user_id", current.User.ID).Msg("login reemplaza la sesión activa")
		uc.sessions.Clear(ctx, current)
	}

	s := session.New()
	if err := uc.sessions.Bind(ctx, s, user.Snapshot(), client); err != nil {
		uc.metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSessionFailed).Inc()
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo crear la sesión")
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, s.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.sessions.Clear(ctx, s)
		return nil, err
	}
	uc.metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: s.ExpiresAt,
		User:      *toUserResponse(user),
		SessionID: s.ID,
	}, nil
}

// Logout cierra la sesión. Sin sesión autenticada no hace nada.
func (uc *AuthUseCase) Logout(ctx context.Context, s *session.Session) {
	if !s.IsAuthenticated() {
		return
	}
	uc.sessions.Clear(ctx, s)
	uc.metrics.Logouts.Inc()
}

// CheckAuthentication informa si s tiene un usuario ligado.
func (uc *AuthUseCase) CheckAuthentication(s *session.Session) bool {
	return s.IsAuthenticated()
}

// Me devuelve el estado de la sesión actual a partir de la copia guardada al login.
func (uc *AuthUseCase) Me(s *session.Session) (*dto.SessionResponse, error) {
	if !s.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	return &dto.SessionResponse{
		Authenticated: true,
		User: dto.UserResponse{
			ID:    s.User.ID,
			Name:  s.User.Name,
			Email: s.User.Email,
			Role:  s.User.Role,
		},
		ExpiresAt: s.ExpiresAt,
	}, nil
}

// storeError cuenta el fallo del almacén y lo envuelve en ErrStore; el detalle queda en el log.
func (uc *AuthUseCase) storeError(counter *prometheus.CounterVec, op string, err error) error {
	counter.WithLabelValues(metrics.OutcomeStoreError).Inc()
	uc.log.Error().Err(err).Str("op", op).Msg("error del almacén de credenciales")
	return fmt.Errorf("%w: %s: %w", domain.ErrStore, op, err)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
