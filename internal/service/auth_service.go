package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"glamstore/internal/identity"
	"glamstore/internal/model"
	"glamstore/internal/repository"
	"glamstore/pkg/jwt"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	// Authenticate resolves a bearer token, local or from the identity
	// provider, to the calling principal.
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

// TokenVerifier validates tokens minted by the identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*jwt.ExternalClaims, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type authService struct {
	users      repository.UserRepository
	reconciler *repository.Reconciler
	tokens     *jwt.Manager
	external   TokenVerifier
	log        logrus.FieldLogger
}

// NewAuthService wires local token handling. external may be nil, in which
// case only locally issued tokens are accepted.
func NewAuthService(users repository.UserRepository, reconciler *repository.Reconciler, tokens *jwt.Manager, external TokenVerifier, log logrus.FieldLogger) AuthService {
	return &authService{
		users:      users,
		reconciler: reconciler,
		tokens:     tokens,
		external:   external,
		log:        log.WithField("service", "auth"),
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, errors.Wrap(repository.ErrConflict, "Email already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	user := &model.User{Name: strings.TrimSpace(req.Name), Email: req.Email, Role: model.RoleCustomer}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*LoginResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if claims, err := s.tokens.ValidateToken(token); err == nil {
		user, err := s.users.FindByID(ctx, claims.Subject)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, jwt.ErrInvalidToken
		}
		if err != nil {
			return nil, err
		}
		return principalOf(user), nil
	}

	if s.external == nil {
		return nil, jwt.ErrInvalidToken
	}
	claims, err := s.external.Verify(ctx, token)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}
	// A provider subject must never resolve as a local id.
	if !identity.IsExternal(claims.Subject) {
		s.log.WithField("subject", claims.Subject).Warn("provider token with non-provider subject")
		return nil, jwt.ErrInvalidToken
	}

	user, err := s.reconciler.ResolveUser(ctx, claims.Subject)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Signed in with the provider but never stored locally.
		return &Principal{
			ID:         claims.Subject,
			ExternalID: claims.Subject,
			Name:       claims.Name,
			Email:      claims.Email,
			Role:       model.RoleCustomer,
		}, nil
	case err != nil:
		s.log.WithError(err).WithField("external_id", claims.Subject).Warn("failed to resolve external identity")
		return nil, err
	}
	p := principalOf(user)
	p.ExternalID = claims.Subject
	return p, nil
}

func principalOf(user *model.User) *Principal {
	return &Principal{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Registered: true,
	}
}
