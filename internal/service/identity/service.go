package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/infra/storage/session"
	"github.com/m04kA/CafeBookingService/internal/service/identity/models"
)

// Claims содержимое токена сессии
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Service выдает и проверяет сессии пользователей.
// Токен - HS256 JWT, jti которого указывает на запись в SessionStore.
type Service struct {
	provider     Provider
	store        SessionStore
	secret       []byte
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	provider Provider,
	store SessionStore,
	secret string,
	ttl time.Duration,
	logger Logger,
) *Service {
	return &Service{
		provider:     provider,
		store:        store,
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// Login проверяет учетные данные и открывает сессию
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		s.logger.Warn("Login: empty email or password")
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.provider.Authenticate(ctx, email, req.Password)
	if err != nil {
		return nil, s.providerError("Login", email, err)
	}

	return s.open(ctx, "Login", user)
}

// Signup регистрирует пользователя и сразу открывает сессию
func (s *Service) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		s.logger.Warn("Signup: empty email, password or name")
		return nil, fmt.Errorf("%w: email, password and name are required", ErrInvalidInput)
	}

	user, err := s.provider.Register(ctx, email, req.Password, name)
	if err != nil {
		return nil, s.providerError("Signup", email, err)
	}

	return s.open(ctx, "Signup", user)
}

// Resolve возвращает пользователя по токену активной сессии
func (s *Service) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Resolve: session store error for jti=%s: %v", claims.ID, err)
		return nil, fmt.Errorf("%w: Resolve - session store error: %v", ErrInternal, err)
	}

	if stored.User.ID != claims.Subject {
		s.logger.Warn("Resolve: subject mismatch for jti=%s", claims.ID)
		return nil, ErrInvalidToken
	}

	user := stored.User
	return &user, nil
}

// Logout завершает сессию. Повторный выход не считается ошибкой.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, claims.ID); err != nil {
		s.logger.Error("Logout: session store error for jti=%s: %v", claims.ID, err)
		return fmt.Errorf("%w: Logout - session store error: %v", ErrInternal, err)
	}

	s.logger.Info("Logout: closed session jti=%s for user=%s", claims.ID, claims.Subject)
	return nil
}

func (s *Service) open(ctx context.Context, op string, user *domain.User) (*models.AuthResponse, error) {
	now := s.timeProvider.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("%s: failed to sign token: %v", op, err)
		return nil, fmt.Errorf("%w: %s - sign token: %v", ErrInternal, op, err)
	}

	err = s.store.Save(ctx, &session.Session{
		ID:        claims.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}, s.ttl)
	if err != nil {
		s.logger.Error("%s: failed to save session for user=%s: %v", op, user.ID, err)
		return nil, fmt.Errorf("%w: %s - session store error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: opened session jti=%s for user=%s", op, claims.ID, user.ID)
	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *Service) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.timeProvider.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing jti or sub", ErrInvalidToken)
	}
	return claims, nil
}

func (s *Service) providerError(op, email string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		s.logger.Warn("%s: invalid credentials for email=%s", op, email)
		return ErrInvalidCredentials
	case errors.Is(err, ErrUserExists):
		s.logger.Warn("%s: user with email=%s already exists", op, email)
		return ErrUserExists
	case errors.Is(err, ErrInvalidInput):
		return err
	default:
		s.logger.Error("%s: identity provider error for email=%s: %v", op, email, err)
		return fmt.Errorf("%w: %s - provider error: %v", ErrInternal, op, err)
	}
}
