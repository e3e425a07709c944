package identity

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

const avatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// StubProvider принимает любой непустой email и пароль.
// Один и тот же email всегда получает один и тот же ID пользователя.
type StubProvider struct{}

// NewStubProvider создает провайдер для локального запуска и демо
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// StubUserID ID пользователя, которое StubProvider выдаст для email
func StubUserID(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalized)).String()
}

func (p *StubProvider) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	return stubUser(email, localPart(email)), nil
}

func (p *StubProvider) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("%w: email, password and name are required", ErrInvalidInput)
	}
	return stubUser(email, name), nil
}

func stubUser(email, name string) *domain.User {
	return &domain.User{
		ID:     StubUserID(email),
		Name:   name,
		Email:  email,
		Avatar: avatarURL + url.QueryEscape(email),
	}
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
