package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CafeBookingService/internal/domain"
	userServiceClient "github.com/m04kA/CafeBookingService/internal/integrations/userservice"
)

// RemoteProvider делегирует проверку учетных данных внешнему UserService
type RemoteProvider struct {
	client UserServiceClient
}

// NewRemoteProvider создает провайдер поверх клиента UserService
func NewRemoteProvider(client UserServiceClient) *RemoteProvider {
	return &RemoteProvider{client: client}
}

func (p *RemoteProvider) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := p.client.Authenticate(ctx, email, password)
	if err != nil {
		return nil, translateClientError("Authenticate", err)
	}
	return user, nil
}

func (p *RemoteProvider) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	user, err := p.client.Register(ctx, email, password, name)
	if err != nil {
		return nil, translateClientError("Register", err)
	}
	return user, nil
}

func translateClientError(op string, err error) error {
	switch {
	case errors.Is(err, userServiceClient.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, userServiceClient.ErrUserExists):
		return ErrUserExists
	default:
		return fmt.Errorf("%w: %s - userservice error: %v", ErrInternal, op, err)
	}
}
