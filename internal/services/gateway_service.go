package services

import (
	"context"
	"time"

	"stream-gateway/config"
	"stream-gateway/internal/stream"
	gateway_errors "stream-gateway/pkg/errors"
)

const (
	RoleUser = "user"

	DefaultTokenValidity = 24 * time.Hour
)

// Provider is the subset of the Stream client the gateway depends on.
type Provider interface {
	UpsertUsers(ctx context.Context, users ...stream.UserRequest) (*stream.UpdateUsersResponse, error)
	DeleteUsers(ctx context.Context, req stream.DeleteUsersRequest) (*stream.DeleteUsersResponse, error)
	CreateToken(userID string, validity time.Duration) (string, error)
}

var _ Provider = (*stream.Client)(nil)

type GatewayService struct {
	provider      Provider
	tokenValidity time.Duration
}

func NewGatewayService(provider Provider, cfg *config.Config) *GatewayService {
	validity := DefaultTokenValidity
	if cfg != nil && cfg.TokenValiditySec > 0 {
		validity = time.Duration(cfg.TokenValiditySec) * time.Second
	}
	return &GatewayService{
		provider:      provider,
		tokenValidity: validity,
	}
}

// UpsertUser creates the user with the default role, or updates it if it
// already exists.
func (s *GatewayService) UpsertUser(ctx context.Context, userID string) error {
	if userID == "" {
		return gateway_errors.ErrMissingIdentifier
	}

	record := stream.UserRequest{ID: userID, Role: RoleUser}
	if _, err := s.provider.UpsertUsers(ctx, record); err != nil {
		return gateway_errors.NewProviderError("upsert user", err)
	}
	return nil
}

// IssueToken signs a user token valid for the configured window.
func (s *GatewayService) IssueToken(userID string) (string, error) {
	if userID == "" {
		return "", gateway_errors.ErrMissingIdentifier
	}

	token, err := s.provider.CreateToken(userID, s.tokenValidity)
	if err != nil {
		return "", gateway_errors.NewProviderError("create token", err)
	}
	return token, nil
}

// DeleteUser hard deletes the user. It returns once the provider has accepted
// the deletion.
func (s *GatewayService) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return gateway_errors.ErrMissingIdentifier
	}

	_, err := s.provider.DeleteUsers(ctx, stream.DeleteUsersRequest{
		UserIDs: []string{userID},
		User:    stream.DeleteHard,
	})
	if err != nil {
		return gateway_errors.NewProviderError("delete user", err)
	}
	return nil
}

func (s *GatewayService) TokenValidity() time.Duration {
	return s.tokenValidity
}
