package apiclient

import (
	"context"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/mapping"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

// AuthService wraps the credential exchange endpoints. It never touches the
// session; storing the issued tokens is up to the caller.
type AuthService struct {
	c *Client
}

// Auth returns the auth endpoints
func (c *Client) Auth() *AuthService {
	return &AuthService{c: c}
}

// Login exchanges credentials for a token pair
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.User, domain.AuthTokens, error) {
	method := creds.AuthMethod
	if method == "" {
		method = domain.AuthLDAP
	}
	resp, err := s.c.Post(ctx, "/auth/login", wire.LoginRequest{
		Username:   creds.Username,
		Password:   creds.Password,
		AuthMethod: string(method),
	})
	if err != nil {
		return domain.User{}, domain.AuthTokens{}, err
	}
	return mapping.AuthResponse(resp.Raw)
}

// Refresh exchanges a refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.User, domain.AuthTokens, error) {
	resp, err := s.c.Post(ctx, "/auth/refresh", wire.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return domain.User{}, domain.AuthTokens{}, err
	}
	return mapping.AuthResponse(resp.Raw)
}

// Me returns the profile of the token holder
func (s *AuthService) Me(ctx context.Context) (domain.User, error) {
	resp, err := s.c.Get(ctx, "/auth/me", nil)
	if err != nil {
		return domain.User{}, err
	}
	return mapping.Profile(resp.Raw)
}
