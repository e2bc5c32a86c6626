// Package auth implements the sign-in, session restore and refresh flows on
// top of the API client. It is the only code that mutates the client session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hochfrequenz/automation-portal/internal/apiclient"
	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/logger"
)

// RefreshTokenKey is where the refresh token is persisted. The session owns the access token.
const RefreshTokenKey = "refresh_token"

// expirySkew treats tokens that expire this soon as already expired
const expirySkew = 30 * time.Second

var (
	// ErrNotAuthenticated means no stored session exists
	ErrNotAuthenticated = errors.New("not signed in")
	// ErrSessionExpired means the stored session could not be verified or refreshed
	ErrSessionExpired = errors.New("session expired, please sign in again")
)

// Store persists auth state between runs
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	SaveUser(u domain.User) error
	LoadUser() (domain.User, bool, error)
	ClearSession() error
}

// Manager runs the auth flows for one client
type Manager struct {
	client *apiclient.Client
	store  Store
	log    logger.Logger
	now    func() time.Time
}

// NewManager creates a Manager. The client's session must mirror into the same store.
func NewManager(client *apiclient.Client, store Store, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{client: client, store: store, log: log, now: time.Now}
}

// Login exchanges credentials and persists the issued tokens and profile
func (m *Manager) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	user, tokens, err := m.client.Auth().Login(ctx, creds)
	if err != nil {
		return domain.User{}, fmt.Errorf("login: %w", err)
	}
	if err := m.persist(user, tokens); err != nil {
		return domain.User{}, err
	}
	m.log.Info("signed in", logger.String("username", user.Username))
	return user, nil
}

// Logout forgets the session locally. The theme preference is kept.
func (m *Manager) Logout() error {
	if err := m.client.Session().ClearToken(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	if err := m.store.ClearSession(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Restore reloads a persisted session and verifies it against /auth/me.
// A 401 from /auth/me triggers one refresh. When the API rejects that too the
// session is cleared and ErrSessionExpired returned. Unreachable APIs and
// other API errors leave the stored session untouched.
func (m *Manager) Restore(ctx context.Context) (domain.User, error) {
	ok, err := m.client.Session().Restore()
	if err != nil {
		return domain.User{}, fmt.Errorf("loading token: %w", err)
	}
	cached, hasUser, err := m.CurrentUser()
	if err != nil {
		return domain.User{}, err
	}
	if !ok || !hasUser {
		return domain.User{}, ErrNotAuthenticated
	}

	if m.expired(m.client.Session().Token()) {
		m.log.Debug("stored token expired, refreshing")
		return m.Refresh(ctx)
	}

	me, err := m.client.Auth().Me(ctx)
	if err == nil {
		if me.Username == "" {
			return cached, nil
		}
		if err := m.saveUser(me); err != nil {
			return domain.User{}, err
		}
		return me, nil
	}
	if !apiclient.IsUnauthorized(err) {
		return domain.User{}, fmt.Errorf("verifying session: %w", err)
	}

	m.log.Debug("profile check rejected, refreshing", logger.Err(err))
	return m.Refresh(ctx)
}

// Refresh trades the stored refresh token for a new pair. A rejected refresh
// ends the session; an unreachable API does not.
func (m *Manager) Refresh(ctx context.Context) (domain.User, error) {
	refresh, ok, err := m.store.Get(RefreshTokenKey)
	if err != nil {
		return domain.User{}, fmt.Errorf("loading refresh token: %w", err)
	}
	if !ok || refresh == "" {
		if err := m.Logout(); err != nil {
			return domain.User{}, err
		}
		return domain.User{}, ErrSessionExpired
	}

	user, tokens, err := m.client.Auth().Refresh(ctx, refresh)
	if errors.Is(err, apiclient.ErrTransport) {
		return domain.User{}, fmt.Errorf("refreshing session: %w", err)
	}
	if err != nil {
		m.log.Warn("token refresh failed", logger.Err(err))
		if logoutErr := m.Logout(); logoutErr != nil {
			return domain.User{}, logoutErr
		}
		return domain.User{}, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	if err := m.persist(user, tokens); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// CurrentUser returns the cached profile without contacting the API
func (m *Manager) CurrentUser() (domain.User, bool, error) {
	return m.store.LoadUser()
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// ok is false for opaque tokens or tokens without an expiry.
func TokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (m *Manager) expired(token string) bool {
	exp, ok := TokenExpiry(token)
	return ok && !m.now().Add(expirySkew).Before(exp)
}

func (m *Manager) persist(user domain.User, tokens domain.AuthTokens) error {
	if err := m.client.Session().SetToken(tokens.AccessToken); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if err := m.store.Set(RefreshTokenKey, tokens.RefreshToken); err != nil {
		return fmt.Errorf("storing refresh token: %w", err)
	}
	return m.saveUser(user)
}

func (m *Manager) saveUser(user domain.User) error {
	if err := m.store.SaveUser(user); err != nil {
		return fmt.Errorf("storing user: %w", err)
	}
	return nil
}
