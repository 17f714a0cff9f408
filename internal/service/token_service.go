package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/model"
)

// TokenPair bundles a short-lived access token with its refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService provides high-level operations for issuing, refreshing and
// revoking tokens. Access tokens stay stateless; refresh tokens are
// persisted (hashed) so they can be rotated and revoked.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	logger     *logger.Logger
}

// NewTokenService creates a TokenService. refreshTTL must match the
// manager's refresh horizon; it is used for the persisted expiry only,
// cryptographic validity is checked against the JWT claims at parse time.
func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, refreshTTL: refreshTTL, logger: logger}
}

// Issue creates a fresh access/refresh pair for userID and persists the
// refresh side.
func (s *TokenService) Issue(ctx context.Context, userID int64) (TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := time.Now()
	rt := model.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a presented refresh token against its stored record,
// revokes it and issues a new pair (rotation).
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		// An unknown JTI is a rotated-out or fabricated token; callers must
		// not be able to tell it apart from a revoked one.
		return TokenPair{}, model.ErrTokenRevoked
	}
	if err != nil {
		return TokenPair{}, err
	}

	if err := validateRefreshRecord(rt, hashRefresh(presentedRefresh), time.Now()); err != nil {
		return TokenPair{}, err
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return TokenPair{}, model.ErrTokenRevoked
		}
		return TokenPair{}, fmt.Errorf("revoke old refresh: %w", err)
	}

	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue new access: %w", err)
	}

	refresh, newJTI, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue new refresh: %w", err)
	}

	now := time.Now()
	rotatedFrom := rt.JTI
	newRT := model.RefreshToken{
		JTI:            newJTI,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.refreshTTL),
		RotatedFromJTI: &rotatedFrom,
	}
	if err := s.store.Create(ctx, newRT); err != nil {
		return TokenPair{}, fmt.Errorf("persist new refresh: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RevokeByToken revokes the stored record behind a presented refresh token.
func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return err
	}
	if err := s.store.RevokeByJTI(ctx, jti); err != nil && !errors.Is(err, model.ErrNotFound) {
		return err
	}
	return nil
}

// RevokeAllForUser revokes every refresh token issued to userID.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID int64) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

// GetUserID verifies an access token and returns its subject. Pure: no
// store lookup is involved.
func (s *TokenService) GetUserID(_ context.Context, token string) (int64, error) {
	return s.manager.ParseAccessToken(token)
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRefreshRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
