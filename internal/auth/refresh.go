package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/d9705996/teamconnect/internal/model"
	"gorm.io/gorm"
)

// ErrRefreshTokenInvalid is returned for unknown, revoked, or expired tokens.
var ErrRefreshTokenInvalid = errors.New("refresh token is invalid or expired")

// RefreshStore manages refresh token persistence via GORM.
type RefreshStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewRefreshStore creates a RefreshStore whose tokens live for ttl.
func NewRefreshStore(db *gorm.DB, ttl time.Duration) *RefreshStore {
	return &RefreshStore{db: db, ttl: ttl}
}

// IssueRefreshToken generates a secure random token, stores its SHA-256 hash,
// and returns the plaintext token to the caller (stored nowhere).
func (s *RefreshStore) IssueRefreshToken(ctx context.Context, userID uint) (string, error) {
	return s.issue(s.db.WithContext(ctx), userID)
}

func (s *RefreshStore) issue(tx *gorm.DB, userID uint) (string, error) {
	raw, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	rt := &model.RefreshToken{
		UserID:    userID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := tx.Create(rt).Error; err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return raw, nil
}

// RotateRefreshToken validates the given token, revokes it, and issues a new
// one in the same transaction. A token can be rotated at most once.
// Returns the new refresh token and the user ID.
func (s *RefreshStore) RotateRefreshToken(ctx context.Context, rawToken string) (token string, userID uint, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt model.RefreshToken
		if err := tx.Where("token_hash = ?", hashToken(rawToken)).First(&rt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRefreshTokenInvalid
			}
			return fmt.Errorf("find refresh token: %w", err)
		}
		if rt.RevokedAt != nil || time.Now().After(rt.ExpiresAt) {
			return ErrRefreshTokenInvalid
		}

		res := tx.Model(&model.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", rt.ID).
			Update("revoked_at", time.Now())
		if res.Error != nil {
			return fmt.Errorf("revoke old refresh token: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRefreshTokenInvalid
		}

		newRaw, err := s.issue(tx, rt.UserID)
		if err != nil {
			return err
		}
		token, userID = newRaw, rt.UserID
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return token, userID, nil
}

// RevokeRefreshToken marks the given token as revoked.
func (s *RefreshStore) RevokeRefreshToken(ctx context.Context, rawToken string) error {
	return s.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hashToken(rawToken)).
		Update("revoked_at", time.Now()).Error
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
