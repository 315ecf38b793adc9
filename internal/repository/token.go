package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
)

// TokenRepo persists server-side session references. A signed JWT is only
// honored while its row exists here.
type TokenRepo struct {
	db *gorm.DB
}

func (r *TokenRepo) Insert(ctx context.Context, token string, userID uint) error {
	return r.db.WithContext(ctx).Create(&models.Token{Token: token, UserID: userID}).Error
}

// Get returns the stored token row for a (token, user) pair, or nil when the
// session has been revoked.
func (r *TokenRepo) Get(ctx context.Context, token string, userID uint) (*models.Token, error) {
	var t models.Token
	err := r.db.WithContext(ctx).
		Where("token = ? AND user_id = ?", token, userID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete revokes a session.
func (r *TokenRepo) Delete(ctx context.Context, token string, userID uint) error {
	return r.db.WithContext(ctx).
		Where("token = ? AND user_id = ?", token, userID).
		Delete(&models.Token{}).Error
}

// DeleteForUser revokes every session of a user, used when an account is
// blocked or removed.
func (r *TokenRepo) DeleteForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Token{}).Error
}

// DeleteOlderThan prunes rows created before the cutoff. The JWT itself has
// already expired by then; the row is just garbage.
func (r *TokenRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.Token{}).Error
}
