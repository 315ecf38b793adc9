package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

var userSearchCols = []string{"name", "email", "role", "status"}

// UserRepo persists operator accounts.
type UserRepo struct {
	db *gorm.DB
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) Update(ctx context.Context, id uint, u *models.User) error {
	u.ID = id
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Select("*").
		Omit("id", "created_at").Updates(u).Error
}

// UpdatePassword replaces the stored hash and clears any reset key.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).
		Updates(map[string]any{"password": hash, "key": nil}).Error
}

// SetResetKey stores the one-time password-reset key for a user.
func (r *UserRepo) SetResetKey(ctx context.Context, id uint, key string) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).
		Update("key", key).Error
}

func (r *UserRepo) Paginate(ctx context.Context, p pagination.Params, search string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Scopes(searchScope(userSearchCols, search), window(p)).
		Order("id DESC").
		Find(&users).Error
	return users, err
}

func (r *UserRepo) GetAll(ctx context.Context, search string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Scopes(searchScope(userSearchCols, search)).
		Order("id DESC").
		Find(&users).Error
	return users, err
}

func (r *UserRepo) Count(ctx context.Context, search string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Scopes(searchScope(userSearchCols, search)).
		Count(&n).Error
	return n, err
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string, excludeID uint) (*models.User, error) {
	var u models.User
	q := r.db.WithContext(ctx).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByKey finds the user holding a password-reset key.
func (r *UserRepo) GetByKey(ctx context.Context, key string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}
