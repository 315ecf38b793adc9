package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

var visitorSearchCols = []string{"name", "relation", "additional_remarks"}

// VisitorRepo persists jail visit log entries. Listings can be narrowed to
// one jail record.
type VisitorRepo struct {
	db *gorm.DB
}

func jailFilter(jailID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if jailID != 0 {
			db = db.Where("jail_id = ?", jailID)
		}
		return db
	}
}

func (r *VisitorRepo) Create(ctx context.Context, v *models.Visitor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VisitorRepo) Update(ctx context.Context, id uint, v *models.Visitor) error {
	v.ID = id
	return r.db.WithContext(ctx).Model(&models.Visitor{ID: id}).Select("*").
		Omit("id", "created_at", "Jail").Updates(v).Error
}

func (r *VisitorRepo) Paginate(ctx context.Context, p pagination.Params, search string, jailID uint) ([]models.Visitor, error) {
	var visitors []models.Visitor
	err := r.db.WithContext(ctx).
		Scopes(searchScope(visitorSearchCols, search), jailFilter(jailID), window(p)).
		Order("id DESC").
		Find(&visitors).Error
	return visitors, err
}

func (r *VisitorRepo) GetAll(ctx context.Context, search string, jailID uint) ([]models.Visitor, error) {
	var visitors []models.Visitor
	err := r.db.WithContext(ctx).
		Scopes(searchScope(visitorSearchCols, search), jailFilter(jailID)).
		Order("id DESC").
		Find(&visitors).Error
	return visitors, err
}

func (r *VisitorRepo) Count(ctx context.Context, search string, jailID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Visitor{}).
		Scopes(searchScope(visitorSearchCols, search), jailFilter(jailID)).
		Count(&n).Error
	return n, err
}

func (r *VisitorRepo) GetByID(ctx context.Context, id uint) (*models.Visitor, error) {
	var v models.Visitor
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VisitorRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Visitor{}, id).Error
}
