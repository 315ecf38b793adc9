package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

var hearingSearchCols = []string{
	"attendance", "judge_name", "action_code", "additional_remarks",
}

// HearingRepo persists Hearing records. Listings can be narrowed to one
// court.
type HearingRepo struct {
	db *gorm.DB
}

func courtFilter(courtID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if courtID != 0 {
			db = db.Where("court_id = ?", courtID)
		}
		return db
	}
}

func (r *HearingRepo) Create(ctx context.Context, h *models.Hearing) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HearingRepo) Update(ctx context.Context, id uint, h *models.Hearing) error {
	h.ID = id
	return r.db.WithContext(ctx).Model(&models.Hearing{ID: id}).Select("*").
		Omit("id", "created_at", "Court").Updates(h).Error
}

func (r *HearingRepo) Paginate(ctx context.Context, p pagination.Params, search string, courtID uint) ([]models.Hearing, error) {
	var hearings []models.Hearing
	err := r.db.WithContext(ctx).
		Scopes(searchScope(hearingSearchCols, search), courtFilter(courtID), window(p)).
		Order("id DESC").
		Find(&hearings).Error
	return hearings, err
}

func (r *HearingRepo) GetAll(ctx context.Context, search string, courtID uint) ([]models.Hearing, error) {
	var hearings []models.Hearing
	err := r.db.WithContext(ctx).
		Scopes(searchScope(hearingSearchCols, search), courtFilter(courtID)).
		Order("id DESC").
		Find(&hearings).Error
	return hearings, err
}

func (r *HearingRepo) Count(ctx context.Context, search string, courtID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Hearing{}).
		Scopes(searchScope(hearingSearchCols, search), courtFilter(courtID)).
		Count(&n).Error
	return n, err
}

func (r *HearingRepo) GetByID(ctx context.Context, id uint) (*models.Hearing, error) {
	var h models.Hearing
	err := r.db.WithContext(ctx).First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HearingRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Hearing{}, id).Error
}
