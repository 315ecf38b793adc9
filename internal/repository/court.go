package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

// Court search includes the accused criminal's name through one join.
var courtSearchCols = []string{
	"courts.court_name", "courts.cc_sc_no", "courts.ps_name",
	"courts.attendance", "courts.lawyer_name", "courts.lawyer_contact",
	"courts.surety_provider_detail", "courts.surety_provider_contact",
	"courts.stage_of_case", "criminals.name",
}

// CourtRepo persists Court records. Reads preload the accused criminal and
// the crime so list responses and exports can flatten them.
type CourtRepo struct {
	db *gorm.DB
}

func (r *CourtRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Court{}).
		Joins("LEFT JOIN criminals ON criminals.id = courts.criminal_id")
}

func (r *CourtRepo) Create(ctx context.Context, c *models.Court) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourtRepo) Update(ctx context.Context, id uint, c *models.Court) error {
	c.ID = id
	return r.db.WithContext(ctx).Model(&models.Court{ID: id}).Select("*").
		Omit("id", "created_at", "Accused", "Crime").Updates(c).Error
}

func (r *CourtRepo) Paginate(ctx context.Context, p pagination.Params, search string) ([]models.Court, error) {
	var courts []models.Court
	err := r.joined(ctx).
		Scopes(searchScope(courtSearchCols, search), window(p)).
		Preload("Accused").Preload("Crime").
		Order("courts.id DESC").
		Find(&courts).Error
	return courts, err
}

func (r *CourtRepo) GetAll(ctx context.Context, search string) ([]models.Court, error) {
	var courts []models.Court
	err := r.joined(ctx).
		Scopes(searchScope(courtSearchCols, search)).
		Preload("Accused").Preload("Crime").
		Order("courts.id DESC").
		Find(&courts).Error
	return courts, err
}

func (r *CourtRepo) Count(ctx context.Context, search string) (int64, error) {
	var n int64
	err := r.joined(ctx).
		Scopes(searchScope(courtSearchCols, search)).
		Count(&n).Error
	return n, err
}

func (r *CourtRepo) GetByID(ctx context.Context, id uint) (*models.Court, error) {
	var c models.Court
	err := r.db.WithContext(ctx).Preload("Accused").Preload("Crime").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourtRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Court{}, id).Error
}
