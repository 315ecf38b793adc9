package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

// Jail search includes the detained criminal's name through one join.
var jailSearchCols = []string{
	"jails.law_section", "jails.police_station", "jails.jail_name",
	"jails.jail_code", "jails.prisoner_id", "jails.prisoner_type",
	"jails.ward", "jails.barrack", "jails.register_no",
	"jails.period_undergone", "jails.utp_no", "jails.jail_visitor_detail",
	"jails.visitor_relationship", "jails.additional_remarks",
	"criminals.name",
}

// JailRepo persists Jail records.
type JailRepo struct {
	db *gorm.DB
}

func (r *JailRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Jail{}).
		Joins("LEFT JOIN criminals ON criminals.id = jails.criminal_id")
}

func (r *JailRepo) Create(ctx context.Context, j *models.Jail) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JailRepo) Update(ctx context.Context, id uint, j *models.Jail) error {
	j.ID = id
	return r.db.WithContext(ctx).Model(&models.Jail{ID: id}).Select("*").
		Omit("id", "created_at", "Accused", "Crime").Updates(j).Error
}

func (r *JailRepo) Paginate(ctx context.Context, p pagination.Params, search string) ([]models.Jail, error) {
	var jails []models.Jail
	err := r.joined(ctx).
		Scopes(searchScope(jailSearchCols, search), window(p)).
		Preload("Accused").Preload("Crime").
		Order("jails.id DESC").
		Find(&jails).Error
	return jails, err
}

func (r *JailRepo) GetAll(ctx context.Context, search string) ([]models.Jail, error) {
	var jails []models.Jail
	err := r.joined(ctx).
		Scopes(searchScope(jailSearchCols, search)).
		Preload("Accused").Preload("Crime").
		Order("jails.id DESC").
		Find(&jails).Error
	return jails, err
}

func (r *JailRepo) Count(ctx context.Context, search string) (int64, error) {
	var n int64
	err := r.joined(ctx).
		Scopes(searchScope(jailSearchCols, search)).
		Count(&n).Error
	return n, err
}

func (r *JailRepo) GetByID(ctx context.Context, id uint) (*models.Jail, error) {
	var j models.Jail
	err := r.db.WithContext(ctx).Preload("Accused").Preload("Crime").First(&j, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JailRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Jail{}, id).Error
}
