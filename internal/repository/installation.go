package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
)

// InstallationRepo persists activated installations keyed by IPv4 address.
type InstallationRepo struct {
	db *gorm.DB
}

func (r *InstallationRepo) Create(ctx context.Context, ins *models.Installation) error {
	return r.db.WithContext(ctx).Create(ins).Error
}

func (r *InstallationRepo) GetAll(ctx context.Context) ([]models.Installation, error) {
	var installations []models.Installation
	err := r.db.WithContext(ctx).Order("id DESC").Find(&installations).Error
	return installations, err
}

func (r *InstallationRepo) GetByIPv4(ctx context.Context, ipv4 string) (*models.Installation, error) {
	var ins models.Installation
	err := r.db.WithContext(ctx).Where("ipv4 = ?", ipv4).First(&ins).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *InstallationRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Installation{}, id).Error
}
