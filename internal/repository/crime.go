package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

var crimeSearchCols = []string{
	"type_of_crime", "section_of_law", "mob_file_no", "hs_no",
	"police_station", "fir_no", "crime_group", "crime_head", "crime_class",
	"brief_fact", "languages_known", "languages_used", "place_attacked",
	"tools_used", "trade_marks", "gang_strength",
}

// CrimeRepo persists Crime records. Reads preload the linked criminals so
// exports can flatten their ids and names.
type CrimeRepo struct {
	db *gorm.DB
}

func (r *CrimeRepo) Create(ctx context.Context, c *models.Crime) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CrimeRepo) Update(ctx context.Context, id uint, c *models.Crime) error {
	c.ID = id
	return r.db.WithContext(ctx).Model(&models.Crime{ID: id}).Select("*").
		Omit("id", "created_at", "Criminals").Updates(c).Error
}

func (r *CrimeRepo) Paginate(ctx context.Context, p pagination.Params, search string) ([]models.Crime, error) {
	var crimes []models.Crime
	err := r.db.WithContext(ctx).
		Preload("Criminals.Criminal").
		Scopes(searchScope(crimeSearchCols, search), window(p)).
		Order("id DESC").
		Find(&crimes).Error
	return crimes, err
}

func (r *CrimeRepo) GetAll(ctx context.Context, search string) ([]models.Crime, error) {
	var crimes []models.Crime
	err := r.db.WithContext(ctx).
		Preload("Criminals.Criminal").
		Scopes(searchScope(crimeSearchCols, search)).
		Order("id DESC").
		Find(&crimes).Error
	return crimes, err
}

func (r *CrimeRepo) Count(ctx context.Context, search string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Crime{}).
		Scopes(searchScope(crimeSearchCols, search)).
		Count(&n).Error
	return n, err
}

func (r *CrimeRepo) GetByID(ctx context.Context, id uint) (*models.Crime, error) {
	var c models.Crime
	err := r.db.WithContext(ctx).Preload("Criminals.Criminal").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByHsNo looks up a crime by history-sheet number for uniqueness checks.
func (r *CrimeRepo) GetByHsNo(ctx context.Context, hsNo string, excludeID uint) (*models.Crime, error) {
	var c models.Crime
	q := r.db.WithContext(ctx).Where("hs_no = ?", hsNo)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CrimeRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Crime{}, id).Error
}
