package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

// Join-table search spans the link's own columns plus one hop into the
// related criminal and crime, so columns are qualified.
var crimeByCriminalSearchCols = []string{
	"crimes_by_criminals.aliases", "crimes_by_criminals.age_while_opening",
	"crimes_by_criminals.crime_arrest_order",
	"criminals.name", "crimes.type_of_crime", "crimes.section_of_law",
}

// LinkFilter narrows join-table listings to one side of the relation.
// Zero values mean no filter.
type LinkFilter struct {
	CrimeID    uint
	CriminalID uint
}

func (f LinkFilter) scope(db *gorm.DB) *gorm.DB {
	if f.CrimeID != 0 {
		db = db.Where("crimes_by_criminals.crime_id = ?", f.CrimeID)
	}
	if f.CriminalID != 0 {
		db = db.Where("crimes_by_criminals.criminal_id = ?", f.CriminalID)
	}
	return db
}

// CrimeByCriminalRepo persists the crime-criminal links.
type CrimeByCriminalRepo struct {
	db *gorm.DB
}

func (r *CrimeByCriminalRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.CrimeByCriminal{}).
		Joins("LEFT JOIN criminals ON criminals.id = crimes_by_criminals.criminal_id").
		Joins("LEFT JOIN crimes ON crimes.id = crimes_by_criminals.crime_id")
}

func (r *CrimeByCriminalRepo) Create(ctx context.Context, link *models.CrimeByCriminal) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *CrimeByCriminalRepo) Update(ctx context.Context, id uint, link *models.CrimeByCriminal) error {
	link.ID = id
	return r.db.WithContext(ctx).Model(&models.CrimeByCriminal{ID: id}).Select("*").
		Omit("id", "created_at", "Crime", "Criminal").Updates(link).Error
}

func (r *CrimeByCriminalRepo) Paginate(ctx context.Context, p pagination.Params, search string, filter LinkFilter) ([]models.CrimeByCriminal, error) {
	var links []models.CrimeByCriminal
	err := r.joined(ctx).
		Scopes(searchScope(crimeByCriminalSearchCols, search), filter.scope, window(p)).
		Preload("Crime").Preload("Criminal").
		Order("crimes_by_criminals.id DESC").
		Find(&links).Error
	return links, err
}

func (r *CrimeByCriminalRepo) GetAll(ctx context.Context, search string, filter LinkFilter) ([]models.CrimeByCriminal, error) {
	var links []models.CrimeByCriminal
	err := r.joined(ctx).
		Scopes(searchScope(crimeByCriminalSearchCols, search), filter.scope).
		Preload("Crime").Preload("Criminal").
		Order("crimes_by_criminals.id DESC").
		Find(&links).Error
	return links, err
}

func (r *CrimeByCriminalRepo) Count(ctx context.Context, search string, filter LinkFilter) (int64, error) {
	var n int64
	err := r.joined(ctx).
		Scopes(searchScope(crimeByCriminalSearchCols, search), filter.scope).
		Count(&n).Error
	return n, err
}

func (r *CrimeByCriminalRepo) GetByID(ctx context.Context, id uint) (*models.CrimeByCriminal, error) {
	var link models.CrimeByCriminal
	err := r.db.WithContext(ctx).Preload("Crime").Preload("Criminal").First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetByPair looks up an existing link for the composite key, used to keep
// the crime/criminal pair unique.
func (r *CrimeByCriminalRepo) GetByPair(ctx context.Context, crimeID, criminalID, excludeID uint) (*models.CrimeByCriminal, error) {
	var link models.CrimeByCriminal
	q := r.db.WithContext(ctx).Where("crime_id = ? AND criminal_id = ?", crimeID, criminalID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *CrimeByCriminalRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CrimeByCriminal{}, id).Error
}
