package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

// criminalSearchCols are the text columns matched by free-text search.
var criminalSearchCols = []string{
	"name", "permanent_address", "present_address", "phone", "aadhar_no",
	"father_name", "mother_name", "spouse_name", "religion", "caste",
	"fpb_sl_no", "fpb_classn_no", "occupation", "educational_qualification",
	"native_ps", "native_district", "voice", "build", "complexion", "teeth",
	"hair", "eyes", "habbits", "burn_marks", "tattoo", "mole", "scar",
	"leucoderma", "face_head", "other_parts_body", "dress_used", "beard",
	"face", "moustache", "nose",
}

// CriminalRepo persists Criminal records.
type CriminalRepo struct {
	db *gorm.DB
}

func (r *CriminalRepo) Create(ctx context.Context, c *models.Criminal) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CriminalRepo) Update(ctx context.Context, id uint, c *models.Criminal) error {
	c.ID = id
	return r.db.WithContext(ctx).Model(&models.Criminal{ID: id}).Select("*").
		Omit("id", "created_at").Updates(c).Error
}

func (r *CriminalRepo) Paginate(ctx context.Context, p pagination.Params, search string) ([]models.Criminal, error) {
	var criminals []models.Criminal
	err := r.db.WithContext(ctx).
		Scopes(searchScope(criminalSearchCols, search), window(p)).
		Order("id DESC").
		Find(&criminals).Error
	return criminals, err
}

func (r *CriminalRepo) GetAll(ctx context.Context, search string) ([]models.Criminal, error) {
	var criminals []models.Criminal
	err := r.db.WithContext(ctx).
		Scopes(searchScope(criminalSearchCols, search)).
		Order("id DESC").
		Find(&criminals).Error
	return criminals, err
}

func (r *CriminalRepo) Count(ctx context.Context, search string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Criminal{}).
		Scopes(searchScope(criminalSearchCols, search)).
		Count(&n).Error
	return n, err
}

func (r *CriminalRepo) GetByID(ctx context.Context, id uint) (*models.Criminal, error) {
	var c models.Criminal
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByAadhar looks up a criminal by aadhar number, used for uniqueness
// checks. excludeID skips the record being updated; pass 0 on create.
func (r *CriminalRepo) GetByAadhar(ctx context.Context, aadharNo string, excludeID uint) (*models.Criminal, error) {
	var c models.Criminal
	q := r.db.WithContext(ctx).Where("aadhar_no = ?", aadharNo)
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

func (r *CriminalRepo) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Criminal{}, id).Error
}
