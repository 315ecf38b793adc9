package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/excel"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
	"github.com/crimebase/crimebase/internal/validate"
)

// CriminalInput carries the writable fields of a criminal record. Dates
// arrive as strings and are parsed during shape validation.
type CriminalInput struct {
	Name                     string  `json:"name"`
	Sex                      string  `json:"sex"`
	Dob                      string  `json:"dob"`
	PermanentAddress         *string `json:"permanent_address"`
	PresentAddress           *string `json:"present_address"`
	Phone                    *string `json:"phone"`
	AadharNo                 *string `json:"aadhar_no"`
	FatherName               *string `json:"father_name"`
	MotherName               *string `json:"mother_name"`
	SpouseName               *string `json:"spouse_name"`
	Religion                 *string `json:"religion"`
	Caste                    *string `json:"caste"`
	FpbSlNo                  *string `json:"fpb_sl_no"`
	FpbClassnNo              *string `json:"fpb_classn_no"`
	Occupation               *string `json:"occupation"`
	EducationalQualification *string `json:"educational_qualification"`
	NativePs                 *string `json:"native_ps"`
	NativeDistrict           *string `json:"native_district"`
	Voice                    *string `json:"voice"`
	Build                    *string `json:"build"`
	Complexion               *string `json:"complexion"`
	Teeth                    *string `json:"teeth"`
	Hair                     *string `json:"hair"`
	Eyes                     *string `json:"eyes"`
	Habits                   *string `json:"habbits"`
	BurnMarks                *string `json:"burnMarks"`
	Tattoo                   *string `json:"tattoo"`
	Mole                     *string `json:"mole"`
	Scar                     *string `json:"scar"`
	Leucoderma               *string `json:"leucoderma"`
	FaceHead                 *string `json:"faceHead"`
	OtherPartsBody           *string `json:"otherPartsBody"`
	DressUsed                *string `json:"dressUsed"`
	Beard                    *string `json:"beard"`
	Face                     *string `json:"face"`
	Moustache                *string `json:"moustache"`
	Nose                     *string `json:"nose"`
}

// criminalExportCols is the fixed export header order.
var criminalExportCols = []excel.Column{
	{Key: "id", Header: "ID"},
	{Key: "name", Header: "Name"},
	{Key: "sex", Header: "Sex"},
	{Key: "dob", Header: "Date Of Birth"},
	{Key: "permanent_address", Header: "Permanent Address"},
	{Key: "present_address", Header: "Present Address"},
	{Key: "phone", Header: "Phone"},
	{Key: "aadhar_no", Header: "Aadhar No."},
	{Key: "father_name", Header: "Father Name"},
	{Key: "mother_name", Header: "Mother Name"},
	{Key: "spouse_name", Header: "Spouse Name"},
	{Key: "religion", Header: "Religion"},
	{Key: "caste", Header: "Caste"},
	{Key: "fpb_sl_no", Header: "FPB Sl.No"},
	{Key: "fpb_classn_no", Header: "FPB Classn.No"},
	{Key: "occupation", Header: "Occupation"},
	{Key: "educational_qualification", Header: "Educational Qualification"},
	{Key: "native_ps", Header: "Native PS"},
	{Key: "native_district", Header: "Native District"},
	{Key: "voice", Header: "Voice"},
	{Key: "build", Header: "Build"},
	{Key: "complexion", Header: "Complexion"},
	{Key: "teeth", Header: "Teeth"},
	{Key: "hair", Header: "Hair"},
	{Key: "eyes", Header: "Eyes"},
	{Key: "habbits", Header: "Habbits"},
	{Key: "burnMarks", Header: "Burn Marks"},
	{Key: "tattoo", Header: "Tattoo"},
	{Key: "mole", Header: "Mole"},
	{Key: "scar", Header: "Scar"},
	{Key: "leucoderma", Header: "Leucoderma"},
	{Key: "faceHead", Header: "Face/Head"},
	{Key: "otherPartsBody", Header: "Other Parts Of Body"},
	{Key: "dressUsed", Header: "Dress Used"},
	{Key: "beard", Header: "Beard"},
	{Key: "face", Header: "Face"},
	{Key: "moustache", Header: "Moustache"},
	{Key: "nose", Header: "Nose"},
}

// criminalFailedCols is the failure-report order: the import columns plus
// the trailing error column.
var criminalFailedCols = append(criminalImportCols(), excel.Column{Key: "error", Header: "Error"})

func criminalImportCols() []excel.Column {
	// Import sheets carry only the biographic fields, positions fixed.
	return []excel.Column{
		{Key: "name", Header: "Name"},
		{Key: "sex", Header: "Sex"},
		{Key: "dob", Header: "Date Of Birth"},
		{Key: "permanent_address", Header: "Permanent Address"},
		{Key: "present_address", Header: "Present Address"},
		{Key: "phone", Header: "Phone"},
		{Key: "aadhar_no", Header: "Aadhar No."},
		{Key: "father_name", Header: "Father Name"},
		{Key: "mother_name", Header: "Mother Name"},
		{Key: "spouse_name", Header: "Spouse Name"},
		{Key: "religion", Header: "Religion"},
		{Key: "caste", Header: "Caste"},
		{Key: "fpb_sl_no", Header: "FPB Sl.No"},
		{Key: "fpb_classn_no", Header: "FPB Classn.No"},
		{Key: "occupation", Header: "Occupation"},
		{Key: "educational_qualification", Header: "Educational Qualification"},
		{Key: "native_ps", Header: "Native PS"},
		{Key: "native_district", Header: "Native District"},
	}
}

// criminalFromInput runs shape validation and builds the model. Referential
// checks are separate so import and create share them explicitly.
func criminalFromInput(in CriminalInput) (*models.Criminal, error) {
	c := validate.New()
	c.Require("name", in.Name, "Name")
	c.Enum("sex", in.Sex, []string{models.SexMale, models.SexFemale, models.SexOthers}, false)
	dob := c.Date("dob", in.Dob)
	c.Digits("phone", in.Phone)
	c.MaxLen("phone", in.Phone, 256)
	c.MaxLen("aadhar_no", in.AadharNo, 256)
	c.MaxLen("father_name", in.FatherName, 256)
	c.MaxLen("mother_name", in.MotherName, 256)
	c.MaxLen("spouse_name", in.SpouseName, 256)
	c.MaxLen("religion", in.Religion, 256)
	c.MaxLen("caste", in.Caste, 256)
	c.MaxLen("fpb_sl_no", in.FpbSlNo, 256)
	c.MaxLen("fpb_classn_no", in.FpbClassnNo, 256)
	c.MaxLen("occupation", in.Occupation, 256)
	c.MaxLen("native_ps", in.NativePs, 256)
	c.MaxLen("native_district", in.NativeDistrict, 256)
	if err := c.Err(); err != nil {
		return nil, err
	}

	return &models.Criminal{
		Name:                     in.Name,
		Sex:                      in.Sex,
		Dob:                      dob,
		PermanentAddress:         in.PermanentAddress,
		PresentAddress:           in.PresentAddress,
		Phone:                    in.Phone,
		AadharNo:                 in.AadharNo,
		FatherName:               in.FatherName,
		MotherName:               in.MotherName,
		SpouseName:               in.SpouseName,
		Religion:                 in.Religion,
		Caste:                    in.Caste,
		FpbSlNo:                  in.FpbSlNo,
		FpbClassnNo:              in.FpbClassnNo,
		Occupation:               in.Occupation,
		EducationalQualification: in.EducationalQualification,
		NativePs:                 in.NativePs,
		NativeDistrict:           in.NativeDistrict,
		Voice:                    in.Voice,
		Build:                    in.Build,
		Complexion:               in.Complexion,
		Teeth:                    in.Teeth,
		Hair:                     in.Hair,
		Eyes:                     in.Eyes,
		Habits:                   in.Habits,
		BurnMarks:                in.BurnMarks,
		Tattoo:                   in.Tattoo,
		Mole:                     in.Mole,
		Scar:                     in.Scar,
		Leucoderma:               in.Leucoderma,
		FaceHead:                 in.FaceHead,
		OtherPartsBody:           in.OtherPartsBody,
		DressUsed:                in.DressUsed,
		Beard:                    in.Beard,
		Face:                     in.Face,
		Moustache:                in.Moustache,
		Nose:                     in.Nose,
	}, nil
}

// checkCriminalRefs runs the referential phase: aadhar number uniqueness.
func (s *Service) checkCriminalRefs(ctx context.Context, in CriminalInput, excludeID uint) error {
	fe := apperr.FieldErrors{}
	if in.AadharNo != nil && *in.AadharNo != "" {
		existing, err := s.repos.Criminals.GetByAadhar(ctx, *in.AadharNo, excludeID)
		if err != nil {
			return err
		}
		if existing != nil {
			fe.Add("aadhar_no", "Aadhar number is already taken")
		}
	}
	return apperr.Validation(fe)
}

// CreateCriminal validates and persists a new criminal, storing uploaded
// photos under generated filenames.
func (s *Service) CreateCriminal(ctx context.Context, in CriminalInput, photo, aadharPhoto *multipart.FileHeader, userID uint) (*models.Criminal, error) {
	criminal, err := criminalFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkCriminalRefs(ctx, in, 0); err != nil {
		return nil, err
	}

	if aadharPhoto != nil {
		name, err := s.photos.SaveUpload(aadharPhoto)
		if err != nil {
			return nil, err
		}
		criminal.AadharPhoto = &name
	}
	if photo != nil {
		name, err := s.photos.SaveUpload(photo)
		if err != nil {
			return nil, err
		}
		criminal.Photo = &name
	}
	if userID != 0 {
		criminal.CreatedBy = &userID
	}

	if err := s.repos.Criminals.Create(ctx, criminal); err != nil {
		return nil, err
	}
	return criminal, nil
}

// UpdateCriminal validates and persists changes to a criminal. A newly
// uploaded photo replaces and deletes the previous file; otherwise the
// stored filename is kept.
func (s *Service) UpdateCriminal(ctx context.Context, id uint, in CriminalInput, photo, aadharPhoto *multipart.FileHeader) (*models.Criminal, error) {
	existing, err := s.repos.Criminals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Criminal not found")
	}

	criminal, err := criminalFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkCriminalRefs(ctx, in, id); err != nil {
		return nil, err
	}

	criminal.AadharPhoto = existing.AadharPhoto
	criminal.Photo = existing.Photo
	criminal.CreatedBy = existing.CreatedBy

	if aadharPhoto != nil {
		name, err := s.photos.SaveUpload(aadharPhoto)
		if err != nil {
			return nil, err
		}
		if existing.AadharPhoto != nil {
			_ = s.photos.Remove(*existing.AadharPhoto)
		}
		criminal.AadharPhoto = &name
	}
	if photo != nil {
		name, err := s.photos.SaveUpload(photo)
		if err != nil {
			return nil, err
		}
		if existing.Photo != nil {
			_ = s.photos.Remove(*existing.Photo)
		}
		criminal.Photo = &name
	}

	if err := s.repos.Criminals.Update(ctx, id, criminal); err != nil {
		return nil, err
	}
	return s.repos.Criminals.GetByID(ctx, id)
}

// GetCriminal fetches one criminal or a NotFoundError.
func (s *Service) GetCriminal(ctx context.Context, id uint) (*models.Criminal, error) {
	criminal, err := s.repos.Criminals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if criminal == nil {
		return nil, apperr.NotFound("Criminal not found")
	}
	return criminal, nil
}

// ListCriminals returns one page plus pagination metadata.
func (s *Service) ListCriminals(ctx context.Context, page, limit int, search string) ([]models.Criminal, pagination.Meta, error) {
	criminals, err := s.repos.Criminals.Paginate(ctx, pagination.ParamsFor(page, limit), search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repos.Criminals.Count(ctx, search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return criminals, pagination.MetaFor(total, page, limit), nil
}

// DeleteCriminal hard-deletes the record and removes stored photos.
func (s *Service) DeleteCriminal(ctx context.Context, id uint) (*models.Criminal, error) {
	criminal, err := s.GetCriminal(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Criminals.Remove(ctx, id); err != nil {
		return nil, err
	}
	if criminal.AadharPhoto != nil {
		_ = s.photos.Remove(*criminal.AadharPhoto)
	}
	if criminal.Photo != nil {
		_ = s.photos.Remove(*criminal.Photo)
	}
	return criminal, nil
}

// ExportCriminals serializes all matching criminals to a workbook.
func (s *Service) ExportCriminals(ctx context.Context, search string) (*bytes.Buffer, error) {
	criminals, err := s.repos.Criminals.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}

	rows := make([]excel.Row, 0, len(criminals))
	for i := range criminals {
		rows = append(rows, criminalExportRow(&criminals[i]))
	}
	return excel.Build("Criminals", criminalExportCols, rows)
}

func criminalExportRow(c *models.Criminal) excel.Row {
	return excel.Row{
		"id":                        c.ID,
		"name":                      c.Name,
		"sex":                       c.Sex,
		"dob":                       c.Dob,
		"permanent_address":         c.PermanentAddress,
		"present_address":           c.PresentAddress,
		"phone":                     c.Phone,
		"aadhar_no":                 c.AadharNo,
		"father_name":               c.FatherName,
		"mother_name":               c.MotherName,
		"spouse_name":               c.SpouseName,
		"religion":                  c.Religion,
		"caste":                     c.Caste,
		"fpb_sl_no":                 c.FpbSlNo,
		"fpb_classn_no":             c.FpbClassnNo,
		"occupation":                c.Occupation,
		"educational_qualification": c.EducationalQualification,
		"native_ps":                 c.NativePs,
		"native_district":           c.NativeDistrict,
		"voice":                     c.Voice,
		"build":                     c.Build,
		"complexion":                c.Complexion,
		"teeth":                     c.Teeth,
		"hair":                      c.Hair,
		"eyes":                      c.Eyes,
		"habbits":                   c.Habits,
		"burnMarks":                 c.BurnMarks,
		"tattoo":                    c.Tattoo,
		"mole":                      c.Mole,
		"scar":                      c.Scar,
		"leucoderma":                c.Leucoderma,
		"faceHead":                  c.FaceHead,
		"otherPartsBody":            c.OtherPartsBody,
		"dressUsed":                 c.DressUsed,
		"beard":                     c.Beard,
		"face":                      c.Face,
		"moustache":                 c.Moustache,
		"nose":                      c.Nose,
	}
}

type criminalImportRow struct {
	in    CriminalInput
	model *models.Criminal
}

// ImportCriminals runs the bulk import pipeline over an uploaded workbook.
func (s *Service) ImportCriminals(ctx context.Context, r io.Reader, userID uint) (*ImportResult, error) {
	return runImport(ctx, r, s.cfg.Uploads.FailedDir, importSpec[*criminalImportRow]{
		failedSheet: "Failed Criminals Import",
		failedCols:  criminalFailedCols,
		mapRow: func(row []string) *criminalImportRow {
			return &criminalImportRow{in: CriminalInput{
				Name:                     excel.Cell(row, 0),
				Sex:                      excel.Cell(row, 1),
				Dob:                      excel.Cell(row, 2),
				PermanentAddress:         optStr(excel.Cell(row, 3)),
				PresentAddress:           optStr(excel.Cell(row, 4)),
				Phone:                    optStr(excel.Cell(row, 5)),
				AadharNo:                 optStr(excel.Cell(row, 6)),
				FatherName:               optStr(excel.Cell(row, 7)),
				MotherName:               optStr(excel.Cell(row, 8)),
				SpouseName:               optStr(excel.Cell(row, 9)),
				Religion:                 optStr(excel.Cell(row, 10)),
				Caste:                    optStr(excel.Cell(row, 11)),
				FpbSlNo:                  optStr(excel.Cell(row, 12)),
				FpbClassnNo:              optStr(excel.Cell(row, 13)),
				Occupation:               optStr(excel.Cell(row, 14)),
				EducationalQualification: optStr(excel.Cell(row, 15)),
				NativePs:                 optStr(excel.Cell(row, 16)),
				NativeDistrict:           optStr(excel.Cell(row, 17)),
			}}
		},
		validate: func(ctx context.Context, row *criminalImportRow) error {
			model, err := criminalFromInput(row.in)
			if err != nil {
				return err
			}
			if err := s.checkCriminalRefs(ctx, row.in, 0); err != nil {
				return err
			}
			if userID != 0 {
				model.CreatedBy = &userID
			}
			row.model = model
			return nil
		},
		insert: func(ctx context.Context, row *criminalImportRow) error {
			return s.repos.Criminals.Create(ctx, row.model)
		},
		failedRow: func(row *criminalImportRow, errMsg string) excel.Row {
			return excel.Row{
				"name":                      row.in.Name,
				"sex":                       row.in.Sex,
				"dob":                       row.in.Dob,
				"permanent_address":         row.in.PermanentAddress,
				"present_address":           row.in.PresentAddress,
				"phone":                     row.in.Phone,
				"aadhar_no":                 row.in.AadharNo,
				"father_name":               row.in.FatherName,
				"mother_name":               row.in.MotherName,
				"spouse_name":               row.in.SpouseName,
				"religion":                  row.in.Religion,
				"caste":                     row.in.Caste,
				"fpb_sl_no":                 row.in.FpbSlNo,
				"fpb_classn_no":             row.in.FpbClassnNo,
				"occupation":                row.in.Occupation,
				"educational_qualification": row.in.EducationalQualification,
				"native_ps":                 row.in.NativePs,
				"native_district":           row.in.NativeDistrict,
				"error":                     errMsg,
			}
		},
	})
}
