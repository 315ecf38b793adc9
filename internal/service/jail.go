package service

import (
	"bytes"
	"context"
	"io"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/excel"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
	"github.com/crimebase/crimebase/internal/validate"
)

// JailInput carries the writable fields of a detention record. The accused
// and the crime are both mandatory and must already be linked.
type JailInput struct {
	LawSection          *string `json:"lawSection"`
	PoliceStation       *string `json:"policeStation"`
	JailName            *string `json:"jailName"`
	JailID              *string `json:"jailId"`
	PrisonerID          *string `json:"prisonerId"`
	PrisonerType        *string `json:"prisonerType"`
	Ward                *string `json:"ward"`
	Barrack             *string `json:"barrack"`
	RegisterNo          *string `json:"registerNo"`
	PeriodUndergone     *string `json:"periodUndergone"`
	FirstAdmissionDate  string  `json:"firstAdmissionDate"`
	JailEntryDate       string  `json:"jailEntryDate"`
	JailReleaseDate     string  `json:"jailReleaseDate"`
	UtpNo               *string `json:"utpNo"`
	JailVisitorDetail   *string `json:"jailVisitorDetail"`
	VisitorRelationship *string `json:"visitorRelationship"`
	AdditionalRemarks   *string `json:"additionalRemarks"`
	CriminalID          uint    `json:"criminalId"`
	CrimeID             uint    `json:"crimeId"`
}

var jailExportCols = []excel.Column{
	{Key: "id", Header: "ID"},
	{Key: "lawSection", Header: "Law Section"},
	{Key: "policeStation", Header: "Police Station"},
	{Key: "firstAdmissionDate", Header: "First Admission Date"},
	{Key: "jailEntryDate", Header: "Jail Entry Date"},
	{Key: "jailReleaseDate", Header: "Jail Release Date"},
	{Key: "utpNo", Header: "UTP No."},
	{Key: "jailName", Header: "Jail Name"},
	{Key: "jailId", Header: "Jail Id"},
	{Key: "prisonerId", Header: "Prisoner Id"},
	{Key: "prisonerType", Header: "Prisoner Type"},
	{Key: "ward", Header: "Ward"},
	{Key: "barrack", Header: "Barrack"},
	{Key: "registerNo", Header: "Register No."},
	{Key: "periodUndergone", Header: "Period Undergone"},
	{Key: "additionalRemarks", Header: "Additional Remarks"},
	{Key: "criminalId", Header: "Criminal Id"},
	{Key: "accused_name", Header: "Accused Name"},
	{Key: "crimeId", Header: "Crime Id"},
	{Key: "crime_typeOfCrime", Header: "Type Of Crime"},
	{Key: "crime_sectionOfLaw", Header: "Section Of Law"},
	{Key: "crime_mobFileNo", Header: "Mob File No"},
	{Key: "crime_hsNo", Header: "HS No"},
	{Key: "crime_hsOpeningDate", Header: "HS Opening Date"},
	{Key: "crime_hsClosingDate", Header: "HS Closing Date"},
}

var jailFailedCols = []excel.Column{
	{Key: "lawSection", Header: "Law Section"},
	{Key: "policeStation", Header: "Police Station"},
	{Key: "jailName", Header: "Jail Name"},
	{Key: "jailId", Header: "Jail Id"},
	{Key: "prisonerId", Header: "Prisoner Id"},
	{Key: "prisonerType", Header: "Prisoner Type"},
	{Key: "ward", Header: "Ward"},
	{Key: "barrack", Header: "Barrack"},
	{Key: "registerNo", Header: "Register No."},
	{Key: "periodUndergone", Header: "Period Undergone"},
	{Key: "firstAdmissionDate", Header: "First Admission Date"},
	{Key: "jailEntryDate", Header: "Jail Entry Date"},
	{Key: "jailReleaseDate", Header: "Jail Release Date"},
	{Key: "utpNo", Header: "UTP No."},
	{Key: "additionalRemarks", Header: "Additional Remarks"},
	{Key: "criminalId", Header: "Criminal Id"},
	{Key: "crimeId", Header: "Crime Id"},
	{Key: "error", Header: "Error"},
}

func jailFromInput(in JailInput) (*models.Jail, error) {
	c := validate.New()
	firstAdmission := c.Date("firstAdmissionDate", in.FirstAdmissionDate)
	entryDate := c.Date("jailEntryDate", in.JailEntryDate)
	releaseDate := c.Date("jailReleaseDate", in.JailReleaseDate)
	if in.CriminalID == 0 {
		c.Fail("criminalId", "Criminal Id must be a number")
	}
	if in.CrimeID == 0 {
		c.Fail("crimeId", "Crime Id must be a number")
	}
	c.MaxLen("lawSection", in.LawSection, 256)
	c.MaxLen("policeStation", in.PoliceStation, 256)
	c.MaxLen("jailName", in.JailName, 256)
	c.MaxLen("jailId", in.JailID, 256)
	c.MaxLen("prisonerId", in.PrisonerID, 256)
	c.MaxLen("prisonerType", in.PrisonerType, 256)
	c.MaxLen("ward", in.Ward, 256)
	c.MaxLen("barrack", in.Barrack, 256)
	c.MaxLen("registerNo", in.RegisterNo, 256)
	c.MaxLen("periodUndergone", in.PeriodUndergone, 256)
	c.MaxLen("utpNo", in.UtpNo, 256)
	c.MaxLen("visitorRelationship", in.VisitorRelationship, 256)
	if err := c.Err(); err != nil {
		return nil, err
	}

	criminalID, crimeID := in.CriminalID, in.CrimeID
	return &models.Jail{
		LawSection:          in.LawSection,
		PoliceStation:       in.PoliceStation,
		JailName:            in.JailName,
		JailID:              in.JailID,
		PrisonerID:          in.PrisonerID,
		PrisonerType:        in.PrisonerType,
		Ward:                in.Ward,
		Barrack:             in.Barrack,
		RegisterNo:          in.RegisterNo,
		PeriodUndergone:     in.PeriodUndergone,
		FirstAdmissionDate:  firstAdmission,
		JailEntryDate:       entryDate,
		JailReleaseDate:     releaseDate,
		UtpNo:               in.UtpNo,
		JailVisitorDetail:   in.JailVisitorDetail,
		VisitorRelationship: in.VisitorRelationship,
		AdditionalRemarks:   in.AdditionalRemarks,
		CriminalID:          &criminalID,
		CrimeID:             &crimeID,
	}, nil
}

func (s *Service) CreateJail(ctx context.Context, in JailInput) (*models.Jail, error) {
	jail, err := jailFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccusedPair(ctx, in.CriminalID, in.CrimeID); err != nil {
		return nil, err
	}
	if err := s.repos.Jails.Create(ctx, jail); err != nil {
		return nil, err
	}
	return s.repos.Jails.GetByID(ctx, jail.ID)
}

func (s *Service) UpdateJail(ctx context.Context, id uint, in JailInput) (*models.Jail, error) {
	existing, err := s.repos.Jails.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Jail not found")
	}
	jail, err := jailFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccusedPair(ctx, in.CriminalID, in.CrimeID); err != nil {
		return nil, err
	}
	if err := s.repos.Jails.Update(ctx, id, jail); err != nil {
		return nil, err
	}
	return s.repos.Jails.GetByID(ctx, id)
}

func (s *Service) GetJail(ctx context.Context, id uint) (*models.Jail, error) {
	jail, err := s.repos.Jails.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if jail == nil {
		return nil, apperr.NotFound("Jail not found")
	}
	return jail, nil
}

func (s *Service) ListJails(ctx context.Context, page, limit int, search string) ([]models.Jail, pagination.Meta, error) {
	jails, err := s.repos.Jails.Paginate(ctx, pagination.ParamsFor(page, limit), search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repos.Jails.Count(ctx, search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return jails, pagination.MetaFor(total, page, limit), nil
}

func (s *Service) DeleteJail(ctx context.Context, id uint) (*models.Jail, error) {
	jail, err := s.GetJail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Jails.Remove(ctx, id); err != nil {
		return nil, err
	}
	return jail, nil
}

func (s *Service) ExportJails(ctx context.Context, search string) (*bytes.Buffer, error) {
	jails, err := s.repos.Jails.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}
	rows := make([]excel.Row, 0, len(jails))
	for i := range jails {
		rows = append(rows, jailExportRow(&jails[i]))
	}
	return excel.Build("Jails", jailExportCols, rows)
}

func jailExportRow(j *models.Jail) excel.Row {
	row := excel.Row{
		"id":                 j.ID,
		"lawSection":         j.LawSection,
		"policeStation":      j.PoliceStation,
		"firstAdmissionDate": j.FirstAdmissionDate,
		"jailEntryDate":      j.JailEntryDate,
		"jailReleaseDate":    j.JailReleaseDate,
		"utpNo":              j.UtpNo,
		"jailName":           j.JailName,
		"jailId":             j.JailID,
		"prisonerId":         j.PrisonerID,
		"prisonerType":       j.PrisonerType,
		"ward":               j.Ward,
		"barrack":            j.Barrack,
		"registerNo":         j.RegisterNo,
		"periodUndergone":    j.PeriodUndergone,
		"additionalRemarks":  j.AdditionalRemarks,
		"criminalId":         j.CriminalID,
		"crimeId":            j.CrimeID,
	}
	if j.Accused != nil {
		row["accused_name"] = j.Accused.Name
	}
	if j.Crime != nil {
		row["crime_typeOfCrime"] = j.Crime.TypeOfCrime
		row["crime_sectionOfLaw"] = j.Crime.SectionOfLaw
		row["crime_mobFileNo"] = j.Crime.MobFileNo
		row["crime_hsNo"] = j.Crime.HsNo
		row["crime_hsOpeningDate"] = j.Crime.HsOpeningDate
		row["crime_hsClosingDate"] = j.Crime.HsClosingDate
	}
	return row
}

type jailImportRow struct {
	in                  JailInput
	criminalID, crimeID string
	model               *models.Jail
}

// ImportJails runs the bulk import pipeline over an uploaded workbook.
func (s *Service) ImportJails(ctx context.Context, r io.Reader) (*ImportResult, error) {
	return runImport(ctx, r, s.cfg.Uploads.FailedDir, importSpec[*jailImportRow]{
		failedSheet: "Failed Jails Import",
		failedCols:  jailFailedCols,
		mapRow: func(row []string) *jailImportRow {
			rawCriminal := excel.Cell(row, 15)
			rawCrime := excel.Cell(row, 16)
			in := JailInput{
				LawSection:         optStr(excel.Cell(row, 0)),
				PoliceStation:      optStr(excel.Cell(row, 1)),
				JailName:           optStr(excel.Cell(row, 2)),
				JailID:             optStr(excel.Cell(row, 3)),
				PrisonerID:         optStr(excel.Cell(row, 4)),
				PrisonerType:       optStr(excel.Cell(row, 5)),
				Ward:               optStr(excel.Cell(row, 6)),
				Barrack:            optStr(excel.Cell(row, 7)),
				RegisterNo:         optStr(excel.Cell(row, 8)),
				PeriodUndergone:    optStr(excel.Cell(row, 9)),
				FirstAdmissionDate: excel.Cell(row, 10),
				JailEntryDate:      excel.Cell(row, 11),
				JailReleaseDate:    excel.Cell(row, 12),
				UtpNo:              optStr(excel.Cell(row, 13)),
				AdditionalRemarks:  optStr(excel.Cell(row, 14)),
			}
			if id := parseID(rawCriminal); id != nil {
				in.CriminalID = *id
			}
			if id := parseID(rawCrime); id != nil {
				in.CrimeID = *id
			}
			return &jailImportRow{in: in, criminalID: rawCriminal, crimeID: rawCrime}
		},
		validate: func(ctx context.Context, row *jailImportRow) error {
			model, err := jailFromInput(row.in)
			if err != nil {
				return err
			}
			if err := s.checkAccusedPair(ctx, row.in.CriminalID, row.in.CrimeID); err != nil {
				return err
			}
			row.model = model
			return nil
		},
		insert: func(ctx context.Context, row *jailImportRow) error {
			return s.repos.Jails.Create(ctx, row.model)
		},
		failedRow: func(row *jailImportRow, errMsg string) excel.Row {
			return excel.Row{
				"lawSection":         row.in.LawSection,
				"policeStation":      row.in.PoliceStation,
				"jailName":           row.in.JailName,
				"jailId":             row.in.JailID,
				"prisonerId":         row.in.PrisonerID,
				"prisonerType":       row.in.PrisonerType,
				"ward":               row.in.Ward,
				"barrack":            row.in.Barrack,
				"registerNo":         row.in.RegisterNo,
				"periodUndergone":    row.in.PeriodUndergone,
				"firstAdmissionDate": row.in.FirstAdmissionDate,
				"jailEntryDate":      row.in.JailEntryDate,
				"jailReleaseDate":    row.in.JailReleaseDate,
				"utpNo":              row.in.UtpNo,
				"additionalRemarks":  row.in.AdditionalRemarks,
				"criminalId":         row.criminalID,
				"crimeId":            row.crimeID,
				"error":              errMsg,
			}
		},
	})
}
