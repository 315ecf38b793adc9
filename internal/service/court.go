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

// CourtInput carries the writable fields of a court proceeding. The accused
// and the crime are both mandatory and must already be linked.
type CourtInput struct {
	CourtName             string  `json:"courtName"`
	CcScNo                *string `json:"ccScNo"`
	PsName                *string `json:"psName"`
	HearingDate           string  `json:"hearingDate"`
	NextHearingDate       string  `json:"nextHearingDate"`
	Attendance            *string `json:"attendance"`
	LawyerName            *string `json:"lawyerName"`
	LawyerContact         *string `json:"lawyerContact"`
	SuretyProviderDetail  *string `json:"suretyProviderDetail"`
	SuretyProviderContact *string `json:"suretyProviderContact"`
	StageOfCase           *string `json:"stageOfCase"`
	AdditionalRemarks     *string `json:"additionalRemarks"`
	CriminalID            uint    `json:"criminalId"`
	CrimeID               uint    `json:"crimeId"`
}

var courtExportCols = []excel.Column{
	{Key: "id", Header: "ID"},
	{Key: "courtName", Header: "Court Name"},
	{Key: "ccScNo", Header: "cc/sc No"},
	{Key: "psName", Header: "ps Name"},
	{Key: "hearingDate", Header: "Hearing Date"},
	{Key: "nextHearingDate", Header: "Next Hearing Date"},
	{Key: "attendance", Header: "Attendance"},
	{Key: "lawyerName", Header: "Lawyer Name"},
	{Key: "lawyerContact", Header: "Lawyer Contact"},
	{Key: "suretyProviderDetail", Header: "Surety Provider Detail"},
	{Key: "suretyProviderContact", Header: "Surety Provider Contact"},
	{Key: "stageOfCase", Header: "Stage Of Case"},
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

var courtFailedCols = []excel.Column{
	{Key: "courtName", Header: "Court Name"},
	{Key: "ccScNo", Header: "cc/sc No"},
	{Key: "psName", Header: "ps Name"},
	{Key: "firNo", Header: "FIR No."},
	{Key: "lawyerName", Header: "Lawyer Name"},
	{Key: "lawyerContact", Header: "Lawyer Contact"},
	{Key: "suretyProviderDetail", Header: "Surety Provider Detail"},
	{Key: "suretyProviderContact", Header: "Surety Provider Contact"},
	{Key: "stageOfCase", Header: "Stage Of Case"},
	{Key: "additionalRemarks", Header: "Additional Remarks"},
	{Key: "criminalId", Header: "Criminal Id"},
	{Key: "crimeId", Header: "Crime Id"},
	{Key: "error", Header: "Error"},
}

func courtFromInput(in CourtInput) (*models.Court, error) {
	c := validate.New()
	c.Require("courtName", in.CourtName, "Court Name")
	hearingDate := c.Date("hearingDate", in.HearingDate)
	nextHearingDate := c.Date("nextHearingDate", in.NextHearingDate)
	if in.CriminalID == 0 {
		c.Fail("criminalId", "Criminal Id must be a number")
	}
	if in.CrimeID == 0 {
		c.Fail("crimeId", "Crime Id must be a number")
	}
	c.MaxLen("ccScNo", in.CcScNo, 256)
	c.MaxLen("psName", in.PsName, 256)
	c.MaxLen("attendance", in.Attendance, 256)
	c.MaxLen("lawyerName", in.LawyerName, 256)
	c.MaxLen("lawyerContact", in.LawyerContact, 256)
	c.MaxLen("suretyProviderContact", in.SuretyProviderContact, 256)
	c.MaxLen("stageOfCase", in.StageOfCase, 256)
	if err := c.Err(); err != nil {
		return nil, err
	}

	criminalID, crimeID := in.CriminalID, in.CrimeID
	return &models.Court{
		CourtName:             in.CourtName,
		CcScNo:                in.CcScNo,
		PsName:                in.PsName,
		HearingDate:           hearingDate,
		NextHearingDate:       nextHearingDate,
		Attendance:            in.Attendance,
		LawyerName:            in.LawyerName,
		LawyerContact:         in.LawyerContact,
		SuretyProviderDetail:  in.SuretyProviderDetail,
		SuretyProviderContact: in.SuretyProviderContact,
		StageOfCase:           in.StageOfCase,
		AdditionalRemarks:     in.AdditionalRemarks,
		CriminalID:            &criminalID,
		CrimeID:               &crimeID,
	}, nil
}

// checkAccusedPair verifies the criminal and crime exist and the criminal is
// linked to the crime. Court and jail records share this rule.
func (s *Service) checkAccusedPair(ctx context.Context, criminalID, crimeID uint) error {
	fe := apperr.FieldErrors{}
	criminal, err := s.repos.Criminals.GetByID(ctx, criminalID)
	if err != nil {
		return err
	}
	if criminal == nil {
		fe.Add("criminalId", "Invalid Criminal Id")
	}
	crime, err := s.repos.Crimes.GetByID(ctx, crimeID)
	if err != nil {
		return err
	}
	if crime == nil {
		fe.Add("crimeId", "Invalid Crime Id")
	}
	if len(fe) == 0 {
		link, err := s.repos.Links.GetByPair(ctx, crimeID, criminalID, 0)
		if err != nil {
			return err
		}
		if link == nil {
			fe.Add("criminalId", "Criminal is not linked to this crime")
		}
	}
	return apperr.Validation(fe)
}

func (s *Service) CreateCourt(ctx context.Context, in CourtInput) (*models.Court, error) {
	court, err := courtFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccusedPair(ctx, in.CriminalID, in.CrimeID); err != nil {
		return nil, err
	}
	if err := s.repos.Courts.Create(ctx, court); err != nil {
		return nil, err
	}
	return s.repos.Courts.GetByID(ctx, court.ID)
}

func (s *Service) UpdateCourt(ctx context.Context, id uint, in CourtInput) (*models.Court, error) {
	existing, err := s.repos.Courts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Court not found")
	}
	court, err := courtFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccusedPair(ctx, in.CriminalID, in.CrimeID); err != nil {
		return nil, err
	}
	if err := s.repos.Courts.Update(ctx, id, court); err != nil {
		return nil, err
	}
	return s.repos.Courts.GetByID(ctx, id)
}

func (s *Service) GetCourt(ctx context.Context, id uint) (*models.Court, error) {
	court, err := s.repos.Courts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if court == nil {
		return nil, apperr.NotFound("Court not found")
	}
	return court, nil
}

func (s *Service) ListCourts(ctx context.Context, page, limit int, search string) ([]models.Court, pagination.Meta, error) {
	courts, err := s.repos.Courts.Paginate(ctx, pagination.ParamsFor(page, limit), search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repos.Courts.Count(ctx, search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return courts, pagination.MetaFor(total, page, limit), nil
}

func (s *Service) DeleteCourt(ctx context.Context, id uint) (*models.Court, error) {
	court, err := s.GetCourt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Courts.Remove(ctx, id); err != nil {
		return nil, err
	}
	return court, nil
}

// ExportCourts serializes matching courts with the accused name and the
// crime's key fields flattened alongside.
func (s *Service) ExportCourts(ctx context.Context, search string) (*bytes.Buffer, error) {
	courts, err := s.repos.Courts.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}
	rows := make([]excel.Row, 0, len(courts))
	for i := range courts {
		rows = append(rows, courtExportRow(&courts[i]))
	}
	return excel.Build("Courts", courtExportCols, rows)
}

func courtExportRow(c *models.Court) excel.Row {
	row := excel.Row{
		"id":                    c.ID,
		"courtName":             c.CourtName,
		"ccScNo":                c.CcScNo,
		"psName":                c.PsName,
		"hearingDate":           c.HearingDate,
		"nextHearingDate":       c.NextHearingDate,
		"attendance":            c.Attendance,
		"lawyerName":            c.LawyerName,
		"lawyerContact":         c.LawyerContact,
		"suretyProviderDetail":  c.SuretyProviderDetail,
		"suretyProviderContact": c.SuretyProviderContact,
		"stageOfCase":           c.StageOfCase,
		"additionalRemarks":     c.AdditionalRemarks,
		"criminalId":            c.CriminalID,
		"crimeId":               c.CrimeID,
	}
	if c.Accused != nil {
		row["accused_name"] = c.Accused.Name
	}
	if c.Crime != nil {
		row["crime_typeOfCrime"] = c.Crime.TypeOfCrime
		row["crime_sectionOfLaw"] = c.Crime.SectionOfLaw
		row["crime_mobFileNo"] = c.Crime.MobFileNo
		row["crime_hsNo"] = c.Crime.HsNo
		row["crime_hsOpeningDate"] = c.Crime.HsOpeningDate
		row["crime_hsClosingDate"] = c.Crime.HsClosingDate
	}
	return row
}

type courtImportRow struct {
	in                  CourtInput
	firNo               *string
	criminalID, crimeID string
	model               *models.Court
}

// ImportCourts runs the bulk import pipeline. The sheet carries a FIR No.
// column that is echoed in failure reports but not stored on the record.
func (s *Service) ImportCourts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	return runImport(ctx, r, s.cfg.Uploads.FailedDir, importSpec[*courtImportRow]{
		failedSheet: "Failed Courts Import",
		failedCols:  courtFailedCols,
		mapRow: func(row []string) *courtImportRow {
			rawCriminal := excel.Cell(row, 10)
			rawCrime := excel.Cell(row, 11)
			in := CourtInput{
				CourtName:             excel.Cell(row, 0),
				CcScNo:                optStr(excel.Cell(row, 1)),
				PsName:                optStr(excel.Cell(row, 2)),
				LawyerName:            optStr(excel.Cell(row, 4)),
				LawyerContact:         optStr(excel.Cell(row, 5)),
				SuretyProviderDetail:  optStr(excel.Cell(row, 6)),
				SuretyProviderContact: optStr(excel.Cell(row, 7)),
				StageOfCase:           optStr(excel.Cell(row, 8)),
				AdditionalRemarks:     optStr(excel.Cell(row, 9)),
			}
			if id := parseID(rawCriminal); id != nil {
				in.CriminalID = *id
			}
			if id := parseID(rawCrime); id != nil {
				in.CrimeID = *id
			}
			return &courtImportRow{
				in:         in,
				firNo:      optStr(excel.Cell(row, 3)),
				criminalID: rawCriminal,
				crimeID:    rawCrime,
			}
		},
		validate: func(ctx context.Context, row *courtImportRow) error {
			model, err := courtFromInput(row.in)
			if err != nil {
				return err
			}
			if err := s.checkAccusedPair(ctx, row.in.CriminalID, row.in.CrimeID); err != nil {
				return err
			}
			row.model = model
			return nil
		},
		insert: func(ctx context.Context, row *courtImportRow) error {
			return s.repos.Courts.Create(ctx, row.model)
		},
		failedRow: func(row *courtImportRow, errMsg string) excel.Row {
			return excel.Row{
				"courtName":             row.in.CourtName,
				"ccScNo":                row.in.CcScNo,
				"psName":                row.in.PsName,
				"firNo":                 row.firNo,
				"lawyerName":            row.in.LawyerName,
				"lawyerContact":         row.in.LawyerContact,
				"suretyProviderDetail":  row.in.SuretyProviderDetail,
				"suretyProviderContact": row.in.SuretyProviderContact,
				"stageOfCase":           row.in.StageOfCase,
				"additionalRemarks":     row.in.AdditionalRemarks,
				"criminalId":            row.criminalID,
				"crimeId":               row.crimeID,
				"error":                 errMsg,
			}
		},
	})
}
