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

// HearingInput carries the writable fields of a hearing. The court comes
// from the route.
type HearingInput struct {
	HearingDate       string  `json:"hearingDate"`
	NextHearingDate   string  `json:"nextHearingDate"`
	Attendance        *string `json:"attendance"`
	JudgeName         *string `json:"judgeName"`
	ActionCode        *string `json:"actionCode"`
	AdditionalRemarks *string `json:"additionalRemarks"`
}

var hearingExportCols = []excel.Column{
	{Key: "id", Header: "ID"},
	{Key: "hearingDate", Header: "Hearing Date"},
	{Key: "nextHearingDate", Header: "Next Hearing Date"},
	{Key: "attendance", Header: "Attendance"},
	{Key: "judgeName", Header: "Judge Name"},
	{Key: "actionCode", Header: "Action Code"},
	{Key: "additionalRemarks", Header: "Additional Remarks"},
	{Key: "courtId", Header: "Court Id"},
}

var hearingFailedCols = []excel.Column{
	{Key: "hearingDate", Header: "Hearing Date"},
	{Key: "nextHearingDate", Header: "Next Hearing Date"},
	{Key: "attendance", Header: "Attendance"},
	{Key: "judgeName", Header: "Judge Name"},
	{Key: "actionCode", Header: "Action Code"},
	{Key: "additionalRemarks", Header: "Additional Remarks"},
	{Key: "error", Header: "Error"},
}

func hearingFromInput(in HearingInput, courtID uint) (*models.Hearing, error) {
	c := validate.New()
	hearingDate := c.Date("hearingDate", in.HearingDate)
	nextHearingDate := c.Date("nextHearingDate", in.NextHearingDate)
	c.MaxLen("attendance", in.Attendance, 256)
	c.MaxLen("judgeName", in.JudgeName, 256)
	c.MaxLen("actionCode", in.ActionCode, 256)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return &models.Hearing{
		HearingDate:       hearingDate,
		NextHearingDate:   nextHearingDate,
		Attendance:        in.Attendance,
		JudgeName:         in.JudgeName,
		ActionCode:        in.ActionCode,
		AdditionalRemarks: in.AdditionalRemarks,
		CourtID:           &courtID,
	}, nil
}

func (s *Service) checkCourtExists(ctx context.Context, courtID uint) error {
	court, err := s.repos.Courts.GetByID(ctx, courtID)
	if err != nil {
		return err
	}
	if court == nil {
		fe := apperr.FieldErrors{}
		fe.Add("courtId", "Invalid Court Id")
		return apperr.Validation(fe)
	}
	return nil
}

func (s *Service) CreateHearing(ctx context.Context, courtID uint, in HearingInput) (*models.Hearing, error) {
	hearing, err := hearingFromInput(in, courtID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCourtExists(ctx, courtID); err != nil {
		return nil, err
	}
	if err := s.repos.Hearings.Create(ctx, hearing); err != nil {
		return nil, err
	}
	return hearing, nil
}

func (s *Service) UpdateHearing(ctx context.Context, id uint, in HearingInput) (*models.Hearing, error) {
	existing, err := s.repos.Hearings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Hearing not found")
	}
	var courtID uint
	if existing.CourtID != nil {
		courtID = *existing.CourtID
	}
	hearing, err := hearingFromInput(in, courtID)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Hearings.Update(ctx, id, hearing); err != nil {
		return nil, err
	}
	return s.repos.Hearings.GetByID(ctx, id)
}

func (s *Service) GetHearing(ctx context.Context, id uint) (*models.Hearing, error) {
	hearing, err := s.repos.Hearings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hearing == nil {
		return nil, apperr.NotFound("Hearing not found")
	}
	return hearing, nil
}

func (s *Service) ListHearings(ctx context.Context, page, limit int, search string, courtID uint) ([]models.Hearing, pagination.Meta, error) {
	hearings, err := s.repos.Hearings.Paginate(ctx, pagination.ParamsFor(page, limit), search, courtID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repos.Hearings.Count(ctx, search, courtID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return hearings, pagination.MetaFor(total, page, limit), nil
}

func (s *Service) DeleteHearing(ctx context.Context, id uint) (*models.Hearing, error) {
	hearing, err := s.GetHearing(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Hearings.Remove(ctx, id); err != nil {
		return nil, err
	}
	return hearing, nil
}

func (s *Service) ExportHearings(ctx context.Context, search string, courtID uint) (*bytes.Buffer, error) {
	hearings, err := s.repos.Hearings.GetAll(ctx, search, courtID)
	if err != nil {
		return nil, err
	}
	rows := make([]excel.Row, 0, len(hearings))
	for _, h := range hearings {
		rows = append(rows, excel.Row{
			"id":                h.ID,
			"hearingDate":       h.HearingDate,
			"nextHearingDate":   h.NextHearingDate,
			"attendance":        h.Attendance,
			"judgeName":         h.JudgeName,
			"actionCode":        h.ActionCode,
			"additionalRemarks": h.AdditionalRemarks,
			"courtId":           h.CourtID,
		})
	}
	return excel.Build("Hearings", hearingExportCols, rows)
}

type hearingImportRow struct {
	in    HearingInput
	model *models.Hearing
}

// ImportHearings bulk-loads hearings for one court from an uploaded
// workbook.
func (s *Service) ImportHearings(ctx context.Context, r io.Reader, courtID uint) (*ImportResult, error) {
	return runImport(ctx, r, s.cfg.Uploads.FailedDir, importSpec[*hearingImportRow]{
		failedSheet: "Failed Hearings Import",
		failedCols:  hearingFailedCols,
		mapRow: func(row []string) *hearingImportRow {
			return &hearingImportRow{in: HearingInput{
				HearingDate:       excel.Cell(row, 0),
				NextHearingDate:   excel.Cell(row, 1),
				Attendance:        optStr(excel.Cell(row, 2)),
				JudgeName:         optStr(excel.Cell(row, 3)),
				ActionCode:        optStr(excel.Cell(row, 4)),
				AdditionalRemarks: optStr(excel.Cell(row, 5)),
			}}
		},
		validate: func(ctx context.Context, row *hearingImportRow) error {
			model, err := hearingFromInput(row.in, courtID)
			if err != nil {
				return err
			}
			if err := s.checkCourtExists(ctx, courtID); err != nil {
				return err
			}
			row.model = model
			return nil
		},
		insert: func(ctx context.Context, row *hearingImportRow) error {
			return s.repos.Hearings.Create(ctx, row.model)
		},
		failedRow: func(row *hearingImportRow, errMsg string) excel.Row {
			return excel.Row{
				"hearingDate":       row.in.HearingDate,
				"nextHearingDate":   row.in.NextHearingDate,
				"attendance":        row.in.Attendance,
				"judgeName":         row.in.JudgeName,
				"actionCode":        row.in.ActionCode,
				"additionalRemarks": row.in.AdditionalRemarks,
				"error":             errMsg,
			}
		},
	})
}
