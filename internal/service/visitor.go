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

// VisitorInput carries the writable fields of a visit log entry. The jail
// comes from the route. The visitonDate key matches existing clients.
type VisitorInput struct {
	VisitonDate       string  `json:"visitonDate"`
	Name              *string `json:"name"`
	Relation          *string `json:"relation"`
	AdditionalRemarks *string `json:"additionalRemarks"`
}

var visitorExportCols = []excel.Column{
	{Key: "id", Header: "ID"},
	{Key: "visitonDate", Header: "Visiting Date"},
	{Key: "name", Header: "Name"},
	{Key: "relation", Header: "Relation"},
	{Key: "additionalRemarks", Header: "Additional Remarks"},
	{Key: "jailId", Header: "Jail Id"},
}

var visitorFailedCols = []excel.Column{
	{Key: "visitonDate", Header: "Visiting Date"},
	{Key: "name", Header: "Name"},
	{Key: "relation", Header: "Relation"},
	{Key: "additionalRemarks", Header: "Additional Remarks"},
	{Key: "error", Header: "Error"},
}

func visitorFromInput(in VisitorInput, jailID uint) (*models.Visitor, error) {
	c := validate.New()
	visitonDate := c.Date("visitonDate", in.VisitonDate)
	c.MaxLen("name", in.Name, 256)
	c.MaxLen("relation", in.Relation, 256)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return &models.Visitor{
		VisitonDate:       visitonDate,
		Name:              in.Name,
		Relation:          in.Relation,
		AdditionalRemarks: in.AdditionalRemarks,
		JailID:            &jailID,
	}, nil
}

func (s *Service) checkJailExists(ctx context.Context, jailID uint) error {
	jail, err := s.repos.Jails.GetByID(ctx, jailID)
	if err != nil {
		return err
	}
	if jail == nil {
		fe := apperr.FieldErrors{}
		fe.Add("jailId", "Invalid Jail Id")
		return apperr.Validation(fe)
	}
	return nil
}

func (s *Service) CreateVisitor(ctx context.Context, jailID uint, in VisitorInput) (*models.Visitor, error) {
	visitor, err := visitorFromInput(in, jailID)
	if err != nil {
		return nil, err
	}
	if err := s.checkJailExists(ctx, jailID); err != nil {
		return nil, err
	}
	if err := s.repos.Visitors.Create(ctx, visitor); err != nil {
		return nil, err
	}
	return visitor, nil
}

func (s *Service) UpdateVisitor(ctx context.Context, id uint, in VisitorInput) (*models.Visitor, error) {
	existing, err := s.repos.Visitors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Visitor not found")
	}
	var jailID uint
	if existing.JailID != nil {
		jailID = *existing.JailID
	}
	visitor, err := visitorFromInput(in, jailID)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Visitors.Update(ctx, id, visitor); err != nil {
		return nil, err
	}
	return s.repos.Visitors.GetByID(ctx, id)
}

func (s *Service) GetVisitor(ctx context.Context, id uint) (*models.Visitor, error) {
	visitor, err := s.repos.Visitors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, apperr.NotFound("Visitor not found")
	}
	return visitor, nil
}

func (s *Service) ListVisitors(ctx context.Context, page, limit int, search string, jailID uint) ([]models.Visitor, pagination.Meta, error) {
	visitors, err := s.repos.Visitors.Paginate(ctx, pagination.ParamsFor(page, limit), search, jailID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repos.Visitors.Count(ctx, search, jailID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return visitors, pagination.MetaFor(total, page, limit), nil
}

func (s *Service) DeleteVisitor(ctx context.Context, id uint) (*models.Visitor, error) {
	visitor, err := s.GetVisitor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Visitors.Remove(ctx, id); err != nil {
		return nil, err
	}
	return visitor, nil
}

func (s *Service) ExportVisitors(ctx context.Context, search string, jailID uint) (*bytes.Buffer, error) {
	visitors, err := s.repos.Visitors.GetAll(ctx, search, jailID)
	if err != nil {
		return nil, err
	}
	rows := make([]excel.Row, 0, len(visitors))
	for _, v := range visitors {
		rows = append(rows, excel.Row{
			"id":                v.ID,
			"visitonDate":       v.VisitonDate,
			"name":              v.Name,
			"relation":          v.Relation,
			"additionalRemarks": v.AdditionalRemarks,
			"jailId":            v.JailID,
		})
	}
	return excel.Build("Visitors", visitorExportCols, rows)
}

type visitorImportRow struct {
	in    VisitorInput
	model *models.Visitor
}

// ImportVisitors bulk-loads visit entries for one jail from an uploaded
// workbook.
func (s *Service) ImportVisitors(ctx context.Context, r io.Reader, jailID uint) (*ImportResult, error) {
	return runImport(ctx, r, s.cfg.Uploads.FailedDir, importSpec[*visitorImportRow]{
		failedSheet: "Failed Visitors Import",
		failedCols:  visitorFailedCols,
		mapRow: func(row []string) *visitorImportRow {
			return &visitorImportRow{in: VisitorInput{
				VisitonDate:       excel.Cell(row, 0),
				Name:              optStr(excel.Cell(row, 1)),
				Relation:          optStr(excel.Cell(row, 2)),
				AdditionalRemarks: optStr(excel.Cell(row, 3)),
			}}
		},
		validate: func(ctx context.Context, row *visitorImportRow) error {
			model, err := visitorFromInput(row.in, jailID)
			if err != nil {
				return err
			}
			if err := s.checkJailExists(ctx, jailID); err != nil {
				return err
			}
			row.model = model
			return nil
		},
		insert: func(ctx context.Context, row *visitorImportRow) error {
			return s.repos.Visitors.Create(ctx, row.model)
		},
		failedRow: func(row *visitorImportRow, errMsg string) excel.Row {
			return excel.Row{
				"visitonDate":       row.in.VisitonDate,
				"name":              row.in.Name,
				"relation":          row.in.Relation,
				"additionalRemarks": row.in.AdditionalRemarks,
				"error":             errMsg,
			}
		},
	})
}
