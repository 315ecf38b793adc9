package service

import (
	"bytes"
	"context"
	"io"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/excel"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
	"github.com/crimebase/crimebase/internal/repository"
	"github.com/crimebase/crimebase/internal/validate"
)

// LinkInput carries the writable fields of a crime-criminal link. The crime
// side comes from the route; only the criminal is chosen per link.
type LinkInput struct {
	CriminalID       uint    `json:"criminalId"`
	Aliases          *string `json:"aliases"`
	AgeWhileOpening  *string `json:"ageWhileOpening"`
	CrimeArrestOrder *string `json:"crimeArrestOrder"`
}

var linkExportCols = []excel.Column{
	{Key: "id", Header: "ID"},
	{Key: "aliases", Header: "Aliases"},
	{Key: "ageWhileOpening", Header: "Age While Opening"},
	{Key: "crimeArrestOrder", Header: "Crime Arrest Order"},
	{Key: "createdAt", Header: "Created At"},
}

var linkFailedCols = []excel.Column{
	{Key: "aliases", Header: "Aliases"},
	{Key: "ageWhileOpening", Header: "Age While Opening"},
	{Key: "crimeArrestOrder", Header: "Crime Arrest Order"},
	{Key: "criminalId", Header: "Criminal Id"},
	{Key: "error", Header: "Error"},
}

func linkShape(in LinkInput) error {
	c := validate.New()
	if in.CriminalID == 0 {
		c.Fail("criminalId", "Criminal Id must be a number")
	}
	c.MaxLen("aliases", in.Aliases, 256)
	c.MaxLen("ageWhileOpening", in.AgeWhileOpening, 256)
	c.MaxLen("crimeArrestOrder", in.CrimeArrestOrder, 256)
	return c.Err()
}

// checkLinkRefs verifies both endpoints exist and the pair is not already
// linked.
func (s *Service) checkLinkRefs(ctx context.Context, crimeID, criminalID, excludeID uint) error {
	fe := apperr.FieldErrors{}
	criminal, err := s.repos.Criminals.GetByID(ctx, criminalID)
	if err != nil {
		return err
	}
	if criminal == nil {
		fe.Add("criminalId", "Criminal doesn't exist")
	}
	crime, err := s.repos.Crimes.GetByID(ctx, crimeID)
	if err != nil {
		return err
	}
	if crime == nil {
		fe.Add("crimeId", "Crime doesn't exist")
	}
	if len(fe) == 0 {
		existing, err := s.repos.Links.GetByPair(ctx, crimeID, criminalID, excludeID)
		if err != nil {
			return err
		}
		if existing != nil {
			fe.Add("criminalId", "Criminal is already linked to this crime")
		}
	}
	return apperr.Validation(fe)
}

func (s *Service) CreateLink(ctx context.Context, crimeID uint, in LinkInput) (*models.CrimeByCriminal, error) {
	if err := linkShape(in); err != nil {
		return nil, err
	}
	if err := s.checkLinkRefs(ctx, crimeID, in.CriminalID, 0); err != nil {
		return nil, err
	}
	link := &models.CrimeByCriminal{
		CrimeID:          crimeID,
		CriminalID:       in.CriminalID,
		Aliases:          in.Aliases,
		AgeWhileOpening:  in.AgeWhileOpening,
		CrimeArrestOrder: in.CrimeArrestOrder,
	}
	if err := s.repos.Links.Create(ctx, link); err != nil {
		return nil, err
	}
	return s.repos.Links.GetByID(ctx, link.ID)
}

func (s *Service) UpdateLink(ctx context.Context, id uint, in LinkInput) (*models.CrimeByCriminal, error) {
	existing, err := s.repos.Links.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Crime record link not found")
	}
	if err := linkShape(in); err != nil {
		return nil, err
	}
	if err := s.checkLinkRefs(ctx, existing.CrimeID, in.CriminalID, id); err != nil {
		return nil, err
	}
	link := &models.CrimeByCriminal{
		CrimeID:          existing.CrimeID,
		CriminalID:       in.CriminalID,
		Aliases:          in.Aliases,
		AgeWhileOpening:  in.AgeWhileOpening,
		CrimeArrestOrder: in.CrimeArrestOrder,
	}
	if err := s.repos.Links.Update(ctx, id, link); err != nil {
		return nil, err
	}
	return s.repos.Links.GetByID(ctx, id)
}

func (s *Service) GetLink(ctx context.Context, id uint) (*models.CrimeByCriminal, error) {
	link, err := s.repos.Links.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, apperr.NotFound("Crime record link not found")
	}
	return link, nil
}

func (s *Service) ListLinks(ctx context.Context, page, limit int, search string, filter repository.LinkFilter) ([]models.CrimeByCriminal, pagination.Meta, error) {
	links, err := s.repos.Links.Paginate(ctx, pagination.ParamsFor(page, limit), search, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repos.Links.Count(ctx, search, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return links, pagination.MetaFor(total, page, limit), nil
}

func (s *Service) DeleteLink(ctx context.Context, id uint) (*models.CrimeByCriminal, error) {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Links.Remove(ctx, id); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) ExportLinks(ctx context.Context, search string, filter repository.LinkFilter) (*bytes.Buffer, error) {
	links, err := s.repos.Links.GetAll(ctx, search, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]excel.Row, 0, len(links))
	for _, link := range links {
		rows = append(rows, excel.Row{
			"id":               link.ID,
			"aliases":          link.Aliases,
			"ageWhileOpening":  link.AgeWhileOpening,
			"crimeArrestOrder": link.CrimeArrestOrder,
			"createdAt":        link.CreatedAt,
		})
	}
	return excel.Build("CrimesByCriminals", linkExportCols, rows)
}

type linkImportRow struct {
	in         LinkInput
	criminalID string
}

// ImportLinks bulk-links criminals to one crime from an uploaded workbook.
func (s *Service) ImportLinks(ctx context.Context, r io.Reader, crimeID uint) (*ImportResult, error) {
	return runImport(ctx, r, s.cfg.Uploads.FailedDir, importSpec[*linkImportRow]{
		failedSheet: "Failed Crimes By Criminals Import",
		failedCols:  linkFailedCols,
		mapRow: func(row []string) *linkImportRow {
			raw := excel.Cell(row, 3)
			in := LinkInput{
				Aliases:          optStr(excel.Cell(row, 0)),
				AgeWhileOpening:  optStr(excel.Cell(row, 1)),
				CrimeArrestOrder: optStr(excel.Cell(row, 2)),
			}
			if id := parseID(raw); id != nil {
				in.CriminalID = *id
			}
			return &linkImportRow{in: in, criminalID: raw}
		},
		validate: func(ctx context.Context, row *linkImportRow) error {
			if err := linkShape(row.in); err != nil {
				return err
			}
			return s.checkLinkRefs(ctx, crimeID, row.in.CriminalID, 0)
		},
		insert: func(ctx context.Context, row *linkImportRow) error {
			return s.repos.Links.Create(ctx, &models.CrimeByCriminal{
				CrimeID:          crimeID,
				CriminalID:       row.in.CriminalID,
				Aliases:          row.in.Aliases,
				AgeWhileOpening:  row.in.AgeWhileOpening,
				CrimeArrestOrder: row.in.CrimeArrestOrder,
			})
		},
		failedRow: func(row *linkImportRow, errMsg string) excel.Row {
			return excel.Row{
				"aliases":          row.in.Aliases,
				"ageWhileOpening":  row.in.AgeWhileOpening,
				"crimeArrestOrder": row.in.CrimeArrestOrder,
				"criminalId":       row.criminalID,
				"error":            errMsg,
			}
		},
	})
}
