package service

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/excel"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
	"github.com/crimebase/crimebase/internal/validate"
)

// CrimeInput carries the writable fields of a case record.
type CrimeInput struct {
	TypeOfCrime                  string  `json:"typeOfCrime"`
	SectionOfLaw                 string  `json:"sectionOfLaw"`
	MobFileNo                    *string `json:"mobFileNo"`
	HsNo                         *string `json:"hsNo"`
	DateOfCrime                  string  `json:"dateOfCrime"`
	HsOpeningDate                string  `json:"hsOpeningDate"`
	HsClosingDate                string  `json:"hsClosingDate"`
	PoliceStation                *string `json:"policeStation"`
	FirNo                        *string `json:"firNo"`
	CrimeGroup                   *string `json:"crimeGroup"`
	CrimeHead                    *string `json:"crimeHead"`
	CrimeClass                   *string `json:"crimeClass"`
	BriefFact                    *string `json:"briefFact"`
	CluesLeft                    *string `json:"cluesLeft"`
	LanguagesKnown               *string `json:"languagesKnown"`
	LanguagesUsed                *string `json:"languagesUsed"`
	PlaceAttacked                *string `json:"placeAttacked"`
	PlaceOfAssemblyAfterOffence  *string `json:"placeOfAssemblyAfterOffence"`
	PlaceOfAssemblyBeforeOffence *string `json:"placeOfAssemblyBeforeOffence"`
	PropertiesAttacked           *string `json:"propertiesAttacked"`
	StyleAssumed                 *string `json:"styleAssumed"`
	ToolsUsed                    *string `json:"toolsUsed"`
	TradeMarks                   *string `json:"tradeMarks"`
	TransportUsedAfter           *string `json:"transportUsedAfter"`
	TransportUsedBefore          *string `json:"transportUsedBefore"`
	Gang                         string  `json:"gang"`
	GangStrength                 *string `json:"gangStrength"`
}

var crimeImportColumns = []excel.Column{
	{Key: "typeOfCrime", Header: "Type Of Crime"},
	{Key: "sectionOfLaw", Header: "Section Of Law"},
	{Key: "mobFileNo", Header: "MOB File No."},
	{Key: "dateOfCrime", Header: "Date Of Crime"},
	{Key: "hsNo", Header: "HS No."},
	{Key: "hsOpeningDate", Header: "HS Opening Date"},
	{Key: "hsClosingDate", Header: "HS Closing Date"},
	{Key: "policeStation", Header: "Police Station"},
	{Key: "firNo", Header: "FIR No."},
	{Key: "crimeGroup", Header: "Crime Group"},
	{Key: "crimeHead", Header: "Crime Head"},
	{Key: "crimeClass", Header: "Crime Class"},
	{Key: "briefFact", Header: "Brief Fact"},
	{Key: "cluesLeft", Header: "Clues Left"},
	{Key: "languagesKnown", Header: "Languages Known"},
	{Key: "languagesUsed", Header: "Languages Used"},
	{Key: "placeAttacked", Header: "Place Attacked"},
	{Key: "placeOfAssemblyAfterOffence", Header: "Place Of Assembly After Offence"},
	{Key: "placeOfAssemblyBeforeOffence", Header: "Place Of Assembly Before Offence"},
	{Key: "propertiesAttacked", Header: "Properties Attacked"},
	{Key: "styleAssumed", Header: "Style Assumed"},
	{Key: "toolsUsed", Header: "Tools Used"},
	{Key: "tradeMarks", Header: "Trade Marks"},
	{Key: "transportUsedAfter", Header: "Transport Used After"},
	{Key: "transportUsedBefore", Header: "Transport Used Before"},
	{Key: "gang", Header: "Gang"},
	{Key: "gangStrength", Header: "Gang Strength"},
}

// Exports prepend the id and append the linked criminals, flattened.
var crimeExportCols = func() []excel.Column {
	cols := []excel.Column{{Key: "id", Header: "ID"}}
	cols = append(cols, crimeImportColumns...)
	return append(cols,
		excel.Column{Key: "criminal_ids", Header: "Criminal IDs"},
		excel.Column{Key: "criminal_names", Header: "Criminal Names"},
	)
}()

var crimeFailedCols = append(append([]excel.Column{}, crimeImportColumns...), excel.Column{Key: "error", Header: "Error"})

func crimeFromInput(in CrimeInput) (*models.Crime, error) {
	c := validate.New()
	c.Require("typeOfCrime", in.TypeOfCrime, "Type of crime")
	c.Require("sectionOfLaw", in.SectionOfLaw, "Section of law")
	dateOfCrime := c.Date("dateOfCrime", in.DateOfCrime)
	hsOpening := c.Date("hsOpeningDate", in.HsOpeningDate)
	hsClosing := c.Date("hsClosingDate", in.HsClosingDate)
	c.Enum("gang", in.Gang, []string{models.GangYes, models.GangNo}, true)
	c.MaxLen("mobFileNo", in.MobFileNo, 256)
	c.MaxLen("hsNo", in.HsNo, 256)
	c.MaxLen("policeStation", in.PoliceStation, 256)
	c.MaxLen("firNo", in.FirNo, 256)
	c.MaxLen("crimeGroup", in.CrimeGroup, 256)
	c.MaxLen("crimeHead", in.CrimeHead, 256)
	c.MaxLen("crimeClass", in.CrimeClass, 256)
	c.MaxLen("languagesKnown", in.LanguagesKnown, 256)
	c.MaxLen("languagesUsed", in.LanguagesUsed, 256)
	c.MaxLen("gangStrength", in.GangStrength, 256)
	if err := c.Err(); err != nil {
		return nil, err
	}

	gang := in.Gang
	if gang == "" {
		gang = models.GangNo
	}
	return &models.Crime{
		TypeOfCrime:                  in.TypeOfCrime,
		SectionOfLaw:                 in.SectionOfLaw,
		MobFileNo:                    in.MobFileNo,
		HsNo:                         in.HsNo,
		DateOfCrime:                  dateOfCrime,
		HsOpeningDate:                hsOpening,
		HsClosingDate:                hsClosing,
		PoliceStation:                in.PoliceStation,
		FirNo:                        in.FirNo,
		CrimeGroup:                   in.CrimeGroup,
		CrimeHead:                    in.CrimeHead,
		CrimeClass:                   in.CrimeClass,
		BriefFact:                    in.BriefFact,
		CluesLeft:                    in.CluesLeft,
		LanguagesKnown:               in.LanguagesKnown,
		LanguagesUsed:                in.LanguagesUsed,
		PlaceAttacked:                in.PlaceAttacked,
		PlaceOfAssemblyAfterOffence:  in.PlaceOfAssemblyAfterOffence,
		PlaceOfAssemblyBeforeOffence: in.PlaceOfAssemblyBeforeOffence,
		PropertiesAttacked:           in.PropertiesAttacked,
		StyleAssumed:                 in.StyleAssumed,
		ToolsUsed:                    in.ToolsUsed,
		TradeMarks:                   in.TradeMarks,
		TransportUsedAfter:           in.TransportUsedAfter,
		TransportUsedBefore:          in.TransportUsedBefore,
		Gang:                         gang,
		GangStrength:                 in.GangStrength,
	}, nil
}

// checkCrimeRefs enforces HS number uniqueness.
func (s *Service) checkCrimeRefs(ctx context.Context, in CrimeInput, excludeID uint) error {
	fe := apperr.FieldErrors{}
	if in.HsNo != nil && *in.HsNo != "" {
		existing, err := s.repos.Crimes.GetByHsNo(ctx, *in.HsNo, excludeID)
		if err != nil {
			return err
		}
		if existing != nil {
			fe.Add("hsNo", "HS number is already taken")
		}
	}
	return apperr.Validation(fe)
}

func (s *Service) CreateCrime(ctx context.Context, in CrimeInput, userID uint) (*models.Crime, error) {
	crime, err := crimeFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkCrimeRefs(ctx, in, 0); err != nil {
		return nil, err
	}
	if userID != 0 {
		crime.CreatedBy = &userID
	}
	if err := s.repos.Crimes.Create(ctx, crime); err != nil {
		return nil, err
	}
	return crime, nil
}

func (s *Service) UpdateCrime(ctx context.Context, id uint, in CrimeInput) (*models.Crime, error) {
	existing, err := s.repos.Crimes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Crime not found")
	}

	crime, err := crimeFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkCrimeRefs(ctx, in, id); err != nil {
		return nil, err
	}
	crime.CreatedBy = existing.CreatedBy

	if err := s.repos.Crimes.Update(ctx, id, crime); err != nil {
		return nil, err
	}
	return s.repos.Crimes.GetByID(ctx, id)
}

func (s *Service) GetCrime(ctx context.Context, id uint) (*models.Crime, error) {
	crime, err := s.repos.Crimes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if crime == nil {
		return nil, apperr.NotFound("Crime not found")
	}
	return crime, nil
}

func (s *Service) ListCrimes(ctx context.Context, page, limit int, search string) ([]models.Crime, pagination.Meta, error) {
	crimes, err := s.repos.Crimes.Paginate(ctx, pagination.ParamsFor(page, limit), search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repos.Crimes.Count(ctx, search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return crimes, pagination.MetaFor(total, page, limit), nil
}

func (s *Service) DeleteCrime(ctx context.Context, id uint) (*models.Crime, error) {
	crime, err := s.GetCrime(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Crimes.Remove(ctx, id); err != nil {
		return nil, err
	}
	return crime, nil
}

// ExportCrimes serializes all matching crimes, flattening linked criminals
// into comma-joined id and name columns.
func (s *Service) ExportCrimes(ctx context.Context, search string) (*bytes.Buffer, error) {
	crimes, err := s.repos.Crimes.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}

	rows := make([]excel.Row, 0, len(crimes))
	for i := range crimes {
		rows = append(rows, crimeExportRow(&crimes[i]))
	}
	return excel.Build("Crimes", crimeExportCols, rows)
}

func crimeExportRow(c *models.Crime) excel.Row {
	ids := make([]string, 0, len(c.Criminals))
	names := make([]string, 0, len(c.Criminals))
	for _, link := range c.Criminals {
		ids = append(ids, strconv.FormatUint(uint64(link.CriminalID), 10))
		if link.Criminal != nil {
			names = append(names, link.Criminal.Name)
		}
	}
	return excel.Row{
		"id":                           c.ID,
		"typeOfCrime":                  c.TypeOfCrime,
		"sectionOfLaw":                 c.SectionOfLaw,
		"mobFileNo":                    c.MobFileNo,
		"dateOfCrime":                  c.DateOfCrime,
		"hsNo":                         c.HsNo,
		"hsOpeningDate":                c.HsOpeningDate,
		"hsClosingDate":                c.HsClosingDate,
		"policeStation":                c.PoliceStation,
		"firNo":                        c.FirNo,
		"crimeGroup":                   c.CrimeGroup,
		"crimeHead":                    c.CrimeHead,
		"crimeClass":                   c.CrimeClass,
		"briefFact":                    c.BriefFact,
		"cluesLeft":                    c.CluesLeft,
		"languagesKnown":               c.LanguagesKnown,
		"languagesUsed":                c.LanguagesUsed,
		"placeAttacked":                c.PlaceAttacked,
		"placeOfAssemblyAfterOffence":  c.PlaceOfAssemblyAfterOffence,
		"placeOfAssemblyBeforeOffence": c.PlaceOfAssemblyBeforeOffence,
		"propertiesAttacked":           c.PropertiesAttacked,
		"styleAssumed":                 c.StyleAssumed,
		"toolsUsed":                    c.ToolsUsed,
		"tradeMarks":                   c.TradeMarks,
		"transportUsedAfter":           c.TransportUsedAfter,
		"transportUsedBefore":          c.TransportUsedBefore,
		"gang":                         c.Gang,
		"gangStrength":                 c.GangStrength,
		"criminal_ids":                 strings.Join(ids, ", "),
		"criminal_names":               strings.Join(names, ", "),
	}
}

type crimeImportRow struct {
	in    CrimeInput
	model *models.Crime
}

// ImportCrimes runs the bulk import pipeline over an uploaded workbook.
// Column positions follow the import sheet layout, dates in the middle.
func (s *Service) ImportCrimes(ctx context.Context, r io.Reader, userID uint) (*ImportResult, error) {
	return runImport(ctx, r, s.cfg.Uploads.FailedDir, importSpec[*crimeImportRow]{
		failedSheet: "Failed Crimes Import",
		failedCols:  crimeFailedCols,
		mapRow: func(row []string) *crimeImportRow {
			return &crimeImportRow{in: CrimeInput{
				TypeOfCrime:                  excel.Cell(row, 0),
				SectionOfLaw:                 excel.Cell(row, 1),
				MobFileNo:                    optStr(excel.Cell(row, 2)),
				DateOfCrime:                  excel.Cell(row, 3),
				HsNo:                         optStr(excel.Cell(row, 4)),
				HsOpeningDate:                excel.Cell(row, 5),
				HsClosingDate:                excel.Cell(row, 6),
				PoliceStation:                optStr(excel.Cell(row, 7)),
				FirNo:                        optStr(excel.Cell(row, 8)),
				CrimeGroup:                   optStr(excel.Cell(row, 9)),
				CrimeHead:                    optStr(excel.Cell(row, 10)),
				CrimeClass:                   optStr(excel.Cell(row, 11)),
				BriefFact:                    optStr(excel.Cell(row, 12)),
				CluesLeft:                    optStr(excel.Cell(row, 13)),
				LanguagesKnown:               optStr(excel.Cell(row, 14)),
				LanguagesUsed:                optStr(excel.Cell(row, 15)),
				PlaceAttacked:                optStr(excel.Cell(row, 16)),
				PlaceOfAssemblyAfterOffence:  optStr(excel.Cell(row, 17)),
				PlaceOfAssemblyBeforeOffence: optStr(excel.Cell(row, 18)),
				PropertiesAttacked:           optStr(excel.Cell(row, 19)),
				StyleAssumed:                 optStr(excel.Cell(row, 20)),
				ToolsUsed:                    optStr(excel.Cell(row, 21)),
				TradeMarks:                   optStr(excel.Cell(row, 22)),
				TransportUsedAfter:           optStr(excel.Cell(row, 23)),
				TransportUsedBefore:          optStr(excel.Cell(row, 24)),
				Gang:                         excel.Cell(row, 25),
				GangStrength:                 optStr(excel.Cell(row, 26)),
			}}
		},
		validate: func(ctx context.Context, row *crimeImportRow) error {
			model, err := crimeFromInput(row.in)
			if err != nil {
				return err
			}
			if err := s.checkCrimeRefs(ctx, row.in, 0); err != nil {
				return err
			}
			if userID != 0 {
				model.CreatedBy = &userID
			}
			row.model = model
			return nil
		},
		insert: func(ctx context.Context, row *crimeImportRow) error {
			return s.repos.Crimes.Create(ctx, row.model)
		},
		failedRow: func(row *crimeImportRow, errMsg string) excel.Row {
			return excel.Row{
				"typeOfCrime":                  row.in.TypeOfCrime,
				"sectionOfLaw":                 row.in.SectionOfLaw,
				"mobFileNo":                    row.in.MobFileNo,
				"dateOfCrime":                  row.in.DateOfCrime,
				"hsNo":                         row.in.HsNo,
				"hsOpeningDate":                row.in.HsOpeningDate,
				"hsClosingDate":                row.in.HsClosingDate,
				"policeStation":                row.in.PoliceStation,
				"firNo":                        row.in.FirNo,
				"crimeGroup":                   row.in.CrimeGroup,
				"crimeHead":                    row.in.CrimeHead,
				"crimeClass":                   row.in.CrimeClass,
				"briefFact":                    row.in.BriefFact,
				"cluesLeft":                    row.in.CluesLeft,
				"languagesKnown":               row.in.LanguagesKnown,
				"languagesUsed":                row.in.LanguagesUsed,
				"placeAttacked":                row.in.PlaceAttacked,
				"placeOfAssemblyAfterOffence":  row.in.PlaceOfAssemblyAfterOffence,
				"placeOfAssemblyBeforeOffence": row.in.PlaceOfAssemblyBeforeOffence,
				"propertiesAttacked":           row.in.PropertiesAttacked,
				"styleAssumed":                 row.in.StyleAssumed,
				"toolsUsed":                    row.in.ToolsUsed,
				"tradeMarks":                   row.in.TradeMarks,
				"transportUsedAfter":           row.in.TransportUsedAfter,
				"transportUsedBefore":          row.in.TransportUsedBefore,
				"gang":                         row.in.Gang,
				"gangStrength":                 row.in.GangStrength,
				"error":                        errMsg,
			}
		},
	})
}
