// Package pdf renders printable A4 detail sheets for crime and criminal
// records.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/crimebase/crimebase/internal/models"
)

const dateLayout = "02 Jan 2006"

type field struct {
	label string
	value string
}

func newSheet(title string) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, false)
	doc.SetMargins(15, 15, 15)
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	doc.Ln(4)
	return doc
}

func writeSection(doc *fpdf.Fpdf, heading string, fields []field) {
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, heading, "B", 1, "L", false, 0, "")
	doc.Ln(1)
	doc.SetFont("Helvetica", "", 10)
	for _, f := range fields {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(60, 6, f.label, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 6, f.value, "", "L", false)
	}
	doc.Ln(4)
}

func output(doc *fpdf.Fpdf) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func str(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func date(v *time.Time) string {
	if v == nil {
		return "-"
	}
	return v.Format(dateLayout)
}

// Criminal renders a one-page biographic sheet.
func Criminal(c *models.Criminal) (*bytes.Buffer, error) {
	doc := newSheet("Criminal Record")

	writeSection(doc, "Identity", []field{
		{"Name", c.Name},
		{"Sex", c.Sex},
		{"Date Of Birth", date(c.Dob)},
		{"Aadhar No.", str(c.AadharNo)},
		{"Phone", str(c.Phone)},
		{"Father Name", str(c.FatherName)},
		{"Mother Name", str(c.MotherName)},
		{"Spouse Name", str(c.SpouseName)},
	})
	writeSection(doc, "Background", []field{
		{"Permanent Address", str(c.PermanentAddress)},
		{"Present Address", str(c.PresentAddress)},
		{"Religion", str(c.Religion)},
		{"Caste", str(c.Caste)},
		{"Occupation", str(c.Occupation)},
		{"Education", str(c.EducationalQualification)},
		{"Native PS", str(c.NativePs)},
		{"Native District", str(c.NativeDistrict)},
		{"FPB Sl.No", str(c.FpbSlNo)},
		{"FPB Classn.No", str(c.FpbClassnNo)},
	})
	writeSection(doc, "Identification Marks", []field{
		{"Voice", str(c.Voice)},
		{"Build", str(c.Build)},
		{"Complexion", str(c.Complexion)},
		{"Teeth", str(c.Teeth)},
		{"Hair", str(c.Hair)},
		{"Eyes", str(c.Eyes)},
		{"Habits", str(c.Habits)},
		{"Burn Marks", str(c.BurnMarks)},
		{"Tattoo", str(c.Tattoo)},
		{"Mole", str(c.Mole)},
		{"Scar", str(c.Scar)},
		{"Leucoderma", str(c.Leucoderma)},
		{"Face/Head", str(c.FaceHead)},
		{"Other Body Parts", str(c.OtherPartsBody)},
		{"Dress Used", str(c.DressUsed)},
		{"Beard", str(c.Beard)},
		{"Face", str(c.Face)},
		{"Moustache", str(c.Moustache)},
		{"Nose", str(c.Nose)},
	})

	return output(doc)
}

// Crime renders a case sheet including the linked criminals.
func Crime(c *models.Crime) (*bytes.Buffer, error) {
	doc := newSheet("Crime Record")

	writeSection(doc, "Case", []field{
		{"Type Of Crime", c.TypeOfCrime},
		{"Section Of Law", c.SectionOfLaw},
		{"MOB File No.", str(c.MobFileNo)},
		{"HS No.", str(c.HsNo)},
		{"Date Of Crime", date(c.DateOfCrime)},
		{"HS Opening Date", date(c.HsOpeningDate)},
		{"HS Closing Date", date(c.HsClosingDate)},
		{"Police Station", str(c.PoliceStation)},
		{"FIR No.", str(c.FirNo)},
		{"Crime Group", str(c.CrimeGroup)},
		{"Crime Head", str(c.CrimeHead)},
		{"Crime Class", str(c.CrimeClass)},
		{"Brief Fact", str(c.BriefFact)},
		{"Clues Left", str(c.CluesLeft)},
	})
	writeSection(doc, "Modus Operandi", []field{
		{"Languages Known", str(c.LanguagesKnown)},
		{"Languages Used", str(c.LanguagesUsed)},
		{"Place Attacked", str(c.PlaceAttacked)},
		{"Assembly Before", str(c.PlaceOfAssemblyBeforeOffence)},
		{"Assembly After", str(c.PlaceOfAssemblyAfterOffence)},
		{"Properties Attacked", str(c.PropertiesAttacked)},
		{"Style Assumed", str(c.StyleAssumed)},
		{"Tools Used", str(c.ToolsUsed)},
		{"Trade Marks", str(c.TradeMarks)},
		{"Transport Before", str(c.TransportUsedBefore)},
		{"Transport After", str(c.TransportUsedAfter)},
		{"Gang", c.Gang},
		{"Gang Strength", str(c.GangStrength)},
	})

	if len(c.Criminals) > 0 {
		accused := make([]field, 0, len(c.Criminals))
		for _, link := range c.Criminals {
			name := fmt.Sprintf("#%d", link.CriminalID)
			if link.Criminal != nil {
				name = link.Criminal.Name
			}
			detail := fmt.Sprintf("Aliases: %s  Age: %s  Arrest Order: %s",
				str(link.Aliases), str(link.AgeWhileOpening), str(link.CrimeArrestOrder))
			accused = append(accused, field{name, detail})
		}
		writeSection(doc, "Accused", accused)
	}

	return output(doc)
}
