package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/crimebase/crimebase/internal/models"
)

func TestCriminalSheet(t *testing.T) {
	dob := time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC)
	aadhar := "123412341234"
	c := &models.Criminal{
		ID:       1,
		Name:     "Rajan Kumar",
		Sex:      models.SexMale,
		Dob:      &dob,
		AadharNo: &aadhar,
	}

	buf, err := Criminal(c)
	if err != nil {
		t.Fatalf("Criminal() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestCrimeSheet(t *testing.T) {
	hsNo := "HS-42"
	aliases := "Raju"
	c := &models.Crime{
		ID:           1,
		TypeOfCrime:  "Theft",
		SectionOfLaw: "IPC 379",
		HsNo:         &hsNo,
		Gang:         models.GangNo,
		Criminals: []models.CrimeByCriminal{
			{
				CriminalID: 2,
				Aliases:    &aliases,
				Criminal:   &models.Criminal{ID: 2, Name: "Rajan Kumar", Sex: models.SexMale},
			},
		},
	}

	buf, err := Crime(c)
	if err != nil {
		t.Fatalf("Crime() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}

	// handles a record with no linked criminals
	if _, err := Crime(&models.Crime{TypeOfCrime: "Theft", SectionOfLaw: "IPC 379"}); err != nil {
		t.Errorf("Crime(no accused) error = %v", err)
	}
}
