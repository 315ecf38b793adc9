package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/crimebase/crimebase/internal/excel"
)

// workbook builds an uploadable xlsx: a generated header row followed by the
// given data rows with fixed cell positions.
func workbook(t *testing.T, rows ...[]string) *bytes.Reader {
	t.Helper()
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	cols := make([]excel.Column, width)
	for i := range cols {
		cols[i] = excel.Column{Key: strconv.Itoa(i), Header: "Col " + strconv.Itoa(i+1)}
	}
	data := make([]excel.Row, 0, len(rows))
	for _, r := range rows {
		row := excel.Row{}
		for i, cell := range r {
			row[strconv.Itoa(i)] = cell
		}
		data = append(data, row)
	}
	buf, err := excel.Build("Import", cols, data)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

// readFailedReport loads the stored failure report back as string rows.
func readFailedReport(t *testing.T, s *Service, fileName string) [][]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.cfg.Uploads.FailedDir, fileName))
	if err != nil {
		t.Fatalf("read failed report: %v", err)
	}
	rows, err := excel.ReadRows(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed report: %v", err)
	}
	return rows
}

func TestImportUsers_MixedRows(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	mustCreateUser(t, s, "taken@example.com")

	// name, email, password, confirm_password, role
	src := workbook(t,
		[]string{"Asha", "asha@example.com", "secret", "secret", "admin"},
		[]string{"Bad", "not-an-email", "secret", "different", ""},
		[]string{"Binu", "binu@example.com", "secret", "secret", ""},
		[]string{"Dup", "taken@example.com", "secret", "secret", ""},
	)

	res, err := s.ImportUsers(ctx, src)
	if err != nil {
		t.Fatalf("ImportUsers() error = %v", err)
	}
	if res.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", res.SuccessCount)
	}
	if res.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", res.ErrorCount)
	}
	if res.FileName == nil {
		t.Fatal("FileName = nil, want a failure report")
	}

	// both imported accounts exist with the sheet's roles
	asha, err := s.repos.Users.GetByEmail(ctx, "asha@example.com", 0)
	if err != nil || asha == nil {
		t.Fatalf("imported user missing: %v %v", asha, err)
	}
	if asha.Role != "admin" {
		t.Errorf("Role = %q, want admin from sheet", asha.Role)
	}
	binu, err := s.repos.Users.GetByEmail(ctx, "binu@example.com", 0)
	if err != nil || binu == nil {
		t.Fatalf("imported user missing: %v %v", binu, err)
	}
	if binu.Role != "user" {
		t.Errorf("Role = %q, want default user", binu.Role)
	}

	// report holds exactly the failed rows in input order, error text last
	report := readFailedReport(t, s, *res.FileName)
	if len(report) != 3 {
		t.Fatalf("report has %d rows, want header + 2 failures", len(report))
	}
	if excel.Cell(report[1], 1) != "not-an-email" {
		t.Errorf("first failure = %v", report[1])
	}
	if excel.Cell(report[2], 1) != "taken@example.com" {
		t.Errorf("second failure = %v", report[2])
	}
	for _, row := range report[1:] {
		if excel.Cell(row, 5) == "" {
			t.Errorf("failure row without error text: %v", row)
		}
	}
}

func TestImportUsers_AllValid(t *testing.T) {
	s := newTestService(t)

	res, err := s.ImportUsers(context.Background(), workbook(t,
		[]string{"Asha", "asha@example.com", "secret", "secret", ""},
	))
	if err != nil {
		t.Fatalf("ImportUsers() error = %v", err)
	}
	if res.SuccessCount != 1 || res.ErrorCount != 0 {
		t.Errorf("counts = %d/%d, want 1/0", res.SuccessCount, res.ErrorCount)
	}
	if res.FileName != nil {
		t.Errorf("FileName = %q, want nil when nothing failed", *res.FileName)
	}
}

func TestImportUsers_SkipsEmptyRows(t *testing.T) {
	s := newTestService(t)

	res, err := s.ImportUsers(context.Background(), workbook(t,
		[]string{"Asha", "asha@example.com", "secret", "secret", ""},
		[]string{"", "", "", "", ""},
		[]string{"Binu", "binu@example.com", "secret", "secret", ""},
	))
	if err != nil {
		t.Fatalf("ImportUsers() error = %v", err)
	}
	if res.SuccessCount != 2 || res.ErrorCount != 0 {
		t.Errorf("counts = %d/%d, want 2/0 with the blank row skipped", res.SuccessCount, res.ErrorCount)
	}
}

func TestImportCriminals_SheetLayout(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// the upload sheet starts at name, not at the export's leading ID column
	row := []string{
		"Rajan Kumar", "Male", "1990-05-17",
		"Old Town", "New Town", "9845012345", "123412341234",
		"Mohan", "Kamala", "Seema", "Hindu", "General",
		"FPB-11", "CL-4", "Driver", "Matric", "Central PS", "Ernakulam",
	}
	res, err := s.ImportCriminals(ctx, workbook(t, row), 0)
	if err != nil {
		t.Fatalf("ImportCriminals() error = %v", err)
	}
	if res.SuccessCount != 1 || res.ErrorCount != 0 {
		t.Fatalf("counts = %d/%d, want 1/0", res.SuccessCount, res.ErrorCount)
	}

	got, err := s.repos.Criminals.GetByAadhar(ctx, "123412341234", 0)
	if err != nil || got == nil {
		t.Fatalf("imported criminal missing: %v %v", got, err)
	}
	want := map[string]*string{
		"permanent_address":         got.PermanentAddress,
		"present_address":           got.PresentAddress,
		"phone":                     got.Phone,
		"father_name":               got.FatherName,
		"mother_name":               got.MotherName,
		"spouse_name":               got.SpouseName,
		"religion":                  got.Religion,
		"caste":                     got.Caste,
		"fpb_sl_no":                 got.FpbSlNo,
		"fpb_classn_no":             got.FpbClassnNo,
		"occupation":                got.Occupation,
		"educational_qualification": got.EducationalQualification,
		"native_ps":                 got.NativePs,
		"native_district":           got.NativeDistrict,
	}
	expected := map[string]string{
		"permanent_address":         "Old Town",
		"present_address":           "New Town",
		"phone":                     "9845012345",
		"father_name":               "Mohan",
		"mother_name":               "Kamala",
		"spouse_name":               "Seema",
		"religion":                  "Hindu",
		"caste":                     "General",
		"fpb_sl_no":                 "FPB-11",
		"fpb_classn_no":             "CL-4",
		"occupation":                "Driver",
		"educational_qualification": "Matric",
		"native_ps":                 "Central PS",
		"native_district":           "Ernakulam",
	}
	for field, ptr := range want {
		val := ""
		if ptr != nil {
			val = *ptr
		}
		if val != expected[field] {
			t.Errorf("%s = %q, want %q", field, val, expected[field])
		}
	}
	if got.Name != "Rajan Kumar" || got.Sex != "Male" {
		t.Errorf("name/sex = %q/%q", got.Name, got.Sex)
	}
	if got.Dob == nil || got.Dob.Format("2006-01-02") != "1990-05-17" {
		t.Errorf("dob = %v", got.Dob)
	}
}

func TestImportLinks(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	criminal := mustCreateCriminal(t, s, "Rajan")
	crime := mustCreateCrime(t, s, "Theft")

	// aliases, ageWhileOpening, crimeArrestOrder, criminalId
	res, err := s.ImportLinks(ctx, workbook(t,
		[]string{"Raju", "32", "1", strconv.Itoa(int(criminal.ID))},
		[]string{"Ghost", "", "", "9999"},
	), crime.ID)
	if err != nil {
		t.Fatalf("ImportLinks() error = %v", err)
	}
	if res.SuccessCount != 1 {
		t.Errorf("SuccessCount = %d, want 1", res.SuccessCount)
	}
	if res.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", res.ErrorCount)
	}
	if res.FileName == nil {
		t.Fatal("FileName = nil, want a failure report")
	}

	link, err := s.repos.Links.GetByPair(ctx, crime.ID, criminal.ID, 0)
	if err != nil {
		t.Fatalf("GetByPair() error = %v", err)
	}
	if link == nil {
		t.Fatal("imported link missing")
	}
	if link.Aliases == nil || *link.Aliases != "Raju" {
		t.Errorf("Aliases = %v", link.Aliases)
	}

	// the raw criminalId cell is echoed in the report
	report := readFailedReport(t, s, *res.FileName)
	if len(report) != 2 {
		t.Fatalf("report has %d rows, want header + 1 failure", len(report))
	}
	if excel.Cell(report[1], 3) != "9999" {
		t.Errorf("failure row = %v, want raw criminalId echoed", report[1])
	}
}

func TestImportCriminals(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// name, sex, dob, permanent_address, present_address, phone, aadhar_no, ...
	res, err := s.ImportCriminals(ctx, workbook(t,
		[]string{"Rajan Kumar", "Male", "1990-05-17", "Old Town", "New Town", "9845012345", "123412341234"},
		[]string{"", "Male"},
		[]string{"Leela Devi", "Unknown"},
	), 0)
	if err != nil {
		t.Fatalf("ImportCriminals() error = %v", err)
	}
	if res.SuccessCount != 1 {
		t.Errorf("SuccessCount = %d, want 1", res.SuccessCount)
	}
	if res.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", res.ErrorCount)
	}

	got, err := s.repos.Criminals.GetByAadhar(ctx, "123412341234", 0)
	if err != nil {
		t.Fatalf("GetByAadhar() error = %v", err)
	}
	if got == nil {
		t.Fatal("imported criminal missing")
	}
	if got.Name != "Rajan Kumar" || got.Sex != "Male" {
		t.Errorf("imported criminal = %q/%q", got.Name, got.Sex)
	}
	if got.Dob == nil {
		t.Error("dob cell not parsed")
	}
}
