package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/crimebase/crimebase/internal/database"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
)

// newTestRepos opens an isolated in-memory database with the full schema.
func newTestRepos(t *testing.T) *Repos {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func strPtr(s string) *string { return &s }

func seedCriminal(t *testing.T, repos *Repos, name string, mutate func(*models.Criminal)) *models.Criminal {
	t.Helper()
	c := &models.Criminal{Name: name, Sex: models.SexMale}
	if mutate != nil {
		mutate(c)
	}
	if err := repos.Criminals.Create(context.Background(), c); err != nil {
		t.Fatalf("seed criminal: %v", err)
	}
	return c
}

func seedCrime(t *testing.T, repos *Repos, typeOfCrime string, mutate func(*models.Crime)) *models.Crime {
	t.Helper()
	c := &models.Crime{TypeOfCrime: typeOfCrime, SectionOfLaw: "IPC 379", Gang: models.GangNo}
	if mutate != nil {
		mutate(c)
	}
	if err := repos.Crimes.Create(context.Background(), c); err != nil {
		t.Fatalf("seed crime: %v", err)
	}
	return c
}

func TestCriminalSearch_CaseInsensitiveOrMatch(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	seedCriminal(t, repos, "Rajan Kumar", func(c *models.Criminal) {
		c.Caste = strPtr("Unknown")
	})
	seedCriminal(t, repos, "Leela Devi", func(c *models.Criminal) {
		c.Occupation = strPtr("driver at RAJAN transport")
	})
	seedCriminal(t, repos, "Someone Else", nil)

	// search matches name on one record and occupation on another
	got, err := repos.Criminals.GetAll(ctx, "rajan")
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}

	n, err := repos.Criminals.Count(ctx, "rajan")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestCriminalPaginate_NewestFirstWindow(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third", "Fourth", "Fifth"} {
		seedCriminal(t, repos, name, nil)
	}

	page1, err := repos.Criminals.Paginate(ctx, pagination.ParamsFor(1, 2), "")
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 has %d rows, want 2", len(page1))
	}
	if page1[0].Name != "Fifth" || page1[1].Name != "Fourth" {
		t.Errorf("page 1 = [%s, %s], want newest first", page1[0].Name, page1[1].Name)
	}

	page3, err := repos.Criminals.Paginate(ctx, pagination.ParamsFor(3, 2), "")
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	if len(page3) != 1 || page3[0].Name != "First" {
		t.Errorf("page 3 = %v, want the single oldest row", page3)
	}
}

func TestCriminalGetByAadhar_ExcludeID(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	c := seedCriminal(t, repos, "Rajan", func(c *models.Criminal) {
		c.AadharNo = strPtr("123412341234")
	})

	found, err := repos.Criminals.GetByAadhar(ctx, "123412341234", 0)
	if err != nil {
		t.Fatalf("GetByAadhar() error = %v", err)
	}
	if found == nil || found.ID != c.ID {
		t.Fatalf("GetByAadhar() = %v, want record %d", found, c.ID)
	}

	// excluding the holder itself finds nothing, so updates pass
	found, err = repos.Criminals.GetByAadhar(ctx, "123412341234", c.ID)
	if err != nil {
		t.Fatalf("GetByAadhar() error = %v", err)
	}
	if found != nil {
		t.Errorf("GetByAadhar(exclude holder) = %v, want nil", found)
	}
}

func TestCriminalGetByID_Missing(t *testing.T) {
	repos := newTestRepos(t)

	got, err := repos.Criminals.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByID(999) = %v, want nil", got)
	}
}

func TestCriminalUpdate_ClearsOmittedFields(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	c := seedCriminal(t, repos, "Rajan", func(c *models.Criminal) {
		c.Caste = strPtr("Unknown")
	})

	// full-record update: a nil pointer clears the stored column
	err := repos.Criminals.Update(ctx, c.ID, &models.Criminal{Name: "Rajan K", Sex: models.SexMale})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repos.Criminals.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Rajan K" {
		t.Errorf("Name = %q, want %q", got.Name, "Rajan K")
	}
	if got.Caste != nil {
		t.Errorf("Caste = %v, want cleared", *got.Caste)
	}
}

func TestLinkGetByPair(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	criminal := seedCriminal(t, repos, "Rajan", nil)
	crime := seedCrime(t, repos, "Theft", nil)

	link := &models.CrimeByCriminal{CrimeID: crime.ID, CriminalID: criminal.ID}
	if err := repos.Links.Create(ctx, link); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repos.Links.GetByPair(ctx, crime.ID, criminal.ID, 0)
	if err != nil {
		t.Fatalf("GetByPair() error = %v", err)
	}
	if found == nil || found.ID != link.ID {
		t.Fatalf("GetByPair() = %v, want link %d", found, link.ID)
	}

	found, err = repos.Links.GetByPair(ctx, crime.ID, criminal.ID, link.ID)
	if err != nil {
		t.Fatalf("GetByPair() error = %v", err)
	}
	if found != nil {
		t.Errorf("GetByPair(exclude self) = %v, want nil", found)
	}

	found, err = repos.Links.GetByPair(ctx, crime.ID+1, criminal.ID, 0)
	if err != nil {
		t.Fatalf("GetByPair() error = %v", err)
	}
	if found != nil {
		t.Errorf("GetByPair(other crime) = %v, want nil", found)
	}
}

func TestLinkFilterAndPreload(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	rajan := seedCriminal(t, repos, "Rajan", nil)
	leela := seedCriminal(t, repos, "Leela", nil)
	theft := seedCrime(t, repos, "Theft", nil)
	robbery := seedCrime(t, repos, "Robbery", nil)

	for _, link := range []*models.CrimeByCriminal{
		{CrimeID: theft.ID, CriminalID: rajan.ID},
		{CrimeID: theft.ID, CriminalID: leela.ID},
		{CrimeID: robbery.ID, CriminalID: rajan.ID},
	} {
		if err := repos.Links.Create(ctx, link); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	byCrime, err := repos.Links.GetAll(ctx, "", LinkFilter{CrimeID: theft.ID})
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(byCrime) != 2 {
		t.Fatalf("filter by crime: %d rows, want 2", len(byCrime))
	}
	if byCrime[0].Criminal == nil || byCrime[0].Crime == nil {
		t.Error("relations not preloaded")
	}

	byCriminal, err := repos.Links.GetAll(ctx, "", LinkFilter{CriminalID: rajan.ID})
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(byCriminal) != 2 {
		t.Errorf("filter by criminal: %d rows, want 2", len(byCriminal))
	}

	// search traverses into the linked criminal's name
	matched, err := repos.Links.GetAll(ctx, "leela", LinkFilter{})
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(matched) != 1 || matched[0].CriminalID != leela.ID {
		t.Errorf("search by criminal name = %v, want Leela's link", matched)
	}
}

func TestUserGetByEmail(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	u := &models.User{Name: "Admin", Email: "admin@example.com", Password: "hash", Role: models.RoleAdmin, Status: models.StatusActive}
	if err := repos.Users.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repos.Users.GetByEmail(ctx, "admin@example.com", 0)
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found == nil || found.ID != u.ID {
		t.Fatalf("GetByEmail() = %v", found)
	}

	found, err = repos.Users.GetByEmail(ctx, "admin@example.com", u.ID)
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found != nil {
		t.Errorf("GetByEmail(exclude holder) = %v, want nil", found)
	}
}

func TestTokenLifecycle(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	if err := repos.Tokens.Insert(ctx, "tok-a", 1); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := repos.Tokens.Insert(ctx, "tok-b", 1); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := repos.Tokens.Insert(ctx, "tok-c", 2); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	row, err := repos.Tokens.Get(ctx, "tok-a", 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if row == nil {
		t.Fatal("Get() = nil for a stored token")
	}

	// a token row is bound to its user
	row, err = repos.Tokens.Get(ctx, "tok-a", 2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if row != nil {
		t.Error("Get() matched a token under the wrong user")
	}

	if err := repos.Tokens.Delete(ctx, "tok-a", 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	row, err = repos.Tokens.Get(ctx, "tok-a", 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if row != nil {
		t.Error("token survived Delete")
	}

	// revoking a user removes all their sessions, not other users'
	if err := repos.Tokens.DeleteForUser(ctx, 1); err != nil {
		t.Fatalf("DeleteForUser() error = %v", err)
	}
	row, err = repos.Tokens.Get(ctx, "tok-b", 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if row != nil {
		t.Error("user 1 token survived DeleteForUser")
	}
	row, err = repos.Tokens.Get(ctx, "tok-c", 2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if row == nil {
		t.Error("user 2 token was removed by user 1 revocation")
	}
}

func TestInstallationGetByIPv4(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	inst := &models.Installation{IPv4: "10.0.0.5"}
	if err := repos.Installations.Create(ctx, inst); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repos.Installations.GetByIPv4(ctx, "10.0.0.5")
	if err != nil {
		t.Fatalf("GetByIPv4() error = %v", err)
	}
	if found == nil || found.ID != inst.ID {
		t.Fatalf("GetByIPv4() = %v", found)
	}

	found, err = repos.Installations.GetByIPv4(ctx, "10.0.0.6")
	if err != nil {
		t.Fatalf("GetByIPv4() error = %v", err)
	}
	if found != nil {
		t.Errorf("GetByIPv4(unknown) = %v, want nil", found)
	}
}
