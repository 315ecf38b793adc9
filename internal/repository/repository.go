// Package repository implements the per-entity data access layer on gorm.
// Every entity exposes the same operation set: create, update, paginate,
// getAll, count, getById, remove. Search is a case-insensitive substring
// OR-match across a fixed list of text columns, optionally traversing one
// relation (the accused criminal's name, the crime's type). Listing order is
// always descending by primary key.
package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/crimebase/crimebase/internal/pagination"
)

// Repos bundles every entity repository over one shared gorm handle.
type Repos struct {
	Criminals     *CriminalRepo
	Crimes        *CrimeRepo
	Links         *CrimeByCriminalRepo
	Courts        *CourtRepo
	Hearings      *HearingRepo
	Jails         *JailRepo
	Visitors      *VisitorRepo
	Users         *UserRepo
	Tokens        *TokenRepo
	Installations *InstallationRepo
}

// New wires all repositories to a database handle.
func New(db *gorm.DB) *Repos {
	return &Repos{
		Criminals:     &CriminalRepo{db: db},
		Crimes:        &CrimeRepo{db: db},
		Links:         &CrimeByCriminalRepo{db: db},
		Courts:        &CourtRepo{db: db},
		Hearings:      &HearingRepo{db: db},
		Jails:         &JailRepo{db: db},
		Visitors:      &VisitorRepo{db: db},
		Users:         &UserRepo{db: db},
		Tokens:        &TokenRepo{db: db},
		Installations: &InstallationRepo{db: db},
	}
}

// searchScope builds a case-insensitive OR-match over the given columns.
// Column names must be qualified when the query joins other tables.
func searchScope(cols []string, search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" {
			return db
		}
		like := "%" + strings.ToLower(search) + "%"
		conds := make([]string, len(cols))
		args := make([]any, len(cols))
		for i, col := range cols {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// window applies a pagination window.
func window(p pagination.Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(p.Limit).Offset(p.Offset)
	}
}
