package models

import "time"

// Jail is a detention record for an accused criminal. Visitor log entries
// hang off a jail record.
type Jail struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	LawSection          *string    `json:"lawSection" gorm:"size:256"`
	PoliceStation       *string    `json:"policeStation" gorm:"size:256"`
	JailName            *string    `json:"jailName" gorm:"size:256"`
	JailID              *string    `json:"jailId" gorm:"column:jail_code;size:256"`
	PrisonerID          *string    `json:"prisonerId" gorm:"size:256"`
	PrisonerType        *string    `json:"prisonerType" gorm:"size:256"`
	Ward                *string    `json:"ward" gorm:"size:256"`
	Barrack             *string    `json:"barrack" gorm:"size:256"`
	RegisterNo          *string    `json:"registerNo" gorm:"size:256"`
	PeriodUndergone     *string    `json:"periodUndergone" gorm:"size:256"`
	FirstAdmissionDate  *time.Time `json:"firstAdmissionDate"`
	JailEntryDate       *time.Time `json:"jailEntryDate"`
	JailReleaseDate     *time.Time `json:"jailReleaseDate"`
	UtpNo               *string    `json:"utpNo" gorm:"size:256"`
	JailVisitorDetail   *string    `json:"jailVisitorDetail"`
	VisitorRelationship *string    `json:"visitorRelationship" gorm:"size:256"`
	AdditionalRemarks   *string    `json:"additionalRemarks"`
	CriminalID          *uint      `json:"criminalId"`
	CrimeID             *uint      `json:"crimeId"`
	CreatedAt           time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt           time.Time  `json:"-" gorm:"autoUpdateTime"`

	Accused *Criminal `json:"accused,omitempty" gorm:"foreignKey:CriminalID"`
	Crime   *Crime    `json:"crime,omitempty" gorm:"foreignKey:CrimeID"`
}

// Visitor is a visit log entry against a jail record. The field name
// visitonDate matches the wire format used by existing clients.
type Visitor struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	VisitonDate       *time.Time `json:"visitonDate"`
	Name              *string    `json:"name" gorm:"size:256"`
	Relation          *string    `json:"relation" gorm:"size:256"`
	AdditionalRemarks *string    `json:"additionalRemarks"`
	JailID            *uint      `json:"jailId"`
	CreatedAt         time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"-" gorm:"autoUpdateTime"`

	Jail *Jail `json:"jail,omitempty" gorm:"foreignKey:JailID"`
}
