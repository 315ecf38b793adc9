package models

import "time"

// Court is a legal proceeding against an accused criminal for a crime.
// Hearings hang off a court record.
type Court struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	CourtName             string     `json:"courtName" gorm:"not null;size:256"`
	CcScNo                *string    `json:"ccScNo" gorm:"size:256"`
	PsName                *string    `json:"psName" gorm:"size:256"`
	HearingDate           *time.Time `json:"hearingDate"`
	NextHearingDate       *time.Time `json:"nextHearingDate"`
	Attendance            *string    `json:"attendance" gorm:"size:256"`
	LawyerName            *string    `json:"lawyerName" gorm:"size:256"`
	LawyerContact         *string    `json:"lawyerContact" gorm:"size:256"`
	SuretyProviderDetail  *string    `json:"suretyProviderDetail"`
	SuretyProviderContact *string    `json:"suretyProviderContact" gorm:"size:256"`
	StageOfCase           *string    `json:"stageOfCase" gorm:"size:256"`
	AdditionalRemarks     *string    `json:"additionalRemarks"`
	CriminalID            *uint      `json:"criminalId"`
	CrimeID               *uint      `json:"crimeId"`
	CreatedAt             time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `json:"-" gorm:"autoUpdateTime"`

	Accused *Criminal `json:"accused,omitempty" gorm:"foreignKey:CriminalID"`
	Crime   *Crime    `json:"crime,omitempty" gorm:"foreignKey:CrimeID"`
}

// Hearing is a single session of a court proceeding.
type Hearing struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	HearingDate       *time.Time `json:"hearingDate"`
	NextHearingDate   *time.Time `json:"nextHearingDate"`
	Attendance        *string    `json:"attendance" gorm:"size:256"`
	JudgeName         *string    `json:"judgeName" gorm:"size:256"`
	ActionCode        *string    `json:"actionCode" gorm:"size:256"`
	AdditionalRemarks *string    `json:"additionalRemarks"`
	CourtID           *uint      `json:"courtId"`
	CreatedAt         time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"-" gorm:"autoUpdateTime"`

	Court *Court `json:"court,omitempty" gorm:"foreignKey:CourtID"`
}
