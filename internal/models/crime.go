package models

import "time"

// Gang values accepted for a crime record.
const (
	GangYes = "Yes"
	GangNo  = "No"
)

// Crime is a case record. Criminals are linked through CrimeByCriminal.
type Crime struct {
	ID                           uint       `json:"id" gorm:"primaryKey"`
	TypeOfCrime                  string     `json:"typeOfCrime" gorm:"not null;size:256"`
	SectionOfLaw                 string     `json:"sectionOfLaw" gorm:"not null;size:256"`
	MobFileNo                    *string    `json:"mobFileNo" gorm:"size:256"`
	HsNo                         *string    `json:"hsNo" gorm:"size:256;uniqueIndex"`
	DateOfCrime                  *time.Time `json:"dateOfCrime"`
	HsOpeningDate                *time.Time `json:"hsOpeningDate"`
	HsClosingDate                *time.Time `json:"hsClosingDate"`
	PoliceStation                *string    `json:"policeStation" gorm:"size:256"`
	FirNo                        *string    `json:"firNo" gorm:"size:256"`
	CrimeGroup                   *string    `json:"crimeGroup" gorm:"size:256"`
	CrimeHead                    *string    `json:"crimeHead" gorm:"size:256"`
	CrimeClass                   *string    `json:"crimeClass" gorm:"size:256"`
	BriefFact                    *string    `json:"briefFact"`
	CluesLeft                    *string    `json:"cluesLeft"`
	LanguagesKnown               *string    `json:"languagesKnown" gorm:"size:256"`
	LanguagesUsed                *string    `json:"languagesUsed" gorm:"size:256"`
	PlaceAttacked                *string    `json:"placeAttacked"`
	PlaceOfAssemblyAfterOffence  *string    `json:"placeOfAssemblyAfterOffence"`
	PlaceOfAssemblyBeforeOffence *string    `json:"placeOfAssemblyBeforeOffence"`
	PropertiesAttacked           *string    `json:"propertiesAttacked"`
	StyleAssumed                 *string    `json:"styleAssumed"`
	ToolsUsed                    *string    `json:"toolsUsed"`
	TradeMarks                   *string    `json:"tradeMarks"`
	TransportUsedAfter           *string    `json:"transportUsedAfter"`
	TransportUsedBefore          *string    `json:"transportUsedBefore"`
	Gang                         string     `json:"gang" gorm:"not null;default:No"`
	GangStrength                 *string    `json:"gangStrength" gorm:"size:256"`
	CreatedBy                    *uint      `json:"-" gorm:"column:user_id"`
	CreatedAt                    time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt                    time.Time  `json:"-" gorm:"autoUpdateTime"`

	Criminals []CrimeByCriminal `json:"-" gorm:"foreignKey:CrimeID"`
}

// CrimeByCriminal captures a criminal's participation in a crime, with
// per-link attributes. The (crime_id, criminal_id) pair is unique.
type CrimeByCriminal struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	CrimeID          uint      `json:"crimeId" gorm:"not null;uniqueIndex:idx_crime_criminal"`
	CriminalID       uint      `json:"criminalId" gorm:"not null;uniqueIndex:idx_crime_criminal"`
	Aliases          *string   `json:"aliases" gorm:"size:256"`
	AgeWhileOpening  *string   `json:"ageWhileOpening" gorm:"size:256"`
	CrimeArrestOrder *string   `json:"crimeArrestOrder" gorm:"size:256"`
	CreatedAt        time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"-" gorm:"autoUpdateTime"`

	Crime    *Crime    `json:"crime,omitempty" gorm:"foreignKey:CrimeID"`
	Criminal *Criminal `json:"criminal,omitempty" gorm:"foreignKey:CriminalID"`
}

// TableName keeps the join table name aligned with the API path.
func (CrimeByCriminal) TableName() string {
	return "crimes_by_criminals"
}
