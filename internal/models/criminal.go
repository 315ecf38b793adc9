// Package models defines the persisted entities for the records-management
// backend. All entities are flat records related by integer foreign keys and
// carry createdAt/updatedAt timestamps maintained by gorm.
package models

import "time"

// Sex values accepted for a criminal record.
const (
	SexMale   = "Male"
	SexFemale = "Female"
	SexOthers = "Others"
)

// Criminal is a tracked individual with biographic and biometric
// descriptive fields. Photos are stored on disk under generated
// filenames; the columns hold only the filename.
type Criminal struct {
	ID                       uint       `json:"id" gorm:"primaryKey"`
	Name                     string     `json:"name" gorm:"not null"`
	Sex                      string     `json:"sex" gorm:"not null"`
	Dob                      *time.Time `json:"dob"`
	PermanentAddress         *string    `json:"permanent_address"`
	PresentAddress           *string    `json:"present_address"`
	Phone                    *string    `json:"phone" gorm:"size:256"`
	AadharNo                 *string    `json:"aadhar_no" gorm:"size:256;uniqueIndex"`
	AadharPhoto              *string    `json:"aadhar_photo" gorm:"size:256"`
	Photo                    *string    `json:"photo" gorm:"size:256"`
	FatherName               *string    `json:"father_name" gorm:"size:256"`
	MotherName               *string    `json:"mother_name" gorm:"size:256"`
	SpouseName               *string    `json:"spouse_name" gorm:"size:256"`
	Religion                 *string    `json:"religion" gorm:"size:256"`
	Caste                    *string    `json:"caste" gorm:"size:256"`
	FpbSlNo                  *string    `json:"fpb_sl_no" gorm:"size:256"`
	FpbClassnNo              *string    `json:"fpb_classn_no" gorm:"size:256"`
	Occupation               *string    `json:"occupation" gorm:"size:256"`
	EducationalQualification *string    `json:"educational_qualification"`
	NativePs                 *string    `json:"native_ps" gorm:"size:256"`
	NativeDistrict           *string    `json:"native_district" gorm:"size:256"`
	Voice                    *string    `json:"voice" gorm:"size:256"`
	Build                    *string    `json:"build" gorm:"size:256"`
	Complexion               *string    `json:"complexion" gorm:"size:256"`
	Teeth                    *string    `json:"teeth" gorm:"size:256"`
	Hair                     *string    `json:"hair" gorm:"size:256"`
	Eyes                     *string    `json:"eyes" gorm:"size:256"`
	Habits                   *string    `json:"habbits" gorm:"column:habbits;size:256"`
	BurnMarks                *string    `json:"burnMarks" gorm:"size:256"`
	Tattoo                   *string    `json:"tattoo" gorm:"size:256"`
	Mole                     *string    `json:"mole" gorm:"size:256"`
	Scar                     *string    `json:"scar" gorm:"size:256"`
	Leucoderma               *string    `json:"leucoderma" gorm:"size:256"`
	FaceHead                 *string    `json:"faceHead" gorm:"size:256"`
	OtherPartsBody           *string    `json:"otherPartsBody" gorm:"size:256"`
	DressUsed                *string    `json:"dressUsed" gorm:"size:256"`
	Beard                    *string    `json:"beard" gorm:"size:256"`
	Face                     *string    `json:"face" gorm:"size:256"`
	Moustache                *string    `json:"moustache" gorm:"size:256"`
	Nose                     *string    `json:"nose" gorm:"size:256"`
	CreatedBy                *uint      `json:"-" gorm:"column:user_id"`
	CreatedAt                time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt                time.Time  `json:"-" gorm:"autoUpdateTime"`
}
