package models

import "time"

// User roles and statuses.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// User is an operator account. Password holds a bcrypt hash and is never
// serialized. Key is the one-time password-reset key.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:256"`
	Email     string    `json:"email" gorm:"not null;size:256;uniqueIndex"`
	Password  string    `json:"-" gorm:"not null;size:256"`
	Role      string    `json:"role" gorm:"not null;default:user"`
	Status    string    `json:"status" gorm:"not null;default:active"`
	Key       *string   `json:"-" gorm:"size:256"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

// Token is a server-side session reference. A JWT is only accepted while a
// matching row exists for its user; logout deletes the row.
type Token struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"not null;index"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// Installation records an activated installation by its IPv4 address.
type Installation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	IPv4      string    `json:"IPv4" gorm:"column:ipv4;not null;size:256;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
