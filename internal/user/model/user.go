package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin     = "admin"
	RoleTherapist = "therapist"
	RolePatient   = "patient"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName      string     `gorm:"not null"`
	LastName       string     `gorm:"not null"`
	Email          string     `gorm:"uniqueIndex;not null"`
	PasswordHashed string     `gorm:"column:password_hashed;not null"`
	Role           string     `gorm:"not null"`
	AccountStatus  string     `gorm:"not null"`
	LastLogin      *time.Time // nil until first successful login
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActive() bool {
	return u.AccountStatus == StatusActive
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PatientDetails is the dependent record created alongside every
// patient-role user, in the same transaction as the user row.
type PatientDetails struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (PatientDetails) TableName() string {
	return "patient_details"
}

// DashboardPath maps a role to its post-login landing page. Unknown
// roles fall through to the patient area; the caller logs them.
func DashboardPath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleTherapist:
		return "/therapist"
	default:
		return "/patient"
	}
}
