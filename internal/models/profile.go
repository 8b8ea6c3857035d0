package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleResearcher = "researcher"
	RoleIndustry   = "industry"
)

// Profile holds the public identity of a user. Its primary key is the
// user's id, and the row is created as an empty stub on first sign-in
// when onboarding has not filled it yet.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName     *string   `gorm:"type:varchar(255)" json:"full_name"`
	Role         *string   `gorm:"type:varchar(20)" json:"role"`
	Organization *string   `gorm:"type:varchar(255)" json:"organization"`
	Bio          *string   `gorm:"type:text" json:"bio"`
	ContactEmail *string   `gorm:"type:varchar(255)" json:"contact_email"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func ValidRole(role string) bool {
	return role == RoleResearcher || role == RoleIndustry
}
