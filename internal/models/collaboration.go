package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CollaborationInterested = "interested"
	CollaborationActive     = "active"
	CollaborationWithdrawn  = "withdrawn"
)

// Collaboration is the join row between a profile and a post. A pair is
// unique: rejoining after a withdrawal upserts the same row back to
// interested instead of inserting a duplicate.
type Collaboration struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_collaborations_post_user" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_collaborations_post_user;index" json:"user_id"`
	Message   *string   `gorm:"type:text" json:"message"`
	Status    string    `gorm:"type:varchar(20);not null;default:'interested'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *Profile `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post *Post    `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
