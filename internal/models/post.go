package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PostTypeFeatureRequest = "feature_request"
	PostTypeResearchTopic  = "research_topic"
)

const (
	PostStatusOpen       = "open"
	PostStatusInProgress = "in_progress"
	PostStatusCompleted  = "completed"
)

// Post is a feature request or research topic owned by a profile.
// Tags and SkillsRequired are stored as jsonb string arrays so that the
// browse filters can use jsonb overlap operators.
type Post struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AuthorID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Author            *Profile       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PostType          string         `gorm:"type:varchar(20);not null;index" json:"post_type"`
	Title             string         `gorm:"type:varchar(255);not null" json:"title"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Tags              datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	SkillsRequired    datatypes.JSON `gorm:"type:jsonb" json:"skills_required"`
	Timeline          *string        `gorm:"type:varchar(255)" json:"timeline"`
	HasFunding        bool           `gorm:"not null;default:false" json:"has_funding"`
	FundingDetails    *string        `gorm:"type:text" json:"funding_details"`
	OpenSourceProject *string        `gorm:"type:varchar(255)" json:"open_source_project"`
	Status            string         `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Collaborations []Collaboration `gorm:"foreignKey:PostID" json:"collaborations,omitempty"`
	Comments       []Comment       `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func ValidPostType(t string) bool {
	return t == PostTypeFeatureRequest || t == PostTypeResearchTopic
}

func ValidPostStatus(s string) bool {
	return s == PostStatusOpen || s == PostStatusInProgress || s == PostStatusCompleted
}
