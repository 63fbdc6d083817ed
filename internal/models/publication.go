package models

import "time"

// Publication schedules a post on a media account at a date
type Publication struct {
	ID      uint      `json:"id" gorm:"primaryKey" bson:"_id"`
	MediaID uint      `json:"mediaId" gorm:"not null;index" bson:"media_id"`
	PostID  uint      `json:"postId" gorm:"not null;index" bson:"post_id"`
	Date    time.Time `json:"date" gorm:"not null;index" bson:"date"`

	Media *Media `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" bson:"-"`
	Post  *Post  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" bson:"-"`
}

func (Publication) TableName() string {
	return "publications"
}

// Elapsed reports whether the publication date is strictly before now
func (p *Publication) Elapsed(now time.Time) bool {
	return p.Date.Before(now)
}

// PublicationFilter narrows a publication scan. Nil bounds impose no constraint.
type PublicationFilter struct {
	Before *time.Time // date < Before
	After  *time.Time // date >= After
}

// CreateOrUpdatePublicationRequest defines the request body for creating or replacing a publication
type CreateOrUpdatePublicationRequest struct {
	MediaID uint   `json:"mediaId" validate:"required,gt=0"`
	PostID  uint   `json:"postId" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required,isodate"`
}
