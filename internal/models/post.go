package models

// Post represents a piece of content, independent of any schedule
type Post struct {
	ID    uint    `json:"id" gorm:"primaryKey" bson:"_id"`
	Title string  `json:"title" gorm:"not null" bson:"title"`
	Text  string  `json:"text" gorm:"not null" bson:"text"`
	Image *string `json:"image" bson:"image,omitempty"` // nil when the post has no image
}

func (Post) TableName() string {
	return "posts"
}

// CreateOrUpdatePostRequest defines the request body for creating or replacing a post
type CreateOrUpdatePostRequest struct {
	Title string  `json:"title" validate:"required"`
	Text  string  `json:"text" validate:"required"`
	Image *string `json:"image,omitempty" validate:"omitempty"`
}
