package models

// Media represents a social media account publications are scheduled on
type Media struct {
	ID       uint   `json:"id" gorm:"primaryKey" bson:"_id"`
	Title    string `json:"title" gorm:"not null;uniqueIndex:idx_medias_title_username" bson:"title"`
	Username string `json:"username" gorm:"not null;uniqueIndex:idx_medias_title_username" bson:"username"`
}

// TableName keeps the plural used by existing databases
func (Media) TableName() string {
	return "medias"
}

// MediaSummary is the projection returned after an update
type MediaSummary struct {
	Title    string `json:"title"`
	Username string `json:"username"`
}

// CreateOrUpdateMediaRequest defines the request body for creating or replacing a media
type CreateOrUpdateMediaRequest struct {
	Title    string `json:"title" validate:"required"`
	Username string `json:"username" validate:"required"`
}
