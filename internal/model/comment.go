package model

import "time"

// Comment is a note left by a User on a Project.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ProjectID uint      `json:"project_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
