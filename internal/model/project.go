package model

import "time"

// Project is a portfolio entry owned by a User.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"size:500"`
	URL         string    `json:"url,omitempty" gorm:"column:url;size:500"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	User     *User     `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// OwnerUsername returns the joined owner's username, or "" when the owner was not loaded.
func (p *Project) OwnerUsername() string {
	if p.User == nil {
		return ""
	}
	return p.User.Username
}
