package model

import "time"

// Role values stored on User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered member of the site.
type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Username       string     `json:"username" gorm:"uniqueIndex;size:80;not null"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash   string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName      string     `json:"first_name,omitempty" gorm:"size:50"`
	LastName       string     `json:"last_name,omitempty" gorm:"size:50"`
	Bio            string     `json:"bio,omitempty" gorm:"type:text"`
	ProfilePicture string     `json:"profile_picture,omitempty" gorm:"size:500"`
	Twitter        string     `json:"twitter,omitempty" gorm:"size:100"`
	LinkedIn       string     `json:"linkedin,omitempty" gorm:"column:linkedin;size:100"`
	YouTube        string     `json:"youtube,omitempty" gorm:"column:youtube;size:100"`
	GitHub         string     `json:"github,omitempty" gorm:"column:github;size:100"`
	Role           string     `json:"role" gorm:"size:50;default:'user'"`
	JoinDate       time.Time  `json:"join_date" gorm:"autoCreateTime"`
	LastLogin      *time.Time `json:"last_login,omitempty"`

	// Relations
	Projects []Project `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
