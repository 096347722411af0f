package model

import (
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}

type MeetupModel struct {
	ID          string    `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Location    string    `gorm:"not null"`
	Date        time.Time `gorm:"not null;index"`
	BannerURL   string
	OrganizerID string `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Organizer *UserModel `gorm:"foreignKey:OrganizerID"`
}

func (MeetupModel) TableName() string {
	return "meetups"
}
