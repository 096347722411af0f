package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subscription struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_meetup" json:"user_id"`
	MeetupID  string         `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_meetup" json:"meetup_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign keys
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Meetup Meetup `gorm:"foreignKey:MeetupID" json:"-"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
