package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Meetup struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Location    string         `gorm:"not null" json:"location"`
	Date        time.Time      `gorm:"not null;index" json:"date"`
	BannerURL   string         `json:"banner_url"`
	OrganizerID string         `gorm:"type:uuid;not null;index" json:"organizer_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign keys
	Organizer User `gorm:"foreignKey:OrganizerID" json:"-"`
}

func (m *Meetup) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// Past reports whether the meetup date is already behind the given instant.
// Past meetups stay browsable but are closed to new subscriptions.
func (m *Meetup) Past(now time.Time) bool {
	return m.Date.Before(now)
}
