package entity

import "time"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Meetup struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	BannerURL   string    `json:"banner_url"`
	OrganizerID string    `json:"organizer_id"`
	Past        bool      `json:"past"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Organizer   *User     `json:"organizer,omitempty"`
}
