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
	OrganizerID string    `json:"organizer_id"`
	Organizer   *User     `json:"organizer,omitempty"`
}

type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MeetupID  string    `json:"meetup_id"`
	CreatedAt time.Time `json:"created_at"`
	Meetup    *Meetup   `json:"meetup,omitempty"`
}
