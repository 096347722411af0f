package persistent

import (
	"time"

	"meetapp/services/meetup/internal/entity"
	"meetapp/services/meetup/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
	}
}

func ToMeetupEntity(m *model.MeetupModel) *entity.Meetup {
	if m == nil {
		return nil
	}

	return &entity.Meetup{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Date:        m.Date,
		BannerURL:   m.BannerURL,
		OrganizerID: m.OrganizerID,
		Past:        m.Date.Before(time.Now()),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Organizer:   ToUserEntity(m.Organizer),
	}
}

func ToMeetupModel(e *entity.Meetup) *model.MeetupModel {
	if e == nil {
		return nil
	}

	return &model.MeetupModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Date:        e.Date,
		BannerURL:   e.BannerURL,
		OrganizerID: e.OrganizerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
