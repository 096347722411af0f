package persistent

import (
	"meetapp/services/subscription/internal/entity"
	"meetapp/services/subscription/internal/model"
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
		OrganizerID: m.OrganizerID,
		Organizer:   ToUserEntity(m.Organizer),
	}
}

func ToSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	if m == nil {
		return nil
	}

	return &entity.Subscription{
		ID:        m.ID,
		UserID:    m.UserID,
		MeetupID:  m.MeetupID,
		CreatedAt: m.CreatedAt,
		Meetup:    ToMeetupEntity(m.Meetup),
	}
}

func ToSubscriptionModel(e *entity.Subscription) *model.SubscriptionModel {
	if e == nil {
		return nil
	}

	return &model.SubscriptionModel{
		ID:        e.ID,
		UserID:    e.UserID,
		MeetupID:  e.MeetupID,
		CreatedAt: e.CreatedAt,
	}
}
