package persistent

import (
	"time"

	"meetapp/services/meetup/internal/entity"
	"meetapp/services/meetup/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MeetupRepository interface {
	Create(meetup *entity.Meetup) error
	GetByID(id string) (*entity.Meetup, error)
	ListByDay(day time.Time, page, perPage int) ([]*entity.Meetup, error)
	ListByOrganizer(organizerID string) ([]*entity.Meetup, error)
	Update(meetup *entity.Meetup) error
	Delete(id string) error
}

type meetupRepository struct {
	db *gorm.DB
}

func NewMeetupRepository(db *gorm.DB) MeetupRepository {
	return &meetupRepository{db: db}
}

func (r *meetupRepository) Create(meetup *entity.Meetup) error {
	meetupModel := ToMeetupModel(meetup)
	if meetupModel.ID == "" {
		meetupModel.ID = uuid.New().String()
	}

	if err := r.db.Create(meetupModel).Error; err != nil {
		return err
	}

	meetup.ID = meetupModel.ID
	meetup.CreatedAt = meetupModel.CreatedAt
	meetup.UpdatedAt = meetupModel.UpdatedAt
	return nil
}

func (r *meetupRepository) GetByID(id string) (*entity.Meetup, error) {
	var meetupModel model.MeetupModel
	if err := r.db.Preload("Organizer").Where("id = ?", id).First(&meetupModel).Error; err != nil {
		return nil, err
	}
	return ToMeetupEntity(&meetupModel), nil
}

func (r *meetupRepository) ListByDay(day time.Time, page, perPage int) ([]*entity.Meetup, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var meetupModels []model.MeetupModel
	err := r.db.Preload("Organizer").
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&meetupModels).Error
	if err != nil {
		return nil, err
	}

	meetups := make([]*entity.Meetup, len(meetupModels))
	for i := range meetupModels {
		meetups[i] = ToMeetupEntity(&meetupModels[i])
	}
	return meetups, nil
}

func (r *meetupRepository) ListByOrganizer(organizerID string) ([]*entity.Meetup, error) {
	var meetupModels []model.MeetupModel
	err := r.db.Where("organizer_id = ?", organizerID).
		Order("date ASC").
		Find(&meetupModels).Error
	if err != nil {
		return nil, err
	}

	meetups := make([]*entity.Meetup, len(meetupModels))
	for i := range meetupModels {
		meetups[i] = ToMeetupEntity(&meetupModels[i])
	}
	return meetups, nil
}

func (r *meetupRepository) Update(meetup *entity.Meetup) error {
	meetupModel := ToMeetupModel(meetup)
	return r.db.Save(meetupModel).Error
}

func (r *meetupRepository) Delete(id string) error {
	return r.db.Delete(&model.MeetupModel{}, "id = ?", id).Error
}
