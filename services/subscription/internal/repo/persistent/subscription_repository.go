package persistent

import (
	"time"

	"meetapp/services/subscription/internal/entity"
	"meetapp/services/subscription/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	GetMeetup(id string) (*entity.Meetup, error)
	GetUser(id string) (*entity.User, error)
	ListUpcomingByUser(userID string, now time.Time) ([]*entity.Subscription, error)
	Exists(userID, meetupID string) (bool, error)
	ExistsAtSameTime(userID string, date time.Time) (bool, error)
	Create(subscription *entity.Subscription) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetMeetup(id string) (*entity.Meetup, error) {
	var meetupModel model.MeetupModel
	if err := r.db.Preload("Organizer").Where("id = ?", id).First(&meetupModel).Error; err != nil {
		return nil, err
	}
	return ToMeetupEntity(&meetupModel), nil
}

func (r *subscriptionRepository) GetUser(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *subscriptionRepository) ListUpcomingByUser(userID string, now time.Time) ([]*entity.Subscription, error) {
	var subscriptionModels []model.SubscriptionModel
	err := r.db.Model(&model.SubscriptionModel{}).
		Joins("INNER JOIN meetups ON meetups.id = subscriptions.meetup_id").
		Where("subscriptions.user_id = ? AND meetups.date > ? AND meetups.deleted_at IS NULL", userID, now).
		Order("meetups.date ASC").
		Preload("Meetup").
		Find(&subscriptionModels).Error
	if err != nil {
		return nil, err
	}

	subscriptions := make([]*entity.Subscription, len(subscriptionModels))
	for i := range subscriptionModels {
		subscriptions[i] = ToSubscriptionEntity(&subscriptionModels[i])
	}
	return subscriptions, nil
}

func (r *subscriptionRepository) Exists(userID, meetupID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("user_id = ? AND meetup_id = ?", userID, meetupID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) ExistsAtSameTime(userID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Joins("INNER JOIN meetups ON meetups.id = subscriptions.meetup_id").
		Where("subscriptions.user_id = ? AND meetups.date = ? AND meetups.deleted_at IS NULL", userID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) Create(subscription *entity.Subscription) error {
	subscriptionModel := ToSubscriptionModel(subscription)
	if subscriptionModel.ID == "" {
		subscriptionModel.ID = uuid.New().String()
	}

	if err := r.db.Create(subscriptionModel).Error; err != nil {
		return err
	}

	subscription.ID = subscriptionModel.ID
	subscription.CreatedAt = subscriptionModel.CreatedAt
	return nil
}
