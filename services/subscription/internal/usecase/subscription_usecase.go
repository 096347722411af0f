package usecase

import (
	"errors"
	"fmt"
	"time"

	"meetapp/pkg/logger"
	"meetapp/services/subscription/internal/entity"
	"meetapp/services/subscription/internal/repo/persistent"

	"gorm.io/gorm"
)

var (
	ErrMeetupNotFound    = errors.New("can't find the selected meetup")
	ErrPastMeetup        = errors.New("you can't subscribe to past meetups")
	ErrOwnMeetup         = errors.New("you can't subscribe to your own meetups")
	ErrAlreadySubscribed = errors.New("you already subscribed to this meetup")
	ErrTimeConflict      = errors.New("you already subscribed to a meetup at the same time")
)

// EmailTaskPublisher enqueues subscription confirmation email tasks.
// Satisfied by *queue.Client.
type EmailTaskPublisher interface {
	PublishSubscriptionEmailTask(task map[string]interface{}) error
}

type SubscriptionUseCase interface {
	ListSubscriptions(userID string) ([]*entity.Subscription, error)
	CreateSubscription(userID, meetupID string) (*entity.Subscription, error)
}

type subscriptionUseCase struct {
	subscriptionRepo persistent.SubscriptionRepository
	publisher        EmailTaskPublisher
	logger           *logger.Logger
}

func NewSubscriptionUseCase(
	subscriptionRepo persistent.SubscriptionRepository,
	publisher EmailTaskPublisher,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// ListSubscriptions returns the user's subscriptions to meetups that have
// not happened yet, ordered by meetup date. An unknown user simply has no
// subscriptions.
func (uc *subscriptionUseCase) ListSubscriptions(userID string) ([]*entity.Subscription, error) {
	subscriptions, err := uc.subscriptionRepo.ListUpcomingByUser(userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subscriptions, nil
}

// CreateSubscription runs the subscription rules in order, short-circuiting
// on the first violation. The row is persisted before the confirmation email
// task is enqueued, so a failed insert can never leave an orphaned email;
// a failed enqueue is logged and the subscription stands.
func (uc *subscriptionUseCase) CreateSubscription(userID, meetupID string) (*entity.Subscription, error) {
	meetup, err := uc.subscriptionRepo.GetMeetup(meetupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetupNotFound
		}
		return nil, fmt.Errorf("failed to load meetup: %w", err)
	}

	if meetup.Date.Before(time.Now()) {
		return nil, ErrPastMeetup
	}

	if meetup.OrganizerID == userID {
		return nil, ErrOwnMeetup
	}

	subscribed, err := uc.subscriptionRepo.Exists(userID, meetupID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if subscribed {
		return nil, ErrAlreadySubscribed
	}

	conflict, err := uc.subscriptionRepo.ExistsAtSameTime(userID, meetup.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check time conflict: %w", err)
	}
	if conflict {
		return nil, ErrTimeConflict
	}

	user, err := uc.subscriptionRepo.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	subscription := &entity.Subscription{
		UserID:   userID,
		MeetupID: meetupID,
	}
	if err := uc.subscriptionRepo.Create(subscription); err != nil {
		// The unique index on (user_id, meetup_id) closes the race between
		// the Exists check above and this insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	subscription.Meetup = meetup

	uc.publishConfirmationEmail(meetup, user)

	return subscription, nil
}

func (uc *subscriptionUseCase) publishConfirmationEmail(meetup *entity.Meetup, user *entity.User) {
	if uc.publisher == nil {
		return
	}

	task := map[string]interface{}{
		"type": "subscription_email",
		"meetup": map[string]interface{}{
			"id":       meetup.ID,
			"title":    meetup.Title,
			"location": meetup.Location,
			"date":     meetup.Date.Format(time.RFC3339),
		},
		"user": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	}

	if meetup.Organizer != nil {
		task["organizer"] = map[string]interface{}{
			"id":    meetup.Organizer.ID,
			"name":  meetup.Organizer.Name,
			"email": meetup.Organizer.Email,
		}
	}

	if err := uc.publisher.PublishSubscriptionEmailTask(task); err != nil {
		uc.logger.Error("Failed to publish subscription email task for meetup %s: %v", meetup.ID, err)
	}
}
