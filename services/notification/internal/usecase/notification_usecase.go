package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meetapp/pkg/format"
	"meetapp/pkg/logger"
	"meetapp/services/notification/internal/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotificationNotFound = errors.New("notification not found")

const (
	notificationTTL  = 30 * 24 * time.Hour
	maxNotifications = 50
)

// EmailSender abstracts the SMTP mailer.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

type NotificationUseCase interface {
	ProcessEmailTask(task map[string]interface{}) error
	ListNotifications(userID string) ([]*entity.Notification, error)
	MarkAsRead(userID, notificationID string) (*entity.Notification, error)
}

type notificationUseCase struct {
	mailer      EmailSender
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewNotificationUseCase(mailer EmailSender, redisClient *redis.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		mailer:      mailer,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessEmailTask handles one subscription email task from the queue. It
// emails the organizer about the new subscriber and records a notification
// for them. A returned error means the task should be requeued.
func (uc *notificationUseCase) ProcessEmailTask(task map[string]interface{}) error {
	taskType := stringField(task, "type")
	if taskType != "subscription_email" {
		// Unknown tasks are dropped, not requeued
		uc.logger.Warn("Skipping task with unknown type: %q", taskType)
		return nil
	}

	meetup := mapField(task, "meetup")
	user := mapField(task, "user")
	organizer := mapField(task, "organizer")
	if meetup == nil || user == nil || organizer == nil {
		uc.logger.Warn("Skipping malformed subscription email task: %v", task)
		return nil
	}

	organizerEmail := stringField(organizer, "email")
	if organizerEmail == "" {
		uc.logger.Warn("Skipping task without organizer email: %v", task)
		return nil
	}

	meetupTitle := stringField(meetup, "title")
	formattedDate, err := format.DateTimeFormat(stringField(meetup, "date"))
	if err != nil {
		uc.logger.Warn("Task has unparseable meetup date, using raw value: %v", err)
		formattedDate = stringField(meetup, "date")
	}

	subject := fmt.Sprintf("[%s] Nova inscrição", meetupTitle)
	body := fmt.Sprintf(
		"<h2>Nova inscrição no seu meetup</h2>"+
			"<p><strong>%s</strong> (%s) se inscreveu no meetup <strong>%s</strong>.</p>"+
			"<p>Data: %s<br>Local: %s</p>",
		stringField(user, "name"),
		stringField(user, "email"),
		meetupTitle,
		formattedDate,
		stringField(meetup, "location"),
	)

	if err := uc.mailer.Send(organizerEmail, subject, body); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	content := fmt.Sprintf("%s se inscreveu no meetup %s", stringField(user, "name"), meetupTitle)
	uc.storeNotification(stringField(organizer, "id"), content)

	return nil
}

func (uc *notificationUseCase) ListNotifications(userID string) ([]*entity.Notification, error) {
	if uc.redisClient == nil {
		return []*entity.Notification{}, nil
	}

	ctx := context.Background()
	raw, err := uc.redisClient.LRange(ctx, notificationsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*entity.Notification, 0, len(raw))
	for _, item := range raw {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(item), &notification); err != nil {
			uc.logger.Warn("Dropping unreadable notification for user %s: %v", userID, err)
			continue
		}
		notifications = append(notifications, &notification)
	}
	return notifications, nil
}

func (uc *notificationUseCase) MarkAsRead(userID, notificationID string) (*entity.Notification, error) {
	if uc.redisClient == nil {
		return nil, ErrNotificationNotFound
	}

	ctx := context.Background()
	key := notificationsKey(userID)
	raw, err := uc.redisClient.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	for i, item := range raw {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(item), &notification); err != nil {
			continue
		}
		if notification.ID != notificationID {
			continue
		}

		notification.Read = true
		updated, err := json.Marshal(&notification)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification: %w", err)
		}
		if err := uc.redisClient.LSet(ctx, key, int64(i), updated).Err(); err != nil {
			return nil, fmt.Errorf("failed to update notification: %w", err)
		}
		return &notification, nil
	}

	return nil, ErrNotificationNotFound
}

func (uc *notificationUseCase) storeNotification(userID, content string) {
	if uc.redisClient == nil || userID == "" {
		return
	}

	notification := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(notification)
	if err != nil {
		uc.logger.Error("Failed to marshal notification: %v", err)
		return
	}

	ctx := context.Background()
	key := notificationsKey(userID)
	pipe := uc.redisClient.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, maxNotifications-1)
	pipe.Expire(ctx, key, notificationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		uc.logger.Error("Failed to store notification for user %s: %v", userID, err)
	}
}

func notificationsKey(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func mapField(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}
