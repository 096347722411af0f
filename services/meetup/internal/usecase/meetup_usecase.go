package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"meetapp/pkg/logger"
	"meetapp/pkg/s3"
	"meetapp/services/meetup/internal/entity"
	"meetapp/services/meetup/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrMeetupNotFound = errors.New("can't find the selected meetup")
	ErrNotOrganizer   = errors.New("only the organizer can change a meetup")
	ErrPastMeetup     = errors.New("can't change meetups that already happened")
	ErrPastDate       = errors.New("meetup date must be in the future")
)

const meetupsPerPage = 10

type MeetupUseCase interface {
	CreateMeetup(organizerID, title, description, location string, date time.Time, bannerURL string) (*entity.Meetup, error)
	GetMeetup(meetupID string) (*entity.Meetup, error)
	ListByDay(day time.Time, page int) ([]*entity.Meetup, error)
	ListOrganized(organizerID string) ([]*entity.Meetup, error)
	UpdateMeetup(meetupID, organizerID string, title, description, location *string, date *time.Time, bannerURL *string) (*entity.Meetup, error)
	CancelMeetup(meetupID, organizerID string) error
	UploadBanner(organizerID string, fileReader io.Reader, filename, contentType string) (string, error)
}

type meetupUseCase struct {
	meetupRepo  persistent.MeetupRepository
	s3Client    *s3.Client
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewMeetupUseCase(
	meetupRepo persistent.MeetupRepository,
	s3Client *s3.Client,
	redisClient *redis.Client,
	logger *logger.Logger,
) MeetupUseCase {
	return &meetupUseCase{
		meetupRepo:  meetupRepo,
		s3Client:    s3Client,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *meetupUseCase) CreateMeetup(organizerID, title, description, location string, date time.Time, bannerURL string) (*entity.Meetup, error) {
	if date.Before(time.Now()) {
		return nil, ErrPastDate
	}

	meetup := &entity.Meetup{
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		BannerURL:   bannerURL,
		OrganizerID: organizerID,
	}

	if err := uc.meetupRepo.Create(meetup); err != nil {
		return nil, fmt.Errorf("failed to create meetup: %w", err)
	}

	return meetup, nil
}

func (uc *meetupUseCase) GetMeetup(meetupID string) (*entity.Meetup, error) {
	meetup, err := uc.meetupRepo.GetByID(meetupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetupNotFound
		}
		return nil, fmt.Errorf("failed to load meetup: %w", err)
	}

	uc.cacheMeetup(meetup)
	return meetup, nil
}

func (uc *meetupUseCase) ListByDay(day time.Time, page int) ([]*entity.Meetup, error) {
	if page < 1 {
		page = 1
	}
	meetups, err := uc.meetupRepo.ListByDay(day, page, meetupsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetups: %w", err)
	}
	return meetups, nil
}

func (uc *meetupUseCase) ListOrganized(organizerID string) ([]*entity.Meetup, error) {
	meetups, err := uc.meetupRepo.ListByOrganizer(organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organized meetups: %w", err)
	}
	return meetups, nil
}

func (uc *meetupUseCase) UpdateMeetup(meetupID, organizerID string, title, description, location *string, date *time.Time, bannerURL *string) (*entity.Meetup, error) {
	meetup, err := uc.meetupRepo.GetByID(meetupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetupNotFound
		}
		return nil, fmt.Errorf("failed to load meetup: %w", err)
	}

	if meetup.OrganizerID != organizerID {
		return nil, ErrNotOrganizer
	}
	if meetup.Date.Before(time.Now()) {
		return nil, ErrPastMeetup
	}

	if title != nil {
		meetup.Title = *title
	}
	if description != nil {
		meetup.Description = *description
	}
	if location != nil {
		meetup.Location = *location
	}
	if date != nil {
		if date.Before(time.Now()) {
			return nil, ErrPastDate
		}
		meetup.Date = *date
	}
	if bannerURL != nil {
		meetup.BannerURL = *bannerURL
	}

	if err := uc.meetupRepo.Update(meetup); err != nil {
		return nil, fmt.Errorf("failed to update meetup: %w", err)
	}

	uc.invalidateMeetup(meetupID)
	return meetup, nil
}

func (uc *meetupUseCase) CancelMeetup(meetupID, organizerID string) error {
	meetup, err := uc.meetupRepo.GetByID(meetupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetupNotFound
		}
		return fmt.Errorf("failed to load meetup: %w", err)
	}

	if meetup.OrganizerID != organizerID {
		return ErrNotOrganizer
	}
	if meetup.Date.Before(time.Now()) {
		return ErrPastMeetup
	}

	if err := uc.meetupRepo.Delete(meetupID); err != nil {
		return fmt.Errorf("failed to cancel meetup: %w", err)
	}

	uc.invalidateMeetup(meetupID)
	return nil
}

func (uc *meetupUseCase) UploadBanner(organizerID string, fileReader io.Reader, filename, contentType string) (string, error) {
	fileKey := fmt.Sprintf("banners/%s/%s%s", organizerID, uuid.New().String(), fileExtension(filename))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	bannerURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload banner to S3: %w", err)
	}
	return bannerURL, nil
}

func (uc *meetupUseCase) cacheMeetup(meetup *entity.Meetup) {
	if uc.redisClient == nil {
		return
	}

	ctx := context.Background()
	meetupKey := fmt.Sprintf("meetup:%s", meetup.ID)
	meetupData := map[string]interface{}{
		"id":           meetup.ID,
		"title":        meetup.Title,
		"description":  meetup.Description,
		"location":     meetup.Location,
		"date":         meetup.Date.Format(time.RFC3339),
		"banner_url":   meetup.BannerURL,
		"organizer_id": meetup.OrganizerID,
	}

	for k, v := range meetupData {
		uc.redisClient.HSet(ctx, meetupKey, k, v)
	}
	uc.redisClient.Expire(ctx, meetupKey, 24*time.Hour)
}

func (uc *meetupUseCase) invalidateMeetup(meetupID string) {
	if uc.redisClient == nil {
		return
	}
	uc.redisClient.Del(context.Background(), fmt.Sprintf("meetup:%s", meetupID))
}

func fileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
