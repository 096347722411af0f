package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetapp/pkg/logger"
	"meetapp/services/subscription/internal/entity"
	"meetapp/services/subscription/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSubscriptionUseCase is a mock implementation of SubscriptionUseCase
type MockSubscriptionUseCase struct {
	mock.Mock
}

func (m *MockSubscriptionUseCase) ListSubscriptions(userID string) ([]*entity.Subscription, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionUseCase) CreateSubscription(userID, meetupID string) (*entity.Subscription, error) {
	args := m.Called(userID, meetupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

var _ usecase.SubscriptionUseCase = (*MockSubscriptionUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupHandler(mockUseCase *MockSubscriptionUseCase, userID string) *gin.Engine {
	handler := NewSubscriptionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/subscriptions", func(c *gin.Context) {
		c.Set("user_id", userID)
		handler.ListSubscriptions(c)
	})
	router.POST("/meetups/:meetup_id/subscriptions", func(c *gin.Context) {
		c.Set("user_id", userID)
		handler.CreateSubscription(c)
	})
	return router
}

func TestListSubscriptions_Empty(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	router := setupHandler(mockUseCase, "user-123")

	mockUseCase.On("ListSubscriptions", "user-123").Return([]*entity.Subscription{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListSubscriptions_WithMeetups(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	router := setupHandler(mockUseCase, "user-123")

	subscriptions := []*entity.Subscription{
		{
			ID:       "sub-1",
			UserID:   "user-123",
			MeetupID: "meetup-1",
			Meetup: &entity.Meetup{
				ID:          "meetup-1",
				Title:       "Go Meetup",
				Location:    "Downtown",
				Date:        time.Now().Add(24 * time.Hour),
				OrganizerID: "organizer-123",
			},
		},
	}
	mockUseCase.On("ListSubscriptions", "user-123").Return(subscriptions, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "sub-1", got[0]["id"])

	meetup := got[0]["meetup"].(map[string]interface{})
	assert.Equal(t, "Go Meetup", meetup["title"])
}

func TestListSubscriptions_Error(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	router := setupHandler(mockUseCase, "user-123")

	mockUseCase.On("ListSubscriptions", "user-123").Return(nil, errors.New("db down"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateSubscription_Success(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	router := setupHandler(mockUseCase, "user-123")

	subscription := &entity.Subscription{
		ID:       "sub-1",
		UserID:   "user-123",
		MeetupID: "meetup-123",
	}
	mockUseCase.On("CreateSubscription", "user-123", "meetup-123").Return(subscription, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/meetups/meetup-123/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sub-1")
}

func TestCreateSubscription_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"meetup not found", usecase.ErrMeetupNotFound, http.StatusNotFound},
		{"past meetup", usecase.ErrPastMeetup, http.StatusBadRequest},
		{"own meetup", usecase.ErrOwnMeetup, http.StatusUnauthorized},
		{"already subscribed", usecase.ErrAlreadySubscribed, http.StatusBadRequest},
		{"time conflict", usecase.ErrTimeConflict, http.StatusBadRequest},
		{"unexpected error", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := new(MockSubscriptionUseCase)
			router := setupHandler(mockUseCase, "user-123")

			mockUseCase.On("CreateSubscription", "user-123", "meetup-123").Return(nil, tt.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/meetups/meetup-123/subscriptions", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCreateSubscription_UnexpectedErrorIsOpaque(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	router := setupHandler(mockUseCase, "user-123")

	mockUseCase.On("CreateSubscription", "user-123", "meetup-123").
		Return(nil, errors.New("pq: connection reset by peer"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/meetups/meetup-123/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Driver internals must not leak to the client
	assert.NotContains(t, w.Body.String(), "pq:")
}
