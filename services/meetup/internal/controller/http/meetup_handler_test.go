package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetapp/pkg/logger"
	"meetapp/services/meetup/internal/entity"
	"meetapp/services/meetup/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMeetupUseCase is a mock implementation of MeetupUseCase
type MockMeetupUseCase struct {
	mock.Mock
}

func (m *MockMeetupUseCase) CreateMeetup(organizerID, title, description, location string, date time.Time, bannerURL string) (*entity.Meetup, error) {
	args := m.Called(organizerID, title, description, location, date, bannerURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Meetup), args.Error(1)
}

func (m *MockMeetupUseCase) GetMeetup(meetupID string) (*entity.Meetup, error) {
	args := m.Called(meetupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Meetup), args.Error(1)
}

func (m *MockMeetupUseCase) ListByDay(day time.Time, page int) ([]*entity.Meetup, error) {
	args := m.Called(day, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Meetup), args.Error(1)
}

func (m *MockMeetupUseCase) ListOrganized(organizerID string) ([]*entity.Meetup, error) {
	args := m.Called(organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Meetup), args.Error(1)
}

func (m *MockMeetupUseCase) UpdateMeetup(meetupID, organizerID string, title, description, location *string, date *time.Time, bannerURL *string) (*entity.Meetup, error) {
	args := m.Called(meetupID, organizerID, title, description, location, date, bannerURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Meetup), args.Error(1)
}

func (m *MockMeetupUseCase) CancelMeetup(meetupID, organizerID string) error {
	args := m.Called(meetupID, organizerID)
	return args.Error(0)
}

func (m *MockMeetupUseCase) UploadBanner(organizerID string, fileReader io.Reader, filename, contentType string) (string, error) {
	args := m.Called(organizerID, fileReader, filename, contentType)
	return args.String(0), args.Error(1)
}

var _ usecase.MeetupUseCase = (*MockMeetupUseCase)(nil)

func setupRouter(handler *MeetupHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/meetups", handler.CreateMeetup)
	r.GET("/meetups", handler.ListMeetups)
	r.GET("/meetups/organized", handler.ListOrganized)
	r.GET("/meetups/:id", handler.GetMeetup)
	r.PUT("/meetups/:id", handler.UpdateMeetup)
	r.DELETE("/meetups/:id", handler.CancelMeetup)
	r.POST("/files", handler.UploadBanner)
	return r
}

func TestCreateMeetup_HandlerSuccess(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "organizer-123")

	date := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	created := &entity.Meetup{
		ID:          "meetup-123",
		Title:       "Go Meetup",
		Description: "Talks about Go",
		Location:    "Downtown",
		Date:        date,
		OrganizerID: "organizer-123",
	}
	mockUC.On("CreateMeetup", "organizer-123", "Go Meetup", "Talks about Go", "Downtown", mock.AnythingOfType("time.Time"), "").
		Return(created, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Go Meetup",
		"description": "Talks about Go",
		"location":    "Downtown",
		"date":        date.Format(time.RFC3339),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/meetups", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got entity.Meetup
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "meetup-123", got.ID)
}

func TestCreateMeetup_HandlerMissingFields(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "organizer-123")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/meetups", bytes.NewReader([]byte(`{"title":"only a title"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "CreateMeetup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMeetup_HandlerPastDate(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "organizer-123")

	mockUC.On("CreateMeetup", "organizer-123", "Go Meetup", "Talks about Go", "Downtown", mock.AnythingOfType("time.Time"), "").
		Return(nil, usecase.ErrPastDate)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Go Meetup",
		"description": "Talks about Go",
		"location":    "Downtown",
		"date":        time.Now().Add(-time.Hour).Format(time.RFC3339),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/meetups", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMeetup_HandlerNotFound(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "user-123")

	mockUC.On("GetMeetup", "missing-meetup").Return(nil, usecase.ErrMeetupNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/meetups/missing-meetup", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMeetups_HandlerRequiresDate(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "user-123")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/meetups", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "ListByDay", mock.Anything, mock.Anything)
}

func TestListMeetups_HandlerBadDateFormat(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "user-123")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/meetups?date=20-04-2025", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMeetups_HandlerByDay(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "user-123")

	day := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	mockUC.On("ListByDay", day, 2).Return([]*entity.Meetup{
		{ID: "meetup-1", Title: "Morning talks"},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/meetups?date=2025-04-20&page=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []*entity.Meetup
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestListMeetups_HandlerEmptyIsJSONArray(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "user-123")

	day := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	mockUC.On("ListByDay", day, 1).Return(nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/meetups?date=2025-04-20", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListOrganized_Handler(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "organizer-123")

	mockUC.On("ListOrganized", "organizer-123").Return([]*entity.Meetup{
		{ID: "meetup-1", OrganizerID: "organizer-123"},
		{ID: "meetup-2", OrganizerID: "organizer-123"},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/meetups/organized", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []*entity.Meetup
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestUpdateMeetup_HandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", usecase.ErrMeetupNotFound, http.StatusNotFound},
		{"not organizer", usecase.ErrNotOrganizer, http.StatusUnauthorized},
		{"already happened", usecase.ErrPastMeetup, http.StatusBadRequest},
		{"past new date", usecase.ErrPastDate, http.StatusBadRequest},
		{"unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := new(MockMeetupUseCase)
			handler := NewMeetupHandler(mockUC, logger.New())
			r := setupRouter(handler, "organizer-123")

			mockUC.On("UpdateMeetup", "meetup-123", "organizer-123", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("PUT", "/meetups/meetup-123", bytes.NewReader([]byte(`{"title":"New title"}`)))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				// Driver errors never leak to the client
				assert.NotContains(t, w.Body.String(), "pq:")
			}
		})
	}
}

func TestCancelMeetup_HandlerSuccess(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "organizer-123")

	mockUC.On("CancelMeetup", "meetup-123", "organizer-123").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/meetups/meetup-123", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestUploadBanner_Handler(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "organizer-123")

	mockUC.On("UploadBanner", "organizer-123", mock.Anything, "banner.png", mock.AnythingOfType("string")).
		Return("https://bucket.s3.us-east-1.amazonaws.com/banners/organizer-123/abc.png", nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "banner.png")
	_, _ = part.Write([]byte("fake image bytes"))
	_ = writer.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/files", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Contains(t, got["banner_url"], "banners/organizer-123/")
}

func TestUploadBanner_HandlerMissingFile(t *testing.T) {
	mockUC := new(MockMeetupUseCase)
	handler := NewMeetupHandler(mockUC, logger.New())
	r := setupRouter(handler, "organizer-123")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/files", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "UploadBanner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
