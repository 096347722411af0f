package http

import (
	"errors"
	"net/http"

	"meetapp/pkg/logger"
	"meetapp/services/subscription/internal/entity"
	"meetapp/services/subscription/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionUseCase usecase.SubscriptionUseCase
	logger              *logger.Logger
}

func NewSubscriptionHandler(subscriptionUseCase usecase.SubscriptionUseCase, logger *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
		logger:              logger,
	}
}

// ListSubscriptions godoc
// @Summary      List my subscriptions
// @Description  List the authenticated user's subscriptions to upcoming meetups, ordered by meetup date
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.Subscription
// @Failure      500  {object}  map[string]string
// @Router       /subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	userID := c.GetString("user_id")

	subscriptions, err := h.subscriptionUseCase.ListSubscriptions(userID)
	if err != nil {
		h.logger.Error("Failed to list subscriptions for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	if subscriptions == nil {
		subscriptions = []*entity.Subscription{}
	}

	c.JSON(http.StatusOK, subscriptions)
}

// CreateSubscription godoc
// @Summary      Subscribe to a meetup
// @Description  Subscribe the authenticated user to a meetup. Fails for past meetups, own meetups, duplicates and time conflicts.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        meetup_id path string true "Meetup ID"
// @Success      200  {object}  entity.Subscription
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /meetups/{meetup_id}/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID := c.GetString("user_id")
	meetupID := c.Param("meetup_id")

	subscription, err := h.subscriptionUseCase.CreateSubscription(userID, meetupID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMeetupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrOwnMeetup):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrPastMeetup),
			errors.Is(err, usecase.ErrAlreadySubscribed),
			errors.Is(err, usecase.ErrTimeConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create subscription for user %s, meetup %s: %v", userID, meetupID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, subscription)
}
