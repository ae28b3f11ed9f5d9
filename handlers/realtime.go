package handlers

import (
	"errors"
	"net/http"

	"food-delivery-app/apperror"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RealtimeHandler struct {
	db     *gorm.DB
	pusher *realtime.Pusher
	hub    *realtime.Hub
}

func NewRealtimeHandler(db *gorm.DB, pusher *realtime.Pusher, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{db: db, pusher: pusher, hub: hub}
}

type PusherAuthRequest struct {
	SocketID    string `json:"socket_id" form:"socket_id" binding:"required"`
	ChannelName string `json:"channel_name" form:"channel_name" binding:"required"`
}

// PusherAuth signs a private channel subscription for the Pusher client.
// pusher-js posts form data; JSON bodies are accepted too.
func (h *RealtimeHandler) PusherAuth(c *gin.Context) {
	var req PusherAuthRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, apperror.Validation("socket_id and channel_name are required"))
		return
	}
	if err := h.canSubscribe(c, req.ChannelName); err != nil {
		fail(c, err)
		return
	}
	body, err := h.pusher.Authorize(req.SocketID, req.ChannelName)
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// WebSocket subscribes the caller to ?channel= on the in-process hub.
func (h *RealtimeHandler) WebSocket(c *gin.Context) {
	channel := c.Query("channel")
	if err := h.canSubscribe(c, channel); err != nil {
		fail(c, err)
		return
	}
	if err := h.hub.Serve(c.Writer, c.Request, channel); err != nil {
		// the upgrader has already written the HTTP error
		_ = c.Error(err)
	}
}

// canSubscribe decides whether the caller may listen on channel.
func (h *RealtimeHandler) canSubscribe(c *gin.Context, channel string) error {
	kind, id, valid := realtime.ParseChannel(channel)
	if !valid {
		return apperror.Validation("Unknown channel " + channel)
	}
	userID, role := middleware.GetUserID(c), middleware.GetRole(c)
	if role == models.RoleAdmin {
		return nil
	}

	switch kind {
	case realtime.KindUser, realtime.KindDriver:
		if id == userID {
			return nil
		}
	case realtime.KindRestaurant:
		var n int64
		if err := h.db.Model(&models.Restaurant{}).Where("id = ? AND owner_id = ?", id, userID).Count(&n).Error; err != nil {
			return apperror.Internal(err)
		}
		if n > 0 {
			return nil
		}
	case realtime.KindOrder:
		var order models.Order
		err := h.db.Where("order_number = ?", id).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Order not found")
		}
		if err != nil {
			return apperror.Internal(err)
		}
		if order.CustomerID == userID || (order.HasDriver() && *order.DriverID == userID) {
			return nil
		}
		var n int64
		if err := h.db.Model(&models.Restaurant{}).Where("id = ? AND owner_id = ?", order.RestaurantID, userID).Count(&n).Error; err != nil {
			return apperror.Internal(err)
		}
		if n > 0 {
			return nil
		}
	}
	return apperror.Forbidden("You may not subscribe to " + channel)
}
