package handlers

import (
	"net/http"

	"food-delivery-app/services"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	tracking *services.TrackingService
}

func NewTrackingHandler(tracking *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// Track returns the order, its restaurant and the driver's current location.
func (h *TrackingHandler) Track(c *gin.Context) {
	result, err := h.tracking.Track(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, result)
}
