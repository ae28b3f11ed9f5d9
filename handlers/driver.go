package handlers

import (
	"net/http"

	"food-delivery-app/apperror"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/services"
	"food-delivery-app/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DriverHandler struct {
	db      *gorm.DB
	orders  *services.OrderService
	drivers *services.DriverService
}

func NewDriverHandler(db *gorm.DB, orders *services.OrderService, drivers *services.DriverService) *DriverHandler {
	return &DriverHandler{db: db, orders: orders, drivers: drivers}
}

// GetAvailableOrders shows ready orders that have no driver assigned
func (h *DriverHandler) GetAvailableOrders(c *gin.Context) {
	var orders []models.Order
	err := h.db.Preload("Restaurant").
		Where("status = ? AND driver_id IS NULL", models.StatusReady).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, orders)
}

// GetMyDeliveries returns all orders assigned to the logged-in driver
func (h *DriverHandler) GetMyDeliveries(c *gin.Context) {
	var orders []models.Order
	err := h.db.Preload("Items").Preload("Restaurant").Preload("Customer").
		Where("driver_id = ?", middleware.GetUserID(c)).
		Order("updated_at desc").
		Find(&orders).Error
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, orders)
}

func (h *DriverHandler) transition(c *gin.Context, to models.OrderStatus, note string) {
	actor := services.Actor{UserID: middleware.GetUserID(c), Role: statemachine.ActorDriver}
	order, err := h.orders.Transition(c.Request.Context(), c.Param("number"), to, actor, note)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, order)
}

// PickupOrder assigns the order to the driver: ready → picked_up
func (h *DriverHandler) PickupOrder(c *gin.Context) {
	h.transition(c, models.StatusPickedUp, "Driver picked up the order")
}

// StartDelivery moves picked_up → on_the_way
func (h *DriverHandler) StartDelivery(c *gin.Context) {
	h.transition(c, models.StatusOnTheWay, "Driver is on the way")
}

// DeliverOrder moves on_the_way → delivered
func (h *DriverHandler) DeliverOrder(c *gin.Context) {
	h.transition(c, models.StatusDelivered, "Order delivered to customer")
}

type UpdateDriverStatusRequest struct {
	DriverID    string `json:"driverId"`
	IsAvailable *bool  `json:"isAvailable"`
}

// UpdateStatus upserts the driver's availability. Store faults are reported
// as 400 like validation failures.
func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	var req UpdateDriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Validation("Driver ID and availability status are required"))
		return
	}
	loc, err := h.drivers.SetAvailability(c.Request.Context(), req.DriverID, req.IsAvailable)
	if err != nil {
		failWith(c, http.StatusBadRequest, err)
		return
	}
	ok(c, http.StatusOK, loc)
}

type UpdateLocationRequest struct {
	DriverID  string   `json:"driverId"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Heading   *float64 `json:"heading"`
	Speed     *float64 `json:"speed"`
}

// UpdateLocation records a position ping from the driver app.
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if !bindJSON(c, &req) {
		return
	}
	pos := models.Position{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Heading:   req.Heading,
		Speed:     req.Speed,
	}
	loc, err := h.drivers.UpdateLocation(c.Request.Context(), req.DriverID, pos)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, loc)
}

// GetLocation returns the current location record of :driverId.
func (h *DriverHandler) GetLocation(c *gin.Context) {
	loc, err := h.drivers.Location(c.Request.Context(), c.Param("driverId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, loc)
}
