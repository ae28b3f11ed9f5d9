package handlers

import (
	"net/http"

	"food-delivery-app/apperror"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db        *gorm.DB
	orders    *services.OrderService
	analytics *services.AnalyticsService
}

func NewAdminHandler(db *gorm.DB, orders *services.OrderService, analytics *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{db: db, orders: orders, analytics: analytics}
}

// GetAllOrders returns all orders with full detail
func (h *AdminHandler) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := h.db.Preload("Items").Preload("Customer").Preload("Restaurant").Preload("Driver")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID := c.Query("restaurantId"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, orders)
}

// GetAllUsers returns all users, optionally by role
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	var users []models.User
	query := h.db
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Order("created_at").Find(&users).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, users)
}

// GetAllRestaurants returns all restaurants with owners
func (h *AdminHandler) GetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := h.db.Preload("Owner").Order("name").Find(&restaurants).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, restaurants)
}

type ForceStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Reason string             `json:"reason"`
}

// ForceOrderStatus lets an admin cancel or advance a stuck order.
func (h *AdminHandler) ForceOrderStatus(c *gin.Context) {
	var req ForceStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orders.Force(c.Request.Context(), c.Param("number"), req.Status, middleware.GetUserID(c), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	ok(c, http.StatusOK, order)
}

// GetAnalytics returns dashboard figures; ?refresh=true bypasses the cache.
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	if c.Query("refresh") == "true" {
		h.analytics.Invalidate(c.Request.Context())
	}
	summary, err := h.analytics.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, summary)
}
