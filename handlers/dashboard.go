package handlers

import (
	"net/http"

	"food-delivery-app/apperror"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/services"
	"food-delivery-app/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// activeStatuses are the statuses of orders still in progress.
var activeStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusPickedUp,
	models.StatusOnTheWay,
}

// DashboardHandler serves the role landing pages.
type DashboardHandler struct {
	db          *gorm.DB
	restaurants *store.RestaurantStore
	locations   services.LocationReader
	analytics   *services.AnalyticsService
}

func NewDashboardHandler(db *gorm.DB, restaurants *store.RestaurantStore, locations services.LocationReader, analytics *services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{db: db, restaurants: restaurants, locations: locations, analytics: analytics}
}

func (h *DashboardHandler) unread(userID string) (int64, error) {
	var n int64
	err := h.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&n).Error
	return n, err
}

func (h *DashboardHandler) Customer(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var active []models.Order
	err := h.db.Where("customer_id = ? AND status IN ?", userID, activeStatuses).
		Order("created_at desc").Find(&active).Error
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	unread, err := h.unread(userID)
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, gin.H{"role": models.RoleCustomer, "activeOrders": active, "unreadNotifications": unread})
}

func (h *DashboardHandler) Restaurant(c *gin.Context) {
	userID := middleware.GetUserID(c)
	restaurant, err := h.restaurants.FindByOwner(c.Request.Context(), userID)
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	queue := []models.Order{}
	if restaurant != nil {
		err = h.db.Preload("Items").
			Where("restaurant_id = ? AND status IN ?", restaurant.ID,
				[]models.OrderStatus{models.StatusPending, models.StatusConfirmed, models.StatusPreparing, models.StatusReady}).
			Order("created_at asc").Find(&queue).Error
		if err != nil {
			fail(c, apperror.Internal(err))
			return
		}
	}
	unread, err := h.unread(userID)
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, gin.H{"role": models.RoleRestaurant, "restaurant": restaurant, "queue": queue, "unreadNotifications": unread})
}

func (h *DashboardHandler) Driver(c *gin.Context) {
	userID := middleware.GetUserID(c)
	loc, err := h.locations.FindByDriver(c.Request.Context(), userID)
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	var current *models.Order
	if loc != nil && loc.CurrentOrderID != nil {
		var o models.Order
		if err := h.db.Where("id = ?", *loc.CurrentOrderID).Limit(1).Find(&o).Error; err != nil {
			fail(c, apperror.Internal(err))
			return
		}
		if o.ID != "" {
			current = &o
		}
	}
	var available int64
	err = h.db.Model(&models.Order{}).Where("status = ? AND driver_id IS NULL", models.StatusReady).Count(&available).Error
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, gin.H{"role": models.RoleDriver, "location": loc, "currentOrder": current, "availableOrders": available})
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"role": models.RoleAdmin, "analytics": summary})
}
