package handlers

import (
	"errors"
	"net/http"

	"food-delivery-app/apperror"
	"food-delivery-app/models"
	"food-delivery-app/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

// ListRestaurants returns restaurants, optionally filtered (public)
func (h *PublicHandler) ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := h.db

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if c.Query("open") == "true" {
		query = query.Where("is_open = ?", true)
	}

	if err := query.Order("name").Find(&restaurants).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, restaurants)
}

func (h *PublicHandler) findRestaurant(c *gin.Context, preload bool) (*models.Restaurant, bool) {
	var restaurant models.Restaurant
	q := h.db
	if preload {
		q = q.Preload("MenuItems")
	}
	err := q.Where("id = ?", c.Param("id")).First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, apperror.NotFound("Restaurant not found"))
		return nil, false
	}
	if err != nil {
		fail(c, apperror.Internal(err))
		return nil, false
	}
	return &restaurant, true
}

// GetRestaurant returns a single restaurant with its menu
func (h *PublicHandler) GetRestaurant(c *gin.Context) {
	if restaurant, found := h.findRestaurant(c, true); found {
		ok(c, http.StatusOK, restaurant)
	}
}

// GetMenu returns the menu for a specific restaurant (public)
func (h *PublicHandler) GetMenu(c *gin.Context) {
	restaurant, found := h.findRestaurant(c, false)
	if !found {
		return
	}

	var items []models.MenuItem
	query := h.db.Where("restaurant_id = ?", restaurant.ID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("isVeg") == "true" {
		query = query.Where("is_veg = ?", true)
	}
	if err := query.Find(&items).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, gin.H{"restaurant": restaurant.Name, "menu": items})
}

// StateMachine documents the order lifecycle.
func (h *PublicHandler) StateMachine(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"sequence":       models.StatusSequence,
		"transitions":    statemachine.GetAllTransitions(),
		"terminalStates": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
	})
}
