package handlers

import (
	"errors"
	"net/http"

	"food-delivery-app/apperror"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/services"
	"food-delivery-app/statemachine"
	"food-delivery-app/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RestaurantHandler struct {
	db          *gorm.DB
	restaurants *store.RestaurantStore
	orders      *services.OrderService
}

func NewRestaurantHandler(db *gorm.DB, restaurants *store.RestaurantStore, orders *services.OrderService) *RestaurantHandler {
	return &RestaurantHandler{db: db, restaurants: restaurants, orders: orders}
}

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Cuisine     string `json:"cuisine"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
}

type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Cuisine     *string `json:"cuisine"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	IsOpen      *bool   `json:"isOpen"`
}

// own loads the caller's restaurant, writing 404 when there is none.
func (h *RestaurantHandler) own(c *gin.Context, missing string) (*models.Restaurant, bool) {
	restaurant, err := h.restaurants.FindByOwner(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, apperror.Internal(err))
		return nil, false
	}
	if restaurant == nil {
		fail(c, apperror.NotFound(missing))
		return nil, false
	}
	return restaurant, true
}

// CreateRestaurant lets a restaurant-role user create their restaurant
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}

	existing, err := h.restaurants.FindByOwner(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	if existing != nil {
		fail(c, apperror.Conflict("You already have a restaurant"))
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     ownerID,
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Address:     req.Address,
		Description: req.Description,
		IsOpen:      true,
	}
	if err := h.db.Create(&restaurant).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusCreated, restaurant)
}

// GetMyRestaurant fetches the restaurant owned by the logged-in user
func (h *RestaurantHandler) GetMyRestaurant(c *gin.Context) {
	restaurant, found := h.own(c, "No restaurant found for your account")
	if !found {
		return
	}
	if err := h.db.Where("restaurant_id = ?", restaurant.ID).Find(&restaurant.MenuItems).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, restaurant)
}

// UpdateRestaurant updates restaurant details
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	restaurant, found := h.own(c, "Restaurant not found")
	if !found {
		return
	}
	var req UpdateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}

	update := map[string]any{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Cuisine != nil {
		update["cuisine"] = *req.Cuisine
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.IsOpen != nil {
		update["is_open"] = *req.IsOpen
	}
	if len(update) > 0 {
		if err := h.db.Model(restaurant).Updates(update).Error; err != nil {
			fail(c, apperror.Internal(err))
			return
		}
	}
	ok(c, http.StatusOK, restaurant)
}

// ── Menu Management ─────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	IsVeg       bool    `json:"isVeg"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	IsVeg       *bool    `json:"isVeg"`
	IsAvailable *bool    `json:"isAvailable"`
}

// AddMenuItem adds a new item to the restaurant's menu
func (h *RestaurantHandler) AddMenuItem(c *gin.Context) {
	restaurant, found := h.own(c, "Create a restaurant first before adding menu items")
	if !found {
		return
	}
	var req CreateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsVeg:        req.IsVeg,
		IsAvailable:  true,
	}
	if err := h.db.Create(&item).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusCreated, item)
}

// ownedItem loads the :itemId menu item and checks that the caller owns its restaurant.
func (h *RestaurantHandler) ownedItem(c *gin.Context) (*models.MenuItem, bool) {
	var item models.MenuItem
	err := h.db.Where("id = ?", c.Param("itemId")).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, apperror.NotFound("Menu item not found"))
		return nil, false
	}
	if err != nil {
		fail(c, apperror.Internal(err))
		return nil, false
	}

	var owned int64
	err = h.db.Model(&models.Restaurant{}).
		Where("id = ? AND owner_id = ?", item.RestaurantID, middleware.GetUserID(c)).
		Count(&owned).Error
	if err != nil {
		fail(c, apperror.Internal(err))
		return nil, false
	}
	if owned == 0 {
		fail(c, apperror.Forbidden("You don't own this menu item"))
		return nil, false
	}
	return &item, true
}

// UpdateMenuItem updates a menu item (only by the owner)
func (h *RestaurantHandler) UpdateMenuItem(c *gin.Context) {
	item, found := h.ownedItem(c)
	if !found {
		return
	}
	var req UpdateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	update := map[string]any{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Category != nil {
		update["category"] = *req.Category
	}
	if req.IsVeg != nil {
		update["is_veg"] = *req.IsVeg
	}
	if req.IsAvailable != nil {
		update["is_available"] = *req.IsAvailable
	}
	if len(update) > 0 {
		if err := h.db.Model(item).Updates(update).Error; err != nil {
			fail(c, apperror.Internal(err))
			return
		}
	}
	ok(c, http.StatusOK, item)
}

// DeleteMenuItem removes a menu item
func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	item, found := h.ownedItem(c)
	if !found {
		return
	}
	if err := h.db.Delete(item).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ── Orders ──────────────────────────────────────────────────────────────────

// GetRestaurantOrders returns all orders for the restaurant owner
func (h *RestaurantHandler) GetRestaurantOrders(c *gin.Context) {
	restaurant, found := h.own(c, "No restaurant found for your account")
	if !found {
		return
	}

	var orders []models.Order
	query := h.db.Preload("Items").Preload("Customer").Preload("Driver").
		Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}

	summary := map[models.OrderStatus]int{}
	for _, o := range orders {
		summary[o.Status]++
	}
	ok(c, http.StatusOK, gin.H{
		"restaurant":   restaurant.Name,
		"orderSummary": summary,
		"orders":       orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles restaurant's state transitions
func (h *RestaurantHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := services.Actor{UserID: middleware.GetUserID(c), Role: statemachine.ActorRestaurant}
	order, err := h.orders.Transition(c.Request.Context(), c.Param("number"), req.Status, actor, req.Note)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, order)
}
