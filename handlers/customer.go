package handlers

import (
	"net/http"
	"time"

	"food-delivery-app/apperror"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/services"
	"food-delivery-app/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	RestaurantID    string `json:"restaurantId" binding:"required"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	Notes           string `json:"notes"`
	Items           []struct {
		MenuItemID string `json:"menuItemId" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

type CustomerHandler struct {
	db     *gorm.DB
	orders *services.OrderService
}

func NewCustomerHandler(db *gorm.DB, orders *services.OrderService) *CustomerHandler {
	return &CustomerHandler{db: db, orders: orders}
}

// PlaceOrder creates a new order (customer only)
func (h *CustomerHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	in := services.PlaceOrderInput{
		RestaurantID:    req.RestaurantID,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, services.OrderLine{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	order, err := h.orders.Place(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, order)
}

// GetMyOrders returns all orders for the logged-in customer
func (h *CustomerHandler) GetMyOrders(c *gin.Context) {
	var orders []models.Order
	err := h.db.Preload("Items").Preload("Restaurant").
		Where("customer_id = ?", middleware.GetUserID(c)).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, orders)
}

// GetOrderDetail returns a single order's full detail with history
func (h *CustomerHandler) GetOrderDetail(c *gin.Context) {
	actor := services.Actor{UserID: middleware.GetUserID(c), Role: statemachine.ActorCustomer}
	order, err := h.orders.Get(c.Request.Context(), c.Param("number"), actor)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.db.Where("order_id = ?", order.ID).Order("created_at").Find(&order.StatusHistory).Error; err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	ok(c, http.StatusOK, gin.H{
		"order":          order,
		"minutesElapsed": int(time.Since(order.CreatedAt).Minutes()),
	})
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels an order (customer can cancel pending or confirmed)
func (h *CustomerHandler) CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	// body is optional
	_ = c.ShouldBindJSON(&req)

	note := "Order cancelled by customer"
	if req.Reason != "" {
		note += ": " + req.Reason
	}
	actor := services.Actor{UserID: middleware.GetUserID(c), Role: statemachine.ActorCustomer}
	order, err := h.orders.Transition(c.Request.Context(), c.Param("number"), models.StatusCancelled, actor, note)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, order)
}
