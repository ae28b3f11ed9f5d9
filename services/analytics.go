package services

import (
	"context"
	"fmt"
	"time"

	"food-delivery-app/apperror"
	"food-delivery-app/cache"
	"food-delivery-app/logger"
	"food-delivery-app/models"

	"gorm.io/gorm"
)

const analyticsCacheKey = "admin:analytics"

// TopItemsLimit bounds Analytics.TopItems.
const TopItemsLimit = 5

type TopItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int64   `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type Analytics struct {
	TotalOrders       int64                        `json:"totalOrders"`
	OrdersByStatus    map[models.OrderStatus]int64 `json:"ordersByStatus"`
	TotalRevenue      float64                      `json:"totalRevenue"`
	AverageOrderValue float64                      `json:"averageOrderValue"`
	ActiveDrivers     int64                        `json:"activeDrivers"`
	TopItems          []TopItem                    `json:"topItems"`
	GeneratedAt       time.Time                    `json:"generatedAt"`
}

type driverCounter interface {
	CountAvailable(ctx context.Context) (int64, error)
}

type AnalyticsService struct {
	db      *gorm.DB
	drivers driverCounter
	cache   cache.Cache
	ttl     time.Duration
}

func NewAnalyticsService(db *gorm.DB, drivers driverCounter, c cache.Cache, ttl time.Duration) *AnalyticsService {
	if c == nil {
		c = cache.Noop{}
	}
	return &AnalyticsService{db: db, drivers: drivers, cache: c, ttl: ttl}
}

// Summary returns the admin dashboard figures, served from cache while fresh.
// Revenue only counts delivered orders.
func (s *AnalyticsService) Summary(ctx context.Context) (*Analytics, error) {
	var cached Analytics
	if hit, err := s.cache.Get(ctx, analyticsCacheKey, &cached); err != nil {
		logger.Failure("analytics", "cache-get", err).Warn("analytics cache unavailable")
	} else if hit {
		return &cached, nil
	}

	a, err := s.compute(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.cache.Set(ctx, analyticsCacheKey, a, s.ttl); err != nil {
		logger.Failure("analytics", "cache-set", err).Warn("analytics not cached")
	}
	return a, nil
}

func (s *AnalyticsService) compute(ctx context.Context) (*Analytics, error) {
	db := s.db.WithContext(ctx)
	a := &Analytics{
		OrdersByStatus: make(map[models.OrderStatus]int64),
		TopItems:       []TopItem{},
		GeneratedAt:    time.Now().UTC(),
	}

	var byStatus []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := db.Model(&models.Order{}).Select("status, count(*) as count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	for _, row := range byStatus {
		a.OrdersByStatus[row.Status] = row.Count
		a.TotalOrders += row.Count
	}

	var revenue struct {
		Total float64
		Count int64
	}
	err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) as total, count(*) as count").
		Where("status = ?", models.StatusDelivered).
		Scan(&revenue).Error
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	a.TotalRevenue = revenue.Total
	if revenue.Count > 0 {
		a.AverageOrderValue = revenue.Total / float64(revenue.Count)
	}

	err = db.Table("order_items").
		Select("order_items.menu_item_id, order_items.name, SUM(order_items.quantity) as quantity, SUM(order_items.quantity * order_items.price) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", models.StatusCancelled).
		Group("order_items.menu_item_id, order_items.name").
		Order("quantity desc").
		Limit(TopItemsLimit).
		Scan(&a.TopItems).Error
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}

	if a.ActiveDrivers, err = s.drivers.CountAvailable(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Invalidate drops the cached summary.
func (s *AnalyticsService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, analyticsCacheKey); err != nil {
		logger.Failure("analytics", "cache-delete", err).Warn("analytics cache not invalidated")
	}
}
