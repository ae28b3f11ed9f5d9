package routes

import (
	"net/http"
	"time"

	"food-delivery-app/cache"
	"food-delivery-app/handlers"
	"food-delivery-app/middleware"
	"food-delivery-app/models"
	"food-delivery-app/realtime"
	"food-delivery-app/redirect"
	"food-delivery-app/services"
	"food-delivery-app/session"
	"food-delivery-app/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the shared collaborators the routes are wired from.
type Deps struct {
	DB        *gorm.DB
	Auth      *middleware.Auth
	Sessions  *session.Manager
	Locations services.LocationRepository
	Publisher realtime.Publisher
	Pusher    *realtime.Pusher
	Hub       *realtime.Hub
	Cache     cache.Cache
	CacheTTL  time.Duration
	// AuthRatePerMinute limits register/login attempts per client IP.
	AuthRatePerMinute int
}

func SetupRoutes(r *gin.Engine, d Deps) {
	if d.Publisher == nil {
		d.Publisher = realtime.Nop{}
	}
	if d.Locations == nil {
		d.Locations = store.NewLocationStore(d.DB)
	}

	orderStore := store.NewOrderStore(d.DB)
	restaurantStore := store.NewRestaurantStore(d.DB)

	notificationSvc := services.NewNotificationService(d.DB, d.Publisher)
	orderSvc := services.NewOrderService(d.DB, orderStore, d.Locations, notificationSvc, d.Publisher)
	driverSvc := services.NewDriverService(d.Locations, orderStore, d.Publisher)
	trackingSvc := services.NewTrackingService(orderStore, restaurantStore, d.Locations)
	analyticsSvc := services.NewAnalyticsService(d.DB, d.Locations, d.Cache, d.CacheTTL)

	authH := handlers.NewAuthHandler(d.DB, d.Auth, d.Sessions)
	publicH := handlers.NewPublicHandler(d.DB)
	trackingH := handlers.NewTrackingHandler(trackingSvc)
	customerH := handlers.NewCustomerHandler(d.DB, orderSvc)
	restaurantH := handlers.NewRestaurantHandler(d.DB, restaurantStore, orderSvc)
	driverH := handlers.NewDriverHandler(d.DB, orderSvc, driverSvc)
	adminH := handlers.NewAdminHandler(d.DB, orderSvc, analyticsSvc)
	notificationH := handlers.NewNotificationHandler(notificationSvc)
	realtimeH := handlers.NewRealtimeHandler(d.DB, d.Pusher, d.Hub)
	dashboardH := handlers.NewDashboardHandler(d.DB, restaurantStore, d.Locations, analyticsSvc)

	limiter := middleware.NewRateLimiter(d.AuthRatePerMinute)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", limiter.Limit(), authH.Register)
		public.POST("/auth/login", limiter.Limit(), authH.Login)
		public.POST("/auth/logout", authH.Logout)
		public.GET("/auth/redirect", d.Auth.Optional(), authH.Redirect)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", publicH.ListRestaurants)
		public.GET("/restaurants/:id", publicH.GetRestaurant)
		public.GET("/restaurants/:id/menu", publicH.GetMenu)
		public.GET("/state-machine", publicH.StateMachine)

		// Order tracking and the driver app's pings are keyed by the body/path, not the caller.
		public.GET("/orders/track/:orderNumber", trackingH.Track)
		public.PUT("/driver/status", driverH.UpdateStatus)
		public.PUT("/driver/location", driverH.UpdateLocation)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(d.Auth.Required())
	{
		authed.GET("/profile", authH.Profile)
		authed.GET("/driver/location/:driverId", driverH.GetLocation)

		authed.GET("/notifications", notificationH.List)
		authed.PUT("/notifications/:id/read", notificationH.MarkRead)

		authed.POST("/pusher/auth", realtimeH.PusherAuth)
		authed.GET("/ws", realtimeH.WebSocket)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(d.Auth.Required(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", customerH.PlaceOrder)
		customer.GET("/orders", customerH.GetMyOrders)
		customer.GET("/orders/:number", customerH.GetOrderDetail)
		customer.PUT("/orders/:number/cancel", customerH.CancelOrder)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(d.Auth.Required(), middleware.RoleRequired(models.RoleRestaurant))
	{
		restaurant.POST("", restaurantH.CreateRestaurant)
		restaurant.GET("", restaurantH.GetMyRestaurant)
		restaurant.PUT("", restaurantH.UpdateRestaurant)

		restaurant.POST("/menu", restaurantH.AddMenuItem)
		restaurant.PUT("/menu/:itemId", restaurantH.UpdateMenuItem)
		restaurant.DELETE("/menu/:itemId", restaurantH.DeleteMenuItem)

		restaurant.GET("/orders", restaurantH.GetRestaurantOrders)
		restaurant.PUT("/orders/:number/status", restaurantH.UpdateOrderStatus)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/driver")
	driver.Use(d.Auth.Required(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/orders/available", driverH.GetAvailableOrders)
		driver.GET("/orders/my-deliveries", driverH.GetMyDeliveries)
		driver.PUT("/orders/:number/pickup", driverH.PickupOrder)
		driver.PUT("/orders/:number/on-the-way", driverH.StartDelivery)
		driver.PUT("/orders/:number/deliver", driverH.DeliverOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(d.Auth.Required(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", adminH.GetAllOrders)
		admin.PUT("/orders/:number/status", adminH.ForceOrderStatus)
		admin.GET("/users", adminH.GetAllUsers)
		admin.GET("/restaurants", adminH.GetAllRestaurants)
		admin.GET("/analytics", adminH.GetAnalytics)
	}

	// ── Landing pages ──────────────────────────────────────────────
	landing := func(role models.UserRole, h gin.HandlerFunc) {
		r.GET(redirect.Resolve(role, ""), d.Auth.Optional(),
			middleware.RedirectGuard(redirect.Guard{Allowed: []models.UserRole{role}}), h)
	}
	landing(models.RoleCustomer, dashboardH.Customer)
	landing(models.RoleRestaurant, dashboardH.Restaurant)
	landing(models.RoleDriver, dashboardH.Driver)
	landing(models.RoleAdmin, dashboardH.Admin)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})
}
