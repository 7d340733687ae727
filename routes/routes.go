package routes

import (
	"net/http"
	"time"

	"laundrify/handlers"
	"laundrify/middleware"
	"laundrify/services/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerSet bundles the handlers the route groups need.
type HandlerSet struct {
	Sessions *handlers.SessionHandler
	Carts    *handlers.CartHandler
	Orders   *handlers.OrderHandler
	Payments *handlers.PaymentHandler
	Catalog  *handlers.CatalogHandler
	Feedback *handlers.FeedbackHandler
	Admin    *handlers.AdminHandler
	Geocode  *handlers.GeocodeHandler
	Storage  *handlers.StorageHandler

	SessionService session.Service
}

// SetupCORS applies the CORS policy for browser clients.
func SetupCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterUserRoutes registers account and session endpoints.
func RegisterUserRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hs.Sessions.Register)
		api.POST("/login", hs.Sessions.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware(hs.SessionService))
		api.GET("/account", hs.Sessions.Account)
		api.POST("/logout", hs.Sessions.Logout)
		api.GET("/admin/users", middleware.AdminOnly(), hs.Admin.ListUsers)
		api.DELETE("/delete/users/:userId", middleware.AdminOnly(), hs.Admin.DeleteUser)
	}
}

// RegisterCatalogRoutes registers the public service catalog plus the admin
// management endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/services")
	{
		api.GET("", hs.Catalog.ListServices)
		api.GET("/:id", hs.Catalog.GetService)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hs.SessionService), middleware.AdminOnly())
		protected.POST("", hs.Catalog.CreateService)
		protected.PUT("/:id", hs.Catalog.UpdateService)
		protected.DELETE("/:id", hs.Catalog.DeleteService)
	}
}

// RegisterCartRoutes sets up the session cart endpoints.
func RegisterCartRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/cart")
	{
		api.Use(middleware.AuthMiddleware(hs.SessionService))
		api.GET("/:userId", hs.Carts.GetCart)
		api.POST("/add", hs.Carts.AddItem)
		api.PUT("/update-quantity", hs.Carts.UpdateQuantity)
		api.DELETE("/remove", hs.Carts.RemoveItem)
		api.DELETE("/clear/:userId", hs.Carts.ClearCart)
		api.POST("/checkout", hs.Carts.Checkout)
	}
}

// RegisterOrderRoutes sets up the order draft workflow and order tracking.
func RegisterOrderRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.AuthMiddleware(hs.SessionService))

		// Draft workflow.
		api.POST("/draft", hs.Orders.StartDraft)
		api.PUT("/draft/:draftID/address", hs.Orders.UpdateAddress)
		api.PUT("/draft/:draftID/select-address", hs.Orders.SelectAddress)
		api.PUT("/draft/:draftID/details", hs.Orders.UpdateDetails)
		api.POST("/draft/:draftID/submit", hs.Orders.SubmitDraft)

		// Direct order endpoints.
		api.POST("", hs.Orders.CreateOrder)
		api.GET("", middleware.AdminOnly(), hs.Orders.ListOrders)
		api.GET("/user/:id", hs.Orders.OrdersByUser)
		api.GET("/:id", hs.Orders.GetOrder)
		api.PUT("/:id", middleware.AdminOnly(), hs.Orders.UpdateOrderStatus)
		api.DELETE("/:id", hs.Orders.CancelOrder)
	}
}

// RegisterPaymentRoutes sets up the payment and confirmation endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.AuthMiddleware(hs.SessionService))
		api.POST("/pay/:orderId", hs.Payments.Pay)
		api.POST("/create-payment-intent", hs.Payments.CreateIntent)
		api.POST("/confirm/:orderId", hs.Payments.Confirm)
		api.POST("/retry/:orderId", hs.Payments.Retry)
		api.POST("/cancel/:orderId", hs.Payments.Cancel)
	}
}

// RegisterFeedbackRoutes sets up feedback submission and the admin response
// workflow.
func RegisterFeedbackRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/feedback")
	{
		api.GET("", hs.Feedback.List)

		api.Use(middleware.AuthMiddleware(hs.SessionService))
		api.POST("", hs.Feedback.Submit)
		api.POST("/response/:id", middleware.AdminOnly(), hs.Feedback.Respond)
		api.DELETE("/:id", middleware.AdminOnly(), hs.Feedback.Delete)
		api.DELETE("/:id/response/:responseId", middleware.AdminOnly(), hs.Feedback.DeleteResponse)
	}
}

// RegisterAdminRoutes sets up dashboard, report, and transaction endpoints.
func RegisterAdminRoutes(r *gin.Engine, hs *HandlerSet) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AuthMiddleware(hs.SessionService), middleware.AdminOnly())
		adminGroup.GET("/dashboard", hs.Admin.Dashboard)
		adminGroup.GET("/report/:type", hs.Admin.Report)
		adminGroup.POST("/upload/service-image", hs.Storage.UploadServiceImage)
	}

	txns := r.Group("/api/transactions")
	{
		txns.Use(middleware.AuthMiddleware(hs.SessionService))
		txns.GET("/user", hs.Admin.UserTransactions)
		txns.GET("/admin", middleware.AdminOnly(), hs.Admin.AdminTransactions)
	}
}

// RegisterGeocodeRoutes exposes address autocomplete.
func RegisterGeocodeRoutes(r *gin.Engine, hs *HandlerSet) {
	api := r.Group("/api/geocode")
	{
		api.Use(middleware.AuthMiddleware(hs.SessionService))
		api.GET("/search", hs.Geocode.Search)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Laundrify"})
	})
}
