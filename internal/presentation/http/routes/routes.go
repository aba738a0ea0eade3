// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/container"
	"github.com/brightloom/storefront-go/internal/presentation/http/handlers"
	"github.com/brightloom/storefront-go/internal/presentation/http/middleware"
	"github.com/brightloom/storefront-go/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Uploaded product photos are served straight from disk.
	r.Static("/media", config.MediaPath)

	productHandlers := handlers.NewProductHandlers(container.ProductService, container.Logger)
	orderHandlers := handlers.NewOrderHandlers(container.OrderService, container.Logger)
	userHandlers := handlers.NewUserHandlers(container.UserService, container.Logger)
	couponHandlers := handlers.NewCouponHandlers(container.CouponService, container.Logger)
	paymentHandlers := handlers.NewPaymentHandlers(container.PaymentService, container.Logger)
	dashboardHandlers := handlers.NewDashboardHandlers(container.StatsService, container.Logger)
	systemHandlers := handlers.NewSystemHandlers(container.Database, container.CacheManager, container.PerfTracker)

	authed := middleware.Authenticated(container.JWTSecret)
	admin := middleware.AdminOnly()

	r.GET("/health", systemHandlers.Health)

	api := r.Group("/api/v1")
	{
		user := api.Group("/user")
		{
			user.POST("/new", userHandlers.SignIn)
			user.POST("/admin-login", userHandlers.AdminLogin)
			user.GET("/all", authed, admin, userHandlers.GetAllUsers)
			user.GET("/:id", authed, userHandlers.GetUser)
			user.DELETE("/:id", authed, admin, userHandlers.DeleteUser)
		}

		product := api.Group("/product")
		{
			product.GET("/latest", productHandlers.GetLatest)
			product.GET("/categories", productHandlers.GetCategories)
			product.GET("/all", productHandlers.Search)
			product.GET("/admin-products", authed, admin, productHandlers.GetAdminProducts)
			product.POST("/new", authed, admin, productHandlers.CreateProduct)
			product.GET("/:id", productHandlers.GetProduct)
			product.PUT("/:id", authed, admin, productHandlers.UpdateProduct)
			product.DELETE("/:id", authed, admin, productHandlers.DeleteProduct)
		}

		order := api.Group("/order", authed)
		{
			order.POST("/new", orderHandlers.NewOrder)
			order.GET("/my", orderHandlers.GetMyOrders)
			order.GET("/all", admin, orderHandlers.GetAllOrders)
			order.GET("/:id", orderHandlers.GetOrder)
			order.PUT("/:id", admin, orderHandlers.ProcessOrder)
			order.DELETE("/:id", admin, orderHandlers.DeleteOrder)
		}

		payment := api.Group("/payment")
		{
			payment.POST("/create", authed, paymentHandlers.CreatePayment)
			payment.GET("/discount", couponHandlers.ApplyDiscount)
			payment.POST("/coupon/new", authed, admin, couponHandlers.NewCoupon)
			payment.GET("/coupon/all", authed, admin, couponHandlers.GetAllCoupons)
			payment.DELETE("/coupon/:id", authed, admin, couponHandlers.DeleteCoupon)
		}

		dashboard := api.Group("/dashboard", authed, admin)
		{
			dashboard.GET("/stats", dashboardHandlers.GetStats)
			dashboard.GET("/pie", dashboardHandlers.GetPieCharts)
			dashboard.GET("/bar", dashboardHandlers.GetBarCharts)
			dashboard.GET("/line", dashboardHandlers.GetLineCharts)
			dashboard.GET("/metrics", systemHandlers.Metrics)
		}
	}

	return r
}
