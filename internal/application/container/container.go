// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/brightloom/storefront-go/internal/application/services"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/invalidation"
	"github.com/brightloom/storefront-go/internal/infrastructure/caching/manager"
	"github.com/brightloom/storefront-go/internal/infrastructure/database"
	"github.com/brightloom/storefront-go/internal/infrastructure/email"
	"github.com/brightloom/storefront-go/internal/infrastructure/media"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/performance"
	"github.com/brightloom/storefront-go/internal/infrastructure/persistence/commerce"
	"github.com/brightloom/storefront-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	ProductService *services.ProductService
	OrderService   *services.OrderService
	UserService    *services.UserService
	CouponService  *services.CouponService
	StatsService   *services.StatsService
	PaymentService *services.PaymentService

	// Infrastructure
	Database     *database.Database
	CacheManager *manager.Manager
	Invalidator  *invalidation.Coordinator
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
	JWTSecret    string
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.Database, jwtSecret string) (*Container, error) {
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return nil, err
	}
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	cacheManager := manager.NewManager(logger)
	invalidator := invalidation.NewCoordinator(cacheManager, logger)

	productRepo := commerce.NewProductRepository(db.Conn, logger)
	orderRepo := commerce.NewOrderRepository(db.Conn, logger)
	userRepo := commerce.NewUserRepository(db.Conn, logger)
	couponRepo := commerce.NewCouponRepository(db.Conn, logger)

	images := media.NewImageProcessor(config.MediaPath, config.ThumbnailWidth)

	// Email is optional; orders still flow without a provider.
	mailer, mailErr := email.NewService()
	if mailErr != nil {
		logger.Email().Warn("Email disabled", "reason", mailErr.Error())
		mailer = nil
	}

	productService := services.NewProductService(productRepo, cacheManager, invalidator, images, logger)

	return &Container{
		ProductService: productService,
		OrderService:   services.NewOrderService(orderRepo, userRepo, productService, cacheManager, invalidator, mailer, logger),
		UserService:    services.NewUserService(userRepo, jwtSecret, logger),
		CouponService:  services.NewCouponService(couponRepo, cacheManager, invalidator, logger),
		StatsService:   services.NewStatsService(productRepo, orderRepo, userRepo, cacheManager, perfTracker, logger),
		PaymentService: services.NewPaymentService(services.OfflineGateway{}, logger),

		Database:     db,
		CacheManager: cacheManager,
		Invalidator:  invalidator,
		Logger:       logger,
		PerfTracker:  perfTracker,
		JWTSecret:    jwtSecret,
	}, nil
}
