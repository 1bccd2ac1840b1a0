package routes

import (
	"github.com/Edmundtutu/foody-sub002/configs"
	"github.com/Edmundtutu/foody-sub002/controllers"
	"github.com/Edmundtutu/foody-sub002/events"
	"github.com/Edmundtutu/foody-sub002/middlewares"
	"github.com/Edmundtutu/foody-sub002/repository"
	"github.com/Edmundtutu/foody-sub002/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, pub events.SelectionPublisher) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	comboRepo := repository.NewComboRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	selRepo := repository.NewComboSelectionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	policy := services.NewComboPolicy(restRepo)
	structureSvc := services.NewComboStructureService(db, comboRepo, catalogRepo, policy)
	comboSvc := services.NewComboService(db, comboRepo, restRepo, structureSvc, policy)
	pricingSvc := services.NewComboPricingService(comboRepo)
	selectionSvc := services.NewComboSelectionService(db, selRepo, pricingSvc, policy, pub)
	if cfg.SelectionPublishTimeout > 0 {
		selectionSvc.PublishTimeout = cfg.SelectionPublishTimeout
	}
	orderSvc := services.NewOrderService(db, orderRepo, catalogRepo, selRepo, comboRepo, restRepo, cfg.DeliveryFee)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	comboCtrl := controllers.NewComboController(comboSvc, structureSvc, pricingSvc, selectionSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	calcLimiter := middlewares.NewRateLimiter(cfg.CalculateRatePerSec, cfg.CalculateBurst)

	// Auth (public)
	r.POST("/auth/login", authCtrl.Login)

	// Public
	r.GET("/restaurants/:id/combos", comboCtrl.ListByRestaurant)
	r.GET("/combos/:id", comboCtrl.Get)
	r.POST("/combos/:id/calculate", calcLimiter.Middleware(), comboCtrl.Calculate)

	// User
	u := r.Group("/", auth)
	{
		u.POST("/combos/:id/selections", comboCtrl.CreateSelection)
		u.GET("/combo-selections/:id", comboCtrl.GetSelection)
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders/:id", orderCtrl.Detail)
	}

	// Partner Restaurant (owner/admin)
	partner := r.Group("/partner/restaurant", middlewares.AuthMiddleware(cfg.JWTSecret, "owner", "admin"))
	{
		partner.POST("/combos", comboCtrl.Create)
		partner.PATCH("/combos/:id", comboCtrl.Update)
		partner.PUT("/combos/:id/structure", comboCtrl.SyncStructure)
		partner.DELETE("/combos/:id", comboCtrl.Delete)
	}
}
