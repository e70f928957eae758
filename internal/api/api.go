package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

// Deps carries the shared infrastructure the handlers are wired with.
type Deps struct {
	DB       *gorm.DB
	HealthDB *database.DB
	Redis    *redis.Client
	S3       *config.S3Config
}

// SetupAPI wires services and handlers onto /api/v1.
func SetupAPI(router *gin.Engine, deps Deps, jwtSecret string) {
	v1 := router.Group("/api/v1")
	{
		imageService := service.NewImageService(deps.S3)
		authService := service.NewAuthService(deps.DB, jwtSecret)
		catalogService := service.NewCatalogService(deps.DB)
		recipeService := service.NewRecipeService(deps.DB, imageService)
		socialService := service.NewSocialService(deps.DB)
		collectionService := service.NewCollectionService(deps.DB)
		shoppingListService := service.NewShoppingListService(deps.DB)

		var createLimiter, modifyLimiter *middleware.RateLimiter
		if deps.Redis != nil {
			createLimiter = middleware.NewRecipeCreationRateLimiter(deps.Redis)
			modifyLimiter = middleware.NewRecipeModificationRateLimiter(deps.Redis)
		}

		authHandler := NewAuthHandler(authService)
		userHandler := NewUserHandler(authService, socialService, authHandler)
		tagHandler := NewTagHandler(catalogService, authService)
		ingredientHandler := NewIngredientHandler(catalogService, authService)
		recipeHandler := NewRecipeHandler(recipeService, collectionService, shoppingListService, authService, createLimiter, modifyLimiter)

		authHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1)
		tagHandler.RegisterRoutes(v1)
		ingredientHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
	}

	router.GET("/health", healthHandler(deps.HealthDB))
}

func healthHandler(healthDB *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "ok"

		if healthDB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := healthDB.HealthCheck(ctx); err != nil {
				status = http.StatusServiceUnavailable
				dbStatus = "unreachable"
			}
		}

		c.JSON(status, gin.H{"status": "ok", "database": dbStatus})
	}
}
