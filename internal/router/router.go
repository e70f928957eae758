package router

import (
	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/middleware"
)

// SetupRouter builds the gin engine with CORS and all API routes.
func SetupRouter(deps api.Deps, jwtSecret string, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	api.SetupAPI(router, deps, jwtSecret)

	return router
}
