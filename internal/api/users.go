package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
)

// UserHandler serves user profiles and the subscription endpoints.
type UserHandler struct {
	authService   service.IAuthService
	socialService service.ISocialService
	authHandler   *AuthHandler
}

func NewUserHandler(authService service.IAuthService, socialService service.ISocialService, authHandler *AuthHandler) *UserHandler {
	return &UserHandler{
		authService:   authService,
		socialService: socialService,
		authHandler:   authHandler,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListUsers)
		users.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
		users.POST("/set_password", middleware.AuthMiddleware(h.authService), h.authHandler.SetPassword)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.authService), h.ListSubscriptions)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Unsubscribe)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.socialService.UserViews(c.Request.Context(), middleware.ViewerID(c), users)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": views})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.socialService.UserViews(c.Request.Context(), middleware.ViewerID(c), []models.User{*user})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views[0])
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.socialService.UserViews(c.Request.Context(), nil, []models.User{*user})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views[0])
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	view, err := h.socialService.Subscribe(c.Request.Context(), userID, authorID, recipesLimitParam(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.socialService.Unsubscribe(c.Request.Context(), userID, authorID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	views, err := h.socialService.ListSubscriptions(c.Request.Context(), userID, recipesLimitParam(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": views})
}

// recipesLimitParam reads the optional recipes_limit query parameter used to
// cap recipe previews in subscription responses.
func recipesLimitParam(c *gin.Context) *int {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return nil
	}
	return &limit
}
