package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

// IngredientHandler serves the ingredient catalog. Reads are public,
// writes are admin only.
type IngredientHandler struct {
	catalogService service.ICatalogService
	authService    service.IAuthService
}

func NewIngredientHandler(catalogService service.ICatalogService, authService service.IAuthService) *IngredientHandler {
	return &IngredientHandler{catalogService: catalogService, authService: authService}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)

		admin := ingredients.Group("", middleware.AuthMiddleware(h.authService), middleware.AdminOnly())
		{
			admin.POST("", h.CreateIngredient)
			admin.PATCH("/:id", h.UpdateIngredient)
			admin.DELETE("/:id", h.DeleteIngredient)
		}
	}
}

// ListIngredients supports ?name= prefix filtering for typeahead search.
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	views, err := h.catalogService.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": views})
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	view, err := h.catalogService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var in types.IngredientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.catalogService.CreateIngredient(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	var in types.IngredientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.catalogService.UpdateIngredient(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	if err := h.catalogService.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
