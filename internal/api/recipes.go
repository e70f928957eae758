package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/document"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

// RecipeHandler serves recipes, favorite/cart membership and the shopping
// list download.
type RecipeHandler struct {
	recipeService       service.IRecipeService
	collectionService   service.ICollectionService
	shoppingListService service.IShoppingListService
	authService         service.IAuthService
	createLimiter       *middleware.RateLimiter
	modifyLimiter       *middleware.RateLimiter
}

func NewRecipeHandler(
	recipeService service.IRecipeService,
	collectionService service.ICollectionService,
	shoppingListService service.IShoppingListService,
	authService service.IAuthService,
	createLimiter *middleware.RateLimiter,
	modifyLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:       recipeService,
		collectionService:   collectionService,
		shoppingListService: shoppingListService,
		authService:         authService,
		createLimiter:       createLimiter,
		modifyLimiter:       modifyLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListRecipes)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.authService), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)

		recipes.POST("", h.withCreateLimit(h.CreateRecipe)...)
		recipes.PATCH("/:id", h.withModifyLimit(h.UpdateRecipe)...)
		recipes.DELETE("/:id", h.withModifyLimit(h.DeleteRecipe)...)

		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.RemoveFromCart)
	}
}

// Rate limiters are optional: without Redis the endpoints run unthrottled.
func (h *RecipeHandler) withCreateLimit(handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
	if h.createLimiter != nil {
		chain = append(chain, h.createLimiter.RateLimitMiddleware())
	}
	return append(chain, handler)
}

func (h *RecipeHandler) withModifyLimit(handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
	if h.modifyLimiter != nil {
		chain = append(chain, h.modifyLimiter.RateLimitMiddleware())
	}
	return append(chain, handler)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		FavoritedOnly: c.Query("is_favorited") == "1",
		InCartOnly:    c.Query("is_in_shopping_cart") == "1",
	}

	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &id
	}
	if tags := c.QueryArray("tags"); len(tags) > 0 {
		filter.TagSlugs = tags
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if offset := c.Query("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	views, err := h.recipeService.List(c.Request.Context(), middleware.ViewerID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": views})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	view, err := h.recipeService.Get(c.Request.Context(), middleware.ViewerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var in types.RecipeCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.recipeService.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var in types.RecipeUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.recipeService.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addMembership(c, h.collectionService.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeMembership(c, h.collectionService.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addMembership(c, h.collectionService.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeMembership(c, h.collectionService.RemoveFromCart)
}

// DownloadShoppingCart streams the summed ingredient list as a file
// attachment. ?format=txt selects plain text; the default is PDF.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	lines, err := h.shoppingListService.Lines(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	writer := document.ForFormat(strings.ToLower(c.Query("format")))

	var buf bytes.Buffer
	if err := writer.Write(&buf, "Shopping list", lines); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("shopping_list.%s", writer.Extension())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, writer.ContentType(), buf.Bytes())
}

func (h *RecipeHandler) addMembership(c *gin.Context, add func(ctx context.Context, userID, recipeID uuid.UUID) (*types.RecipeSummaryView, error)) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	view, err := add(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *RecipeHandler) removeMembership(c *gin.Context, remove func(ctx context.Context, userID, recipeID uuid.UUID) error) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := remove(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
