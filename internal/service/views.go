package service

import (
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// View builders shared by the recipe, social and collection services.

func buildUserView(u models.User, subscribed bool) types.UserView {
	return types.UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func buildTagViews(tags []models.Tag) []types.TagView {
	views := make([]types.TagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, types.TagView{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	return views
}

func buildIngredientViews(rows []models.RecipeIngredient) []types.RecipeIngredientView {
	views := make([]types.RecipeIngredientView, 0, len(rows))
	for _, row := range rows {
		views = append(views, types.RecipeIngredientView{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	return views
}

func buildRecipeSummary(r models.Recipe) types.RecipeSummaryView {
	return types.RecipeSummaryView{
		ID:          r.ID,
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		CookingTime: r.CookingTime,
	}
}
