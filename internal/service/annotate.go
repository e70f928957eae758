package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// Annotator computes viewer-relative derived fields for listings. All
// lookups are batched: one IN query resolves the flags for a whole page,
// never one query per row. Anonymous viewers get empty sets, so every flag
// reads false without touching the database.
type Annotator struct {
	db *gorm.DB
}

func NewAnnotator(db *gorm.DB) *Annotator {
	return &Annotator{db: db}
}

// FavoritedSet returns the subset of recipeIDs present in the viewer's
// favorite set.
func (a *Annotator) FavoritedSet(ctx context.Context, viewerID *uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return a.membershipSet(ctx, viewerID, recipeIDs, "favorite_set_recipes", "favorite_sets", "favorite_set_id")
}

// InCartSet returns the subset of recipeIDs present in the viewer's
// shopping cart.
func (a *Annotator) InCartSet(ctx context.Context, viewerID *uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return a.membershipSet(ctx, viewerID, recipeIDs, "shopping_cart_recipes", "shopping_carts", "shopping_cart_id")
}

// SubscribedSet returns which of authorIDs the viewer follows.
func (a *Annotator) SubscribedSet(ctx context.Context, viewerID *uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	flags := make(map[uuid.UUID]bool)
	if viewerID == nil || len(authorIDs) == 0 {
		return flags, nil
	}

	var ids []uuid.UUID
	err := a.db.WithContext(ctx).
		Model(&models.Subscribe{}).
		Where("user_id = ? AND author_id IN ?", *viewerID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		flags[id] = true
	}
	return flags, nil
}

// RecipeCounts returns the number of recipes authored by each of authorIDs.
func (a *Annotator) RecipeCounts(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Count    int64
	}
	err := a.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS count").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.AuthorID] = row.Count
	}
	return counts, nil
}

func (a *Annotator) membershipSet(ctx context.Context, viewerID *uuid.UUID, recipeIDs []uuid.UUID, joinTable, setTable, setColumn string) (map[uuid.UUID]bool, error) {
	flags := make(map[uuid.UUID]bool)
	if viewerID == nil || len(recipeIDs) == 0 {
		return flags, nil
	}

	var ids []uuid.UUID
	err := a.db.WithContext(ctx).
		Table(joinTable).
		Joins("JOIN "+setTable+" ON "+setTable+".id = "+joinTable+"."+setColumn).
		Where(setTable+".user_id = ? AND "+joinTable+".recipe_id IN ?", *viewerID, recipeIDs).
		Pluck(joinTable+".recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		flags[id] = true
	}
	return flags, nil
}
