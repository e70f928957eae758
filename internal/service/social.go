package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/apperr"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// SocialService manages the follower graph.
type SocialService struct {
	db        *gorm.DB
	annotator *Annotator
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{
		db:        db,
		annotator: NewAnnotator(db),
	}
}

// Subscribe makes followerID follow authorID. Self-follows and duplicate
// subscriptions are rejected as conflicts.
func (s *SocialService) Subscribe(ctx context.Context, followerID, authorID uuid.UUID, recipesLimit *int) (*types.SubscriptionView, error) {
	if followerID == authorID {
		return nil, apperr.Conflict("cannot subscribe to yourself")
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	var existing models.Subscribe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("already subscribed to this user")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := models.Subscribe{UserID: followerID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return nil, err
	}

	views, err := s.buildSubscriptionViews(ctx, []models.User{author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Unsubscribe removes the follow edge. Removing an absent edge is a no-op.
func (s *SocialService) Unsubscribe(ctx context.Context, followerID, authorID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Subscribe{}).Error
}

// ListSubscriptions returns every author the follower subscribes to,
// each carrying the author's recipe count and a recipe preview capped at
// recipesLimit.
func (s *SocialService) ListSubscriptions(ctx context.Context, followerID uuid.UUID, recipesLimit *int) ([]types.SubscriptionView, error) {
	var authors []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN subscribes ON subscribes.author_id = users.id").
		Where("subscribes.user_id = ?", followerID).
		Order("subscribes.created_at DESC").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}

	return s.buildSubscriptionViews(ctx, authors, recipesLimit)
}

// UserViews hydrates users with the viewer's subscription flags, batched
// over the whole slice.
func (s *SocialService) UserViews(ctx context.Context, viewerID *uuid.UUID, users []models.User) ([]types.UserView, error) {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	subscribed, err := s.annotator.SubscribedSet(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]types.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, buildUserView(u, subscribed[u.ID]))
	}
	return views, nil
}

func (s *SocialService) buildSubscriptionViews(ctx context.Context, authors []models.User, recipesLimit *int) ([]types.SubscriptionView, error) {
	authorIDs := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		authorIDs = append(authorIDs, a.ID)
	}

	counts, err := s.annotator.RecipeCounts(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	// One query fetches all authors' recipes; grouping and capping happen
	// in memory.
	byAuthor := make(map[uuid.UUID][]types.RecipeSummaryView)
	if len(authorIDs) > 0 {
		var recipes []models.Recipe
		err := s.db.WithContext(ctx).
			Where("author_id IN ?", authorIDs).
			Order("created_at DESC").
			Find(&recipes).Error
		if err != nil {
			return nil, err
		}
		for _, r := range recipes {
			byAuthor[r.AuthorID] = append(byAuthor[r.AuthorID], buildRecipeSummary(r))
		}
		if recipesLimit != nil && *recipesLimit >= 0 {
			for id, list := range byAuthor {
				if len(list) > *recipesLimit {
					byAuthor[id] = list[:*recipesLimit]
				}
			}
		}
	}

	views := make([]types.SubscriptionView, 0, len(authors))
	for _, a := range authors {
		recipes := byAuthor[a.ID]
		if recipes == nil {
			recipes = []types.RecipeSummaryView{}
		}
		views = append(views, types.SubscriptionView{
			ID:           a.ID,
			Email:        a.Email,
			Username:     a.Username,
			FirstName:    a.FirstName,
			LastName:     a.LastName,
			IsSubscribed: true,
			RecipesCount: counts[a.ID],
			Recipes:      recipes,
		})
	}
	return views, nil
}
