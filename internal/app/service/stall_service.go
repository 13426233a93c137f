package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

var ErrNotStallOwner = errors.New("user does not own this stall")

const (
	stallListCacheKey = "stalls:active"
	stallListCacheTTL = 5 * time.Minute
)

type UpdateStallInput struct {
	Description *string  `json:"description"`
	Categories  []string `json:"categories"`
	LogoURL     *string  `json:"logo_url"`
	IsActive    *bool    `json:"is_active"`
}

type MenuItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	Available   *bool   `json:"available"`
}

// StallService serves the public browse surface and owner self-management.
// Stall creation has no path here: stalls only come from approved
// applications.
type StallService struct {
	stallRepo repository.StallRepository
	cache     *redis.Client // nil disables caching
}

func NewStallService(stallRepo repository.StallRepository, cache *redis.Client) *StallService {
	return &StallService{
		stallRepo: stallRepo,
		cache:     cache,
	}
}

// ListActive returns active stalls, served from the redis cache when warm.
func (s *StallService) ListActive(ctx context.Context) ([]model.FoodStall, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, stallListCacheKey).Result(); err == nil {
			var stalls []model.FoodStall
			if err := json.Unmarshal([]byte(cached), &stalls); err == nil {
				return stalls, nil
			}
		}
	}

	stalls, err := s.stallRepo.FindActive()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stalls); err == nil {
			if err := s.cache.Set(ctx, stallListCacheKey, payload, stallListCacheTTL).Err(); err != nil {
				logger.Warn("Failed to cache stall listing", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
	return stalls, nil
}

func (s *StallService) GetStall(id uint) (*model.FoodStall, error) {
	stall, err := s.stallRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if stall == nil {
		return nil, apperrors.NotFoundf("stall %d not found", id)
	}
	return stall, nil
}

func (s *StallService) GetOwnerStalls(ownerID uint) ([]model.FoodStall, error) {
	return s.stallRepo.FindByOwnerID(ownerID)
}

func (s *StallService) UpdateStall(ctx context.Context, stallID, ownerID uint, input UpdateStallInput) (*model.FoodStall, error) {
	stall, err := s.stallRepo.FindByID(stallID)
	if err != nil {
		return nil, err
	}
	if stall == nil {
		return nil, apperrors.NotFoundf("stall %d not found", stallID)
	}
	if stall.OwnerID != ownerID {
		return nil, ErrNotStallOwner
	}

	if input.Description != nil {
		stall.Description = *input.Description
	}
	if input.Categories != nil {
		stall.Categories = input.Categories
	}
	if input.LogoURL != nil {
		stall.LogoURL = *input.LogoURL
	}
	if input.IsActive != nil {
		stall.IsActive = *input.IsActive
	}

	if err := s.stallRepo.Update(stall); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return stall, nil
}

func (s *StallService) AddMenuItem(stallID, ownerID uint, input MenuItemInput) (*model.MenuItem, error) {
	stall, err := s.stallRepo.FindByID(stallID)
	if err != nil {
		return nil, err
	}
	if stall == nil {
		return nil, apperrors.NotFoundf("stall %d not found", stallID)
	}
	if stall.OwnerID != ownerID {
		return nil, ErrNotStallOwner
	}

	item := &model.MenuItem{
		StallID:     stallID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Available:   true,
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if err := s.stallRepo.CreateMenuItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *StallService) UpdateMenuItem(itemID, ownerID uint, input MenuItemInput) (*model.MenuItem, error) {
	item, _, err := s.ownedMenuItem(itemID, ownerID)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if err := s.stallRepo.UpdateMenuItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *StallService) RemoveMenuItem(itemID, ownerID uint) error {
	item, _, err := s.ownedMenuItem(itemID, ownerID)
	if err != nil {
		return err
	}
	return s.stallRepo.DeleteMenuItem(item.ID)
}

func (s *StallService) ownedMenuItem(itemID, ownerID uint) (*model.MenuItem, *model.FoodStall, error) {
	item, err := s.stallRepo.FindMenuItem(itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, apperrors.NotFoundf("menu item %d not found", itemID)
	}

	stall, err := s.stallRepo.FindByID(item.StallID)
	if err != nil {
		return nil, nil, err
	}
	if stall == nil {
		return nil, nil, apperrors.NotFoundf("stall %d not found", item.StallID)
	}
	if stall.OwnerID != ownerID {
		return nil, nil, ErrNotStallOwner
	}
	return item, stall, nil
}

func (s *StallService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, stallListCacheKey).Err(); err != nil {
		logger.Warn("Failed to invalidate stall listing cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
