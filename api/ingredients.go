package api

import (
	"context"
	"fmt"
	"time"

	"github.com/garghot/food-client/cache"
	"github.com/garghot/food-client/models"
)

type IngredientService struct {
	client *Client
	cache  *cache.Cache[string, []models.Ingredient]
}

func NewIngredientService(client *Client, ttl time.Duration) *IngredientService {
	return &IngredientService{
		client: client,
		cache:  cache.New[string, []models.Ingredient](ttlOrDefault(ttl)),
	}
}

func (s *IngredientService) List(ctx context.Context) ([]models.Ingredient, error) {
	return s.cache.Get(ctx, listKey, func(ctx context.Context) ([]models.Ingredient, error) {
		return getList[models.Ingredient](ctx, s.client, "/ingredient")
	})
}

func (s *IngredientService) Get(ctx context.Context, id int) (*models.Ingredient, error) {
	if id <= 0 {
		return nil, fmt.Errorf("ingredient %d: %w", id, ErrInvalidID)
	}
	var ing models.Ingredient
	if err := s.client.get(ctx, fmt.Sprintf("/ingredient/%d", id), &ing); err != nil {
		return nil, err
	}
	return &ing, nil
}

func (s *IngredientService) Create(ctx context.Context, ing models.Ingredient) (*models.Ingredient, error) {
	var created models.Ingredient
	if err := s.client.post(ctx, "/ingredient", ing, &created); err != nil {
		return nil, err
	}
	s.cache.Invalidate(listKey)
	return &created, nil
}

func (s *IngredientService) Update(ctx context.Context, id int, ing models.Ingredient) (*models.Ingredient, error) {
	if id <= 0 {
		return nil, fmt.Errorf("ingredient %d: %w", id, ErrInvalidID)
	}
	var updated models.Ingredient
	if err := s.client.put(ctx, fmt.Sprintf("/ingredient/%d", id), ing, &updated); err != nil {
		return nil, err
	}
	s.cache.Invalidate(listKey)
	return &updated, nil
}

func (s *IngredientService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("ingredient %d: %w", id, ErrInvalidID)
	}
	if err := s.client.delete(ctx, fmt.Sprintf("/ingredient/%d", id)); err != nil {
		return err
	}
	s.cache.Invalidate(listKey)
	return nil
}
