package api

import (
	"context"
	"fmt"
	"time"

	"github.com/garghot/food-client/cache"
	"github.com/garghot/food-client/models"
)

type CategorieService struct {
	client *Client
	cache  *cache.Cache[string, []models.Categorie]
}

func NewCategorieService(client *Client, ttl time.Duration) *CategorieService {
	return &CategorieService{
		client: client,
		cache:  cache.New[string, []models.Categorie](ttlOrDefault(ttl)),
	}
}

func (s *CategorieService) List(ctx context.Context) ([]models.Categorie, error) {
	return s.cache.Get(ctx, listKey, func(ctx context.Context) ([]models.Categorie, error) {
		return getList[models.Categorie](ctx, s.client, "/categorie")
	})
}

func (s *CategorieService) Get(ctx context.Context, id int) (*models.Categorie, error) {
	if id <= 0 {
		return nil, fmt.Errorf("categorie %d: %w", id, ErrInvalidID)
	}
	var cat models.Categorie
	if err := s.client.get(ctx, fmt.Sprintf("/categorie/%d", id), &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}
