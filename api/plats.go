package api

import (
	"context"
	"fmt"
	"time"

	"github.com/garghot/food-client/cache"
	"github.com/garghot/food-client/models"
)

type PlatService struct {
	client *Client
	cache  *cache.Cache[string, []models.Plat]
}

func NewPlatService(client *Client, ttl time.Duration) *PlatService {
	return &PlatService{
		client: client,
		cache:  cache.New[string, []models.Plat](ttlOrDefault(ttl)),
	}
}

// List returns the menu, served from cache for the configured TTL.
func (s *PlatService) List(ctx context.Context) ([]models.Plat, error) {
	return s.cache.Get(ctx, listKey, func(ctx context.Context) ([]models.Plat, error) {
		ctx, cancel := withTimeout(ctx, platListTimeout)
		defer cancel()
		return getList[models.Plat](ctx, s.client, "/plat")
	})
}

func (s *PlatService) Get(ctx context.Context, id int) (*models.Plat, error) {
	if id <= 0 {
		return nil, fmt.Errorf("plat %d: %w", id, ErrInvalidID)
	}
	var plat models.Plat
	if err := s.client.get(ctx, fmt.Sprintf("/plat/%d", id), &plat); err != nil {
		return nil, err
	}
	return &plat, nil
}

// Find looks a plat up in the cached menu first and asks the API only when
// the menu does not have it.
func (s *PlatService) Find(ctx context.Context, id int) (*models.Plat, error) {
	if plats, err := s.List(ctx); err == nil {
		for i := range plats {
			if plats[i].ID == id {
				p := plats[i]
				return &p, nil
			}
		}
	}
	return s.Get(ctx, id)
}

func (s *PlatService) Create(ctx context.Context, plat models.Plat) (*models.Plat, error) {
	var created models.Plat
	if err := s.client.post(ctx, "/plat", plat, &created); err != nil {
		return nil, err
	}
	s.cache.Invalidate(listKey)
	return &created, nil
}

func (s *PlatService) Update(ctx context.Context, id int, plat models.Plat) (*models.Plat, error) {
	if id <= 0 {
		return nil, fmt.Errorf("plat %d: %w", id, ErrInvalidID)
	}
	var updated models.Plat
	if err := s.client.put(ctx, fmt.Sprintf("/plat/%d", id), plat, &updated); err != nil {
		return nil, err
	}
	s.cache.Invalidate(listKey)
	return &updated, nil
}

func (s *PlatService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("plat %d: %w", id, ErrInvalidID)
	}
	if err := s.client.delete(ctx, fmt.Sprintf("/plat/%d", id)); err != nil {
		return err
	}
	s.cache.Invalidate(listKey)
	return nil
}
