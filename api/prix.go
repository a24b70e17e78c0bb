package api

import (
	"context"
	"fmt"
	"time"

	"github.com/garghot/food-client/cache"
	"github.com/garghot/food-client/models"
)

type PrixService struct {
	client *Client
	cache  *cache.Cache[string, []models.Prix]
}

func NewPrixService(client *Client, ttl time.Duration) *PrixService {
	return &PrixService{
		client: client,
		cache:  cache.New[string, []models.Prix](ttlOrDefault(ttl)),
	}
}

func (s *PrixService) List(ctx context.Context) ([]models.Prix, error) {
	return s.cache.Get(ctx, listKey, func(ctx context.Context) ([]models.Prix, error) {
		return getList[models.Prix](ctx, s.client, "/prix")
	})
}

func (s *PrixService) Get(ctx context.Context, id int) (*models.Prix, error) {
	if id <= 0 {
		return nil, fmt.Errorf("prix %d: %w", id, ErrInvalidID)
	}
	var p models.Prix
	if err := s.client.get(ctx, fmt.Sprintf("/prix/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PrixService) Create(ctx context.Context, p models.Prix) (*models.Prix, error) {
	var created models.Prix
	if err := s.client.post(ctx, "/prix", p, &created); err != nil {
		return nil, err
	}
	s.cache.Invalidate(listKey)
	return &created, nil
}

// Update uses the API's /prix/edit/{id} route.
func (s *PrixService) Update(ctx context.Context, id int, p models.Prix) (*models.Prix, error) {
	if id <= 0 {
		return nil, fmt.Errorf("prix %d: %w", id, ErrInvalidID)
	}
	var updated models.Prix
	if err := s.client.put(ctx, fmt.Sprintf("/prix/edit/%d", id), p, &updated); err != nil {
		return nil, err
	}
	s.cache.Invalidate(listKey)
	return &updated, nil
}

func (s *PrixService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("prix %d: %w", id, ErrInvalidID)
	}
	if err := s.client.delete(ctx, fmt.Sprintf("/prix/%d", id)); err != nil {
		return err
	}
	s.cache.Invalidate(listKey)
	return nil
}
