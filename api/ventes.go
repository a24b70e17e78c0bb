package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/garghot/food-client/models"
)

// VenteService reads sales records. Nothing here is cached.
type VenteService struct {
	client *Client
}

func NewVenteService(client *Client) *VenteService {
	return &VenteService{client: client}
}

func (s *VenteService) List(ctx context.Context) ([]models.Vente, error) {
	return getList[models.Vente](ctx, s.client, "/vente/")
}

func (s *VenteService) Get(ctx context.Context, id int) (*models.Vente, error) {
	if id <= 0 {
		return nil, fmt.Errorf("vente %d: %w", id, ErrInvalidID)
	}
	var v models.Vente
	if err := s.client.get(ctx, fmt.Sprintf("/vente/%d", id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *VenteService) ByPlat(ctx context.Context, platID int) ([]models.Vente, error) {
	if platID <= 0 {
		return nil, fmt.Errorf("plat %d: %w", platID, ErrInvalidID)
	}
	return getList[models.Vente](ctx, s.client, fmt.Sprintf("/vente/plat/%d", platID))
}

// ByDate expects a yyyy-mm-dd date.
func (s *VenteService) ByDate(ctx context.Context, date string) ([]models.Vente, error) {
	return getList[models.Vente](ctx, s.client, "/vente/date/"+url.PathEscape(date))
}
