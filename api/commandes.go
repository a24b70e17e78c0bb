package api

import (
	"context"
	"net/url"

	"github.com/garghot/food-client/models"
)

type CommandeService struct {
	client *Client
}

func NewCommandeService(client *Client) *CommandeService {
	return &CommandeService{client: client}
}

func (s *CommandeService) Create(ctx context.Context, req models.CommandeRequest) (*models.Commande, error) {
	var created models.Commande
	if err := s.client.post(ctx, "/commandes/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CommandeService) Update(ctx context.Context, ref string, req models.CommandeRequest) (*models.Commande, error) {
	var updated models.Commande
	if err := s.client.put(ctx, "/commandes/"+url.PathEscape(ref), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ByClient lists the orders of a client. A client the API does not know yet
// simply has no orders.
func (s *CommandeService) ByClient(ctx context.Context, clientID string) ([]models.Commande, error) {
	commandes, err := getList[models.Commande](ctx, s.client, "/commandes/utilisateur/"+url.PathEscape(clientID))
	if err != nil {
		if IsNotFound(err) {
			return []models.Commande{}, nil
		}
		return nil, err
	}
	return commandes, nil
}

func (s *CommandeService) Get(ctx context.Context, ref string) (*models.Commande, error) {
	var c models.Commande
	if err := s.client.get(ctx, "/commandes/"+url.PathEscape(ref), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Ping checks that the orders endpoint answers.
func (s *CommandeService) Ping(ctx context.Context) error {
	return s.client.get(ctx, "/commandes/", nil)
}
