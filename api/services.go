package api

import (
	"errors"
	"time"

	"github.com/garghot/food-client/cache"
	"github.com/garghot/food-client/logger"
)

const (
	platsTimeout    = 10 * time.Second
	platListTimeout = 5 * time.Second

	listKey = "all"
)

var ErrInvalidID = errors.New("invalid id")

type Options struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	Logger   *logger.Logger
}

// Services groups one client per API resource.
type Services struct {
	Plats       *PlatService
	Categories  *CategorieService
	Ingredients *IngredientService
	Prix        *PrixService
	Ventes      *VenteService
	Commandes   *CommandeService
}

func New(opts Options) *Services {
	shared := NewClient(opts.BaseURL, opts.Timeout, opts.Logger)
	plats := NewClient(opts.BaseURL, minDuration(opts.Timeout, platsTimeout), opts.Logger)

	return &Services{
		Plats:       NewPlatService(plats, opts.CacheTTL),
		Categories:  NewCategorieService(shared, opts.CacheTTL),
		Ingredients: NewIngredientService(shared, opts.CacheTTL),
		Prix:        NewPrixService(shared, opts.CacheTTL),
		Ventes:      NewVenteService(shared),
		Commandes:   NewCommandeService(shared),
	}
}

// ttlOrDefault keeps the five minute window unless configured otherwise.
func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return cache.DefaultTTL
	}
	return ttl
}

func minDuration(a, b time.Duration) time.Duration {
	if a <= 0 || b < a {
		return b
	}
	return a
}
