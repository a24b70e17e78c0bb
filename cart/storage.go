package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/garghot/food-client/models"
	"github.com/garghot/food-client/store"
	"github.com/google/uuid"
)

const (
	keyPrefix    = "cart_items_"
	syncedPrefix = "cart_synced_"
)

var (
	ErrAlreadyInCart = errors.New("item already in cart")
	ErrItemNotFound  = errors.New("cart item not found")
	ErrNoUser        = errors.New("user id is required")
)

// Storage keeps one cart per user in the local key-value store.
type Storage struct {
	kv    store.KV
	now   func() time.Time
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStorage(kv store.KV) *Storage {
	return &Storage{
		kv:    kv,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

func Key(userID string) string { return keyPrefix + userID }

// SyncedKey holds the lines of the open order last imported by Sync.
func SyncedKey(userID string) string { return syncedPrefix + userID }

// lock serializes read-modify-write cycles on a single user's cart.
func (s *Storage) lock(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// lockPair locks two carts, always in the same order so that two calls with
// the ids swapped cannot deadlock.
func (s *Storage) lockPair(a, b string) func() {
	if b < a {
		a, b = b, a
	}
	unlockA := s.lock(a)
	unlockB := s.lock(b)
	return func() {
		unlockB()
		unlockA()
	}
}

func (s *Storage) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	return s.load(ctx, userID)
}

func (s *Storage) load(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := store.GetJSON(ctx, s.kv, Key(userID), &items); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.CartItem{}, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

func (s *Storage) save(ctx context.Context, userID string, items []models.CartItem) error {
	if err := store.SetJSON(ctx, s.kv, Key(userID), items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Add appends item to the cart. A cart holds at most one line per plat.
func (s *Storage) Add(ctx context.Context, userID string, item models.CartItem) (models.CartItem, error) {
	if userID == "" {
		return models.CartItem{}, ErrNoUser
	}
	unlock := s.lock(userID)
	defer unlock()

	items, err := s.load(ctx, userID)
	if err != nil {
		return models.CartItem{}, err
	}
	for _, existing := range items {
		if existing.PlatID == item.PlatID {
			return existing, ErrAlreadyInCart
		}
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = s.now()
	}

	if err := s.save(ctx, userID, append(items, item)); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// AddPlat adds a catalog dish with the given quantity.
func (s *Storage) AddPlat(ctx context.Context, userID string, plat models.Plat, quantity int) (models.CartItem, error) {
	return s.Add(ctx, userID, ItemFromPlat(plat, quantity))
}

func ItemFromPlat(plat models.Plat, quantity int) models.CartItem {
	return models.CartItem{
		PlatID:   plat.ID,
		Nom:      plat.Nom,
		Prix:     plat.Prix.Float64(),
		Quantity: quantity,
		Image:    plat.Image,
	}
}

func (s *Storage) Remove(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return ErrNoUser
	}
	unlock := s.lock(userID)
	defer unlock()

	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	kept := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return ErrItemNotFound
	}
	return s.save(ctx, userID, kept)
}

// UpdateQuantity sets the quantity of a line, never below 1.
func (s *Storage) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (models.CartItem, error) {
	return s.mutate(ctx, userID, itemID, func(it *models.CartItem) {
		it.Quantity = max(1, quantity)
	})
}

// Increment adds delta to the quantity of a line, never going below 1.
func (s *Storage) Increment(ctx context.Context, userID, itemID string, delta int) (models.CartItem, error) {
	return s.mutate(ctx, userID, itemID, func(it *models.CartItem) {
		it.Quantity = max(1, it.Quantity+delta)
	})
}

func (s *Storage) mutate(ctx context.Context, userID, itemID string, fn func(*models.CartItem)) (models.CartItem, error) {
	if userID == "" {
		return models.CartItem{}, ErrNoUser
	}
	unlock := s.lock(userID)
	defer unlock()

	items, err := s.load(ctx, userID)
	if err != nil {
		return models.CartItem{}, err
	}
	for i := range items {
		if items[i].ID == itemID {
			fn(&items[i])
			if err := s.save(ctx, userID, items); err != nil {
				return models.CartItem{}, err
			}
			return items[i], nil
		}
	}
	return models.CartItem{}, ErrItemNotFound
}

// Replace overwrites the whole cart.
func (s *Storage) Replace(ctx context.Context, userID string, items []models.CartItem) error {
	if userID == "" {
		return ErrNoUser
	}
	unlock := s.lock(userID)
	defer unlock()
	return s.save(ctx, userID, items)
}

func (s *Storage) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrNoUser
	}
	unlock := s.lock(userID)
	defer unlock()

	if err := s.kv.Delete(ctx, Key(userID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Total is the sum of price times quantity over the lines.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
