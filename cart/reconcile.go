package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/garghot/food-client/logger"
	"github.com/garghot/food-client/models"
	"github.com/garghot/food-client/orders"
	"github.com/garghot/food-client/store"
	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderAPI is the part of the orders endpoint the reconciler needs.
type OrderAPI interface {
	ByClient(ctx context.Context, clientID string) ([]models.Commande, error)
	Create(ctx context.Context, req models.CommandeRequest) (*models.Commande, error)
	Update(ctx context.Context, ref string, req models.CommandeRequest) (*models.Commande, error)
}

type PlatFinder interface {
	Find(ctx context.Context, id int) (*models.Plat, error)
}

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

type CheckoutResult struct {
	Action   Action                 `json:"action"`
	Commande *models.Commande       `json:"commande"`
	Request  models.CommandeRequest `json:"request"`
	Total    float64                `json:"total"`
	Warning  string                 `json:"warning,omitempty"`
}

// syncedLines records which plats of an open order were brought into the
// local cart, so that removing one locally also removes it from the order.
type syncedLines struct {
	Ref   string `json:"ref"`
	Plats []int  `json:"plats"`
}

type MergeStatus string

const (
	MergeNoGuestCart MergeStatus = "no-guest-cart"
	MergeGuestEmpty  MergeStatus = "guest-cart-empty"
	MergeSuccess     MergeStatus = "merged-success"
)

// Reconciler keeps the local cart and the remote open order (statut 0) in
// agreement. The local cart is authoritative; the open order is only written
// at checkout.
type Reconciler struct {
	storage *Storage
	orders  OrderAPI
	plats   PlatFinder
	log     *logger.Logger
}

func NewReconciler(storage *Storage, orders OrderAPI, plats PlatFinder, log *logger.Logger) *Reconciler {
	if log == nil {
		log = logger.Discard()
	}
	return &Reconciler{storage: storage, orders: orders, plats: plats, log: log}
}

// FindOpen returns the first open order that can be addressed by id.
func FindOpen(commandes []models.Commande) (*models.Commande, bool) {
	for i := range commandes {
		if commandes[i].IsOpen() && commandes[i].Ref() != "" {
			c := commandes[i]
			return &c, true
		}
	}
	return nil, false
}

// MergeLines folds the local cart into the lines of the remote order. Remote
// duplicates are collapsed, a plat present locally takes the local quantity.
// Remote-only lines are kept unless they are in synced: those were in the
// local cart once and the user removed them. The result is sorted by plat id.
func MergeLines(remote []models.PlatCommande, local []models.CartItem, synced map[int]bool) []models.PlatCommande {
	inCart := make(map[int]bool, len(local))
	for _, it := range local {
		inCart[it.PlatID] = true
	}

	qty := make(map[int]int, len(remote)+len(local))
	for _, line := range remote {
		if line.Quantite < 1 || (synced[line.ID] && !inCart[line.ID]) {
			continue
		}
		qty[line.ID] += line.Quantite
	}
	for _, it := range local {
		qty[it.PlatID] = max(1, it.Quantity)
	}

	lines := make([]models.PlatCommande, 0, len(qty))
	for id, q := range qty {
		lines = append(lines, models.PlatCommande{ID: id, Quantite: q})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}

// Checkout sends the local cart to the API, updating the open order when
// there is one and creating an order otherwise. The local cart is cleared
// only once the API accepted the order.
func (r *Reconciler) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	unlock := r.storage.lock(userID)
	defer unlock()

	items, err := r.storage.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	commandes, err := r.orders.ByClient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	open, hasOpen := FindOpen(commandes)

	var (
		remote []models.PlatCommande
		synced map[int]bool
	)
	if hasOpen {
		remote = open.Lines()
		synced, err = r.syncedPlats(ctx, userID, open.Ref())
		if err != nil {
			return nil, err
		}
	}
	req := models.CommandeRequest{
		Statut:   models.StatutOpen,
		IDClient: userID,
		Plats:    MergeLines(remote, items, synced),
	}
	if err := orders.Validate(req); err != nil {
		return nil, err
	}

	result := &CheckoutResult{Request: req, Total: mergedTotal(req.Plats, items, open)}
	if hasOpen {
		result.Action = ActionUpdated
		result.Commande, err = r.orders.Update(ctx, open.Ref(), req)
	} else {
		result.Action = ActionCreated
		result.Commande, err = r.orders.Create(ctx, req)
	}
	if err != nil {
		r.log.Error("checkout_failed", userID, "order was not accepted, local cart kept", err)
		return nil, fmt.Errorf("place order: %w", err)
	}

	r.log.Info("checkout", userID, "order placed",
		slog.String("result", string(result.Action)),
		slog.Int("lines", len(req.Plats)),
		slog.Float64("total", result.Total))

	if err := r.storage.kv.Delete(ctx, Key(userID)); err != nil {
		r.log.Error("checkout_cart_not_cleared", userID, "order placed but local cart not cleared", err)
		result.Warning = "Commande envoyée, mais le panier local n'a pas pu être vidé"
	}
	if err := r.storage.kv.Delete(ctx, SyncedKey(userID)); err != nil {
		r.log.Warn("checkout_synced_not_cleared", userID, err.Error())
	}
	return result, nil
}

// syncedPlats returns the plats Sync imported from the open order ref.
func (r *Reconciler) syncedPlats(ctx context.Context, userID, ref string) (map[int]bool, error) {
	var rec syncedLines
	if err := store.GetJSON(ctx, r.storage.kv, SyncedKey(userID), &rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load synced lines: %w", err)
	}
	if rec.Ref != ref {
		return nil, nil
	}
	out := make(map[int]bool, len(rec.Plats))
	for _, id := range rec.Plats {
		out[id] = true
	}
	return out, nil
}

func mergedTotal(lines []models.PlatCommande, local []models.CartItem, open *models.Commande) float64 {
	prices := make(map[int]float64)
	if open != nil {
		for _, p := range open.Plats {
			prices[p.ID] = p.Prix.Float64()
		}
	}
	for _, it := range local {
		prices[it.PlatID] = it.Prix
	}
	var total float64
	for _, l := range lines {
		total += prices[l.ID] * float64(l.Quantite)
	}
	return total
}

// Sync imports into the local cart the lines of the remote open order that
// the local cart does not have yet. It returns how many lines were added.
// The plats of the order that end up in the cart are remembered, so a later
// checkout drops the ones removed from the cart in between.
func (r *Reconciler) Sync(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrNoUser
	}
	unlock := r.storage.lock(userID)
	defer unlock()

	items, err := r.storage.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	commandes, err := r.orders.ByClient(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("fetch orders: %w", err)
	}
	open, ok := FindOpen(commandes)
	if !ok {
		return 0, nil
	}

	present := make(map[int]bool, len(items))
	for _, it := range items {
		present[it.PlatID] = true
	}

	imported := 0
	rec := syncedLines{Ref: open.Ref()}
	for _, line := range open.Plats {
		if line.Quantite < 1 {
			continue
		}
		if present[line.ID] {
			rec.Plats = append(rec.Plats, line.ID)
			continue
		}
		item, ok := r.itemForLine(ctx, line)
		if !ok {
			r.log.Warn("sync_skip", userID, fmt.Sprintf("plat %d unknown, line not imported", line.ID))
			continue
		}
		item.AddedAt = r.storage.now()
		items = append(items, item)
		present[line.ID] = true
		rec.Plats = append(rec.Plats, line.ID)
		imported++
	}

	if imported > 0 {
		if err := r.storage.save(ctx, userID, items); err != nil {
			return 0, err
		}
	}
	if err := store.SetJSON(ctx, r.storage.kv, SyncedKey(userID), rec); err != nil {
		return imported, fmt.Errorf("save synced lines: %w", err)
	}
	return imported, nil
}

func (r *Reconciler) itemForLine(ctx context.Context, line models.CommandePlat) (models.CartItem, bool) {
	if r.plats != nil {
		if plat, err := r.plats.Find(ctx, line.ID); err == nil {
			item := ItemFromPlat(*plat, line.Quantite)
			item.ID = uuid.NewString()
			return item, true
		}
	}
	if line.Nom == "" {
		return models.CartItem{}, false
	}
	return models.CartItem{
		ID:       uuid.NewString(),
		PlatID:   line.ID,
		Nom:      line.Nom,
		Prix:     line.Prix.Float64(),
		Quantity: line.Quantite,
	}, true
}

// MergeGuest moves a guest cart into a user cart. Quantities of a plat found
// in both carts are added up.
func (r *Reconciler) MergeGuest(ctx context.Context, guestID, userID string) (MergeStatus, error) {
	if guestID == "" || userID == "" {
		return MergeNoGuestCart, ErrNoUser
	}
	if guestID == userID {
		return MergeNoGuestCart, nil
	}

	unlock := r.storage.lockPair(guestID, userID)
	defer unlock()

	if _, err := r.storage.kv.Get(ctx, Key(guestID)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MergeNoGuestCart, nil
		}
		return MergeNoGuestCart, fmt.Errorf("load guest cart: %w", err)
	}

	guestItems, err := r.storage.load(ctx, guestID)
	if err != nil {
		return MergeNoGuestCart, err
	}
	if len(guestItems) == 0 {
		if err := r.storage.kv.Delete(ctx, Key(guestID)); err != nil {
			return MergeGuestEmpty, fmt.Errorf("clear guest cart: %w", err)
		}
		return MergeGuestEmpty, nil
	}

	userItems, err := r.storage.load(ctx, userID)
	if err != nil {
		return MergeNoGuestCart, err
	}

	index := make(map[int]int, len(userItems))
	for i, it := range userItems {
		index[it.PlatID] = i
	}
	for _, g := range guestItems {
		if i, ok := index[g.PlatID]; ok {
			userItems[i].Quantity += max(1, g.Quantity)
			userItems[i].AddedAt = r.storage.now()
			continue
		}
		index[g.PlatID] = len(userItems)
		userItems = append(userItems, g)
	}

	if err := r.storage.save(ctx, userID, userItems); err != nil {
		return MergeNoGuestCart, err
	}
	if err := r.storage.kv.Delete(ctx, Key(guestID)); err != nil {
		return MergeSuccess, fmt.Errorf("clear guest cart: %w", err)
	}
	r.log.Info("guest_cart_merged", userID, fmt.Sprintf("merged %d guest lines", len(guestItems)))
	return MergeSuccess, nil
}
