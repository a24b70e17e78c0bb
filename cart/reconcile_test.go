package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/garghot/food-client/models"
	"github.com/garghot/food-client/orders"
	"github.com/garghot/food-client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	mu        sync.Mutex
	commandes []models.Commande
	listErr   error
	writeErr  error
	created   []models.CommandeRequest
	updated   map[string]models.CommandeRequest
}

func (f *fakeOrders) ByClient(context.Context, string) ([]models.Commande, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commandes, f.listErr
}

func (f *fakeOrders) Create(_ context.Context, req models.CommandeRequest) (*models.Commande, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.created = append(f.created, req)
	return &models.Commande{ID: 100 + len(f.created), IDClient: req.IDClient, Statut: req.Statut}, nil
}

func (f *fakeOrders) Update(_ context.Context, ref string, req models.CommandeRequest) (*models.Commande, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.updated == nil {
		f.updated = make(map[string]models.CommandeRequest)
	}
	f.updated[ref] = req
	return &models.Commande{CommandeID: 7, IDClient: req.IDClient, Statut: req.Statut}, nil
}

type fakePlats map[int]models.Plat

func (f fakePlats) Find(_ context.Context, id int) (*models.Plat, error) {
	p, ok := f[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &p, nil
}

func newTestReconciler(o *fakeOrders, plats fakePlats) (*Reconciler, *Storage) {
	s := newTestStorage()
	return NewReconciler(s, o, plats, nil), s
}

func TestMergeLines(t *testing.T) {
	remote := []models.PlatCommande{
		{ID: 3, Quantite: 1},
		{ID: 1, Quantite: 5},
		{ID: 3, Quantite: 2},
		{ID: 9, Quantite: 0},
	}
	local := []models.CartItem{
		{PlatID: 1, Quantity: 2},
		{PlatID: 4, Quantity: 0},
	}

	got := MergeLines(remote, local, nil)
	assert.Equal(t, []models.PlatCommande{
		{ID: 1, Quantite: 2},
		{ID: 3, Quantite: 3},
		{ID: 4, Quantite: 1},
	}, got)

	// plat 3 came into the cart through a sync and was removed since
	got = MergeLines(remote, local, map[int]bool{1: true, 3: true})
	assert.Equal(t, []models.PlatCommande{
		{ID: 1, Quantite: 2},
		{ID: 4, Quantite: 1},
	}, got)
}

func TestFindOpen(t *testing.T) {
	commandes := []models.Commande{
		{ID: 1, Statut: models.StatutPaid},
		{Statut: models.StatutOpen},
		{CommandeID: 5, Statut: models.StatutOpen},
	}
	open, ok := FindOpen(commandes)
	require.True(t, ok)
	assert.Equal(t, "5", open.Ref())

	_, ok = FindOpen(commandes[:2])
	assert.False(t, ok)
}

func TestCheckout_CreatesOrderWhenNoneOpen(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{commandes: []models.Commande{{ID: 1, Statut: models.StatutPaid}}}
	r, s := newTestReconciler(o, nil)

	_, err := s.AddPlat(ctx, "u1", models.Plat{ID: 2, Prix: 5000}, 2)
	require.NoError(t, err)

	res, err := r.Checkout(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, res.Action)
	assert.InDelta(t, 10000.0, res.Total, 1e-9)

	require.Len(t, o.created, 1)
	assert.Equal(t, models.CommandeRequest{
		Statut:   models.StatutOpen,
		IDClient: "u1",
		Plats:    []models.PlatCommande{{ID: 2, Quantite: 2}},
	}, o.created[0])

	items, err := s.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckout_UpdatesOpenOrder(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{commandes: []models.Commande{{
		CommandeID: 7,
		Statut:     models.StatutOpen,
		Plats: []models.CommandePlat{
			{ID: 1, Prix: 1000, Quantite: 4},
			{ID: 8, Prix: 3000, Quantite: 1},
		},
	}}}
	r, s := newTestReconciler(o, nil)

	_, err := s.AddPlat(ctx, "u1", models.Plat{ID: 1, Prix: 1000}, 2)
	require.NoError(t, err)
	_, err = s.AddPlat(ctx, "u1", models.Plat{ID: 5, Prix: 2000}, 1)
	require.NoError(t, err)

	res, err := r.Checkout(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, res.Action)
	assert.Empty(t, o.created)

	req, ok := o.updated["7"]
	require.True(t, ok)
	assert.Equal(t, []models.PlatCommande{
		{ID: 1, Quantite: 2},
		{ID: 5, Quantite: 1},
		{ID: 8, Quantite: 1},
	}, req.Plats)
	assert.InDelta(t, 2000.0+2000.0+3000.0, res.Total, 1e-9)
	require.NoError(t, orders.Validate(req))
}

func TestCheckout_EmptyCart(t *testing.T) {
	o := &fakeOrders{}
	r, _ := newTestReconciler(o, nil)

	_, err := r.Checkout(context.Background(), "u1")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, o.created)
}

func TestCheckout_RemoteFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{writeErr: errors.New("503")}
	r, s := newTestReconciler(o, nil)

	_, err := s.AddPlat(ctx, "u1", models.Plat{ID: 2}, 1)
	require.NoError(t, err)

	_, err = r.Checkout(ctx, "u1")
	require.Error(t, err)

	items, err := s.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckout_ListFailure(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{listErr: errors.New("timeout")}
	r, s := newTestReconciler(o, nil)

	_, err := s.AddPlat(ctx, "u1", models.Plat{ID: 2}, 1)
	require.NoError(t, err)

	_, err = r.Checkout(ctx, "u1")
	require.Error(t, err)
	assert.Empty(t, o.created)
}

func TestSync_ImportsMissingLines(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{commandes: []models.Commande{{
		ID:     3,
		Statut: models.StatutOpen,
		Plats: []models.CommandePlat{
			{ID: 1, Quantite: 4},
			{ID: 2, Quantite: 2},
			{ID: 6, Nom: "Nem", Prix: 1500, Quantite: 1},
			{ID: 9, Quantite: 1},
		},
	}}}
	plats := fakePlats{2: {ID: 2, Nom: "Soupe", Prix: 5000}}
	r, s := newTestReconciler(o, plats)

	_, err := s.AddPlat(ctx, "u1", models.Plat{ID: 1}, 1)
	require.NoError(t, err)

	n, err := r.Sync(ctx, "u1")
	require.NoError(t, err)
	// plat 9 is unknown and has no name, plat 1 is already in the cart
	assert.Equal(t, 2, n)

	items, err := s.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "Soupe", items[1].Nom)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, "Nem", items[2].Nom)
	assert.InDelta(t, 1500.0, items[2].Prix, 1e-9)

	n, err = r.Sync(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSync_NoOpenOrder(t *testing.T) {
	r, _ := newTestReconciler(&fakeOrders{}, nil)
	n, err := r.Sync(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMergeGuest(t *testing.T) {
	ctx := context.Background()

	t.Run("no guest cart", func(t *testing.T) {
		r, _ := newTestReconciler(&fakeOrders{}, nil)
		status, err := r.MergeGuest(ctx, "guest_1", "u1")
		require.NoError(t, err)
		assert.Equal(t, MergeNoGuestCart, status)
	})

	t.Run("empty guest cart", func(t *testing.T) {
		r, s := newTestReconciler(&fakeOrders{}, nil)
		require.NoError(t, s.Replace(ctx, "guest_1", []models.CartItem{}))

		status, err := r.MergeGuest(ctx, "guest_1", "u1")
		require.NoError(t, err)
		assert.Equal(t, MergeGuestEmpty, status)
	})

	t.Run("merged", func(t *testing.T) {
		r, s := newTestReconciler(&fakeOrders{}, nil)
		_, err := s.AddPlat(ctx, "guest_1", models.Plat{ID: 1}, 2)
		require.NoError(t, err)
		_, err = s.AddPlat(ctx, "guest_1", models.Plat{ID: 3}, 1)
		require.NoError(t, err)
		_, err = s.AddPlat(ctx, "u1", models.Plat{ID: 1}, 1)
		require.NoError(t, err)

		status, err := r.MergeGuest(ctx, "guest_1", "u1")
		require.NoError(t, err)
		assert.Equal(t, MergeSuccess, status)

		items, err := s.Items(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, 3, items[1].PlatID)

		guest, err := s.Items(ctx, "guest_1")
		require.NoError(t, err)
		assert.Empty(t, guest)
	})
}

func TestCheckout_DropsSyncedLineRemovedFromCart(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{commandes: []models.Commande{{
		ID:     5,
		Statut: models.StatutOpen,
		Plats:  []models.CommandePlat{{ID: 1, Prix: 1000, Quantite: 2}},
	}}}
	plats := fakePlats{
		1: {ID: 1, Nom: "Soupe", Prix: 1000},
		2: {ID: 2, Nom: "Romazava", Prix: 9000},
	}
	r, s := newTestReconciler(o, plats)

	n, err := r.Sync(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	items, err := s.Items(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, "u1", items[0].ID))
	_, err = s.AddPlat(ctx, "u1", plats[2], 1)
	require.NoError(t, err)

	res, err := r.Checkout(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, res.Action)
	assert.Equal(t, []models.PlatCommande{{ID: 2, Quantite: 1}}, o.updated["5"].Plats)
	assert.InDelta(t, 9000.0, res.Total, 1e-9)

	_, err = s.kv.Get(ctx, SyncedKey("u1"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckout_SyncedLinesOfAnotherOrderAreIgnored(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{commandes: []models.Commande{{
		ID:     5,
		Statut: models.StatutOpen,
		Plats:  []models.CommandePlat{{ID: 1, Nom: "Soupe", Quantite: 2}},
	}}}
	r, s := newTestReconciler(o, nil)

	_, err := r.Sync(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx, "u1"))

	// order 5 was paid in the meantime and order 6 is the open one now
	o.commandes = []models.Commande{{
		ID:     6,
		Statut: models.StatutOpen,
		Plats:  []models.CommandePlat{{ID: 1, Quantite: 1}},
	}}
	_, err = s.AddPlat(ctx, "u1", models.Plat{ID: 2}, 1)
	require.NoError(t, err)

	_, err = r.Checkout(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.PlatCommande{{ID: 1, Quantite: 1}, {ID: 2, Quantite: 1}}, o.updated["6"].Plats)
}

// failingDelete is a store whose Delete fails for one key.
type failingDelete struct {
	*store.Memory
	key string
}

func (f failingDelete) Delete(ctx context.Context, key string) error {
	if key == f.key {
		return errors.New("disk full")
	}
	return f.Memory.Delete(ctx, key)
}

func TestCheckout_PlacedOrderWithStuckCartIsSuccess(t *testing.T) {
	ctx := context.Background()
	o := &fakeOrders{}
	s := NewStorage(failingDelete{Memory: store.NewMemory(), key: Key("u1")})
	r := NewReconciler(s, o, nil, nil)

	_, err := s.AddPlat(ctx, "u1", models.Plat{ID: 2, Prix: 5000}, 1)
	require.NoError(t, err)

	res, err := r.Checkout(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, res.Action)
	assert.NotEmpty(t, res.Warning)
	assert.Len(t, o.created, 1)
}

func TestMergeGuest_SwappedIDsDoNotDeadlock(t *testing.T) {
	ctx := context.Background()
	r, s := newTestReconciler(&fakeOrders{}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			_, _ = s.AddPlat(ctx, "a", models.Plat{ID: 1}, 1)
			_, _ = s.AddPlat(ctx, "b", models.Plat{ID: 2}, 1)
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = r.MergeGuest(ctx, "a", "b")
			}()
			go func() {
				defer wg.Done()
				_, _ = r.MergeGuest(ctx, "b", "a")
			}()
			wg.Wait()
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("MergeGuest calls with swapped ids did not finish")
	}
}
