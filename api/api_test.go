package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/garghot/food-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Body   string
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	hits     map[string]*int32
	routes   map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{hits: map[string]*int32{}, routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		key := r.Method + " " + r.URL.Path

		f.mu.Lock()
		f.requests = append(f.requests, recorded{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		if f.hits[key] == nil {
			f.hits[key] = new(int32)
		}
		atomic.AddInt32(f.hits[key], 1)
		h := f.routes[key]
		f.mu.Unlock()

		if h == nil {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) handle(key string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[key] = h
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hits[key] == nil {
		return 0
	}
	return int(atomic.LoadInt32(f.hits[key]))
}

func (f *fakeAPI) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func jsonBody(v interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

func failWith(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream failure", code)
	}
}

//
// -----------------------------------------------------------------------------
// Plats
// -----------------------------------------------------------------------------

func TestPlats_ListIsCached(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /plat", jsonBody([]map[string]interface{}{
		{"id": 1, "nom": "Mi sao", "prix": "7000", "image": "a.png", "ingredients": []interface{}{}},
		{"id": 2, "nom": "Soupe", "prix": map[string]interface{}{"montant": 5000}},
	}))

	svc := New(Options{BaseURL: srv.URL})
	plats, err := svc.Plats.List(context.Background())
	require.NoError(t, err)
	require.Len(t, plats, 2)
	assert.Equal(t, 7000.0, plats[0].Prix.Float64())
	assert.Equal(t, 5000.0, plats[1].Prix.Float64())

	_, err = svc.Plats.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.count("GET /plat"))
}

func TestPlats_StaleCacheOnFailure(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /plat", jsonBody([]map[string]interface{}{{"id": 1, "nom": "Mi sao"}}))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewPlatService(NewClient(srv.URL, time.Second, nil), time.Minute)
	svc.cache.WithClock(func() time.Time { return now })

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	f.handle("GET /plat", failWith(http.StatusBadGateway))
	now = now.Add(2 * time.Minute)

	plats, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, plats, 1)
	assert.Equal(t, 2, f.count("GET /plat"))
}

func TestPlats_FailureWithoutCache(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /plat", failWith(http.StatusInternalServerError))

	svc := New(Options{BaseURL: srv.URL})
	_, err := svc.Plats.List(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "/plat", se.Path)
}

func TestPlats_MutationsInvalidateList(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /plat", jsonBody([]interface{}{}))
	f.handle("POST /plat", jsonBody(map[string]interface{}{"id": 5, "nom": "Nem"}))
	f.handle("DELETE /plat/5", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	svc := New(Options{BaseURL: srv.URL})
	_, err := svc.Plats.List(context.Background())
	require.NoError(t, err)

	created, err := svc.Plats.Create(context.Background(), models.Plat{Nom: "Nem"})
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)

	_, err = svc.Plats.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("GET /plat"))

	require.NoError(t, svc.Plats.Delete(context.Background(), 5))
	_, err = svc.Plats.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, f.count("GET /plat"))
}

func TestPlats_GetAndFind(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /plat", jsonBody([]map[string]interface{}{{"id": 1, "nom": "Mi sao"}}))
	f.handle("GET /plat/9", jsonBody(map[string]interface{}{"id": 9, "nom": "Romazava"}))

	svc := New(Options{BaseURL: srv.URL})

	p, err := svc.Plats.Find(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mi sao", p.Nom)
	assert.Equal(t, 0, f.count("GET /plat/1"))

	p, err = svc.Plats.Find(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Romazava", p.Nom)

	_, err = svc.Plats.Get(context.Background(), 404)
	assert.True(t, IsNotFound(err))

	_, err = svc.Plats.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestPlats_UnknownPriceKeepsMenu(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /plat", jsonBody([]map[string]interface{}{
		{"id": 1, "prix": "12.5"},
		{"id": 2, "prix": "N/A"},
	}))

	svc := New(Options{BaseURL: srv.URL})
	plats, err := svc.Plats.List(context.Background())
	require.NoError(t, err)
	require.Len(t, plats, 2)
	assert.Equal(t, 12.5, plats[0].Prix.Float64())
	assert.Zero(t, plats[1].Prix.Float64())
}

func TestPlats_NonArrayListIsEmpty(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /plat", jsonBody(map[string]string{"message": "maintenance"}))

	svc := New(Options{BaseURL: srv.URL})
	plats, err := svc.Plats.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plats)
}

//
// -----------------------------------------------------------------------------
// Categories, ingredients, prix, ventes
// -----------------------------------------------------------------------------

func TestCategories(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /categorie", jsonBody([]map[string]interface{}{{"id": 1, "nom": "Entrées"}}))
	f.handle("GET /categorie/1", jsonBody(map[string]interface{}{"id": 1, "nom": "Entrées"}))

	svc := New(Options{BaseURL: srv.URL})
	cats, err := svc.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)

	cat, err := svc.Categories.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Entrées", cat.Nom)

	_, err = svc.Categories.Get(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestPrix_UpdateUsesEditRoute(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /prix", jsonBody([]interface{}{}))
	f.handle("PUT /prix/edit/3", jsonBody(map[string]interface{}{"id": 3, "montant": 9.5}))

	svc := New(Options{BaseURL: srv.URL})
	_, err := svc.Prix.List(context.Background())
	require.NoError(t, err)

	updated, err := svc.Prix.Update(context.Background(), 3, models.Prix{Montant: 9.5})
	require.NoError(t, err)
	assert.Equal(t, 9.5, updated.Montant)
	assert.Equal(t, "PUT", f.last().Method)

	_, err = svc.Prix.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("GET /prix"))
}

func TestIngredients_CreateInvalidates(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /ingredient", jsonBody([]map[string]interface{}{{"id": 1, "nom": "Riz", "quantite": 2, "unite": "kg"}}))
	f.handle("POST /ingredient", jsonBody(map[string]interface{}{"id": 2, "nom": "Sel"}))

	svc := New(Options{BaseURL: srv.URL})
	ings, err := svc.Ingredients.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kg", ings[0].Unite)

	_, err = svc.Ingredients.Create(context.Background(), models.Ingredient{Nom: "Sel"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":0,"nom":"Sel","quantite":0,"unite":""}`, f.last().Body)

	_, err = svc.Ingredients.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("GET /ingredient"))
}

func TestVentes(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /vente/", jsonBody([]map[string]interface{}{{"id": 1, "montant": 10, "id_plat": 2, "quantite": 1}}))
	f.handle("GET /vente/plat/2", jsonBody([]map[string]interface{}{{"id": 1, "id_plat": 2}}))
	f.handle("GET /vente/date/2024-06-01", jsonBody([]interface{}{}))

	svc := New(Options{BaseURL: srv.URL})

	all, err := svc.Ventes.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	byPlat, err := svc.Ventes.ByPlat(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, byPlat[0].IDPlat)

	byDate, err := svc.Ventes.ByDate(context.Background(), "2024-06-01")
	require.NoError(t, err)
	assert.Empty(t, byDate)
}

//
// -----------------------------------------------------------------------------
// Commandes
// -----------------------------------------------------------------------------

func TestCommandes_CreateAndUpdate(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("POST /commandes/", jsonBody(map[string]interface{}{"id": 11, "statut": 0, "id_client": "u1"}))
	f.handle("PUT /commandes/11", jsonBody(map[string]interface{}{"id": 11, "statut": 0, "id_client": "u1"}))

	svc := New(Options{BaseURL: srv.URL})
	req := models.CommandeRequest{IDClient: "u1", Plats: []models.PlatCommande{{ID: 1, Quantite: 2}}}

	created, err := svc.Commandes.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "11", created.Ref())
	assert.JSONEq(t, `{"statut":0,"id_client":"u1","plats":[{"id":1,"quantite":2}]}`, f.last().Body)

	_, err = svc.Commandes.Update(context.Background(), "11", req)
	require.NoError(t, err)
	assert.Equal(t, "/commandes/11", f.last().Path)
}

func TestCommandes_ByClient(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /commandes/utilisateur/u1", jsonBody([]map[string]interface{}{
		{"commande_id": 3, "statut": 1, "id_client": "u1", "createdAt": "2024-02-01T09:00:00Z"},
	}))

	svc := New(Options{BaseURL: srv.URL})
	list, err := svc.Commandes.ByClient(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "3", list[0].Ref())

	// unknown client: 404 from the API means no orders yet
	list, err = svc.Commandes.ByClient(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)

	f.handle("GET /commandes/utilisateur/u2", failWith(http.StatusInternalServerError))
	_, err = svc.Commandes.ByClient(context.Background(), "u2")
	require.Error(t, err)
}

func TestCommandes_Ping(t *testing.T) {
	t.Parallel()

	f, srv := newFakeAPI(t)
	f.handle("GET /commandes/", jsonBody([]interface{}{}))

	svc := New(Options{BaseURL: srv.URL})
	require.NoError(t, svc.Commandes.Ping(context.Background()))
}

func TestMinDuration(t *testing.T) {
	assert.Equal(t, 10*time.Second, minDuration(0, 10*time.Second))
	assert.Equal(t, 10*time.Second, minDuration(30*time.Second, 10*time.Second))
	assert.Equal(t, 3*time.Second, minDuration(3*time.Second, 10*time.Second))
}
