package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybermarket/server/internal/auth"
	"github.com/cybermarket/server/internal/blob"
	"github.com/cybermarket/server/internal/catalog"
	"github.com/cybermarket/server/internal/concurrency"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/loadout"
	"github.com/cybermarket/server/internal/profile"
	"github.com/cybermarket/server/internal/store"
	"github.com/cybermarket/server/internal/testing/fakes"
)

type stubPool struct{}

func (stubPool) Ping(ctx context.Context) error { return nil }
func (stubPool) Close()                         {}

// newTestServer wires real services over in-memory fakes
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	records := fakes.NewUserRecords()
	accounts := fakes.NewAccounts()
	locks := concurrency.NewLockManager()

	catalogSvc := catalog.NewService(fakes.NewCatalog())
	require.NoError(t, catalogSvc.EnsureSeeded(context.Background()))

	tokens := auth.NewTokenManager("server-test-secret", "cybermarket", time.Hour)
	isAdmin := func(username string) bool { return username == "admin" }

	blobs, err := blob.NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	srv := New(0, stubPool{}, Services{
		Auth:    auth.NewService(accounts, records, tokens, isAdmin, time.Hour),
		Catalog: catalogSvc,
		Store:   store.NewService(records, catalogSvc, locks),
		Loadout: loadout.NewService(records, locks),
		Profile: profile.NewService(records, locks),
		Blobs:   blobs,
	})

	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postAs(t *testing.T, ts *httptest.Server, token, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func signup(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()
	resp := postAs(t, ts, "", "/api/v1/auth/signup", map[string]string{
		"username": username,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &session)
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestPublicRoutes(t *testing.T) {
	ts := newTestServer(t)

	t.Run("healthz", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("catalog list includes seeded products", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/api/v1/catalog/")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listing struct {
			Items []domain.Item `json:"items"`
			Count int           `json:"count"`
		}
		decodeBody(t, resp, &listing)
		assert.Equal(t, 8, listing.Count)
	})

	t.Run("catalog filters by category", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/api/v1/catalog/?category=weapon")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listing struct {
			Items []domain.Item `json:"items"`
		}
		decodeBody(t, resp, &listing)
		require.NotEmpty(t, listing.Items)
		for _, item := range listing.Items {
			assert.Equal(t, domain.CategoryWeapon, item.Category)
		}
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	paths := []string{"/api/v1/cart/", "/api/v1/loadout/", "/api/v1/profile/", "/api/v1/transactions"}
	for _, path := range paths {
		resp, err := ts.Client().Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestShoppingFlow(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts, "vex")

	// Find a purchasable item from the public catalog
	resp, err := ts.Client().Get(ts.URL + "/api/v1/catalog/?sort=price-asc")
	require.NoError(t, err)
	var listing struct {
		Items []domain.Item `json:"items"`
	}
	decodeBody(t, resp, &listing)
	require.NotEmpty(t, listing.Items)
	cheapest := listing.Items[0]

	// Add to cart
	resp = postAs(t, ts, token, "/api/v1/cart/", map[string]string{"item_id": cheapest.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart struct {
		Cart  []domain.Item `json:"cart"`
		Total int           `json:"total"`
	}
	decodeBody(t, resp, &cart)
	assert.Len(t, cart.Cart, 1)
	assert.Equal(t, cheapest.Price, cart.Total)

	// Checkout succeeds against the starting balance
	resp = postAs(t, ts, token, "/api/v1/cart/checkout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result store.CheckoutResult
	decodeBody(t, resp, &result)
	assert.True(t, result.Success)
	assert.Equal(t, domain.MsgCheckoutComplete, result.Message)
	assert.Equal(t, domain.StartingCredits-cheapest.Price, result.Balance)

	// Ledger has the purchase
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ledger struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	decodeBody(t, resp, &ledger)
	require.Len(t, ledger.Transactions, 1)
	assert.Equal(t, cheapest.Price, ledger.Transactions[0].Total)

	// Equip the purchased item
	resp = postAs(t, ts, token, "/api/v1/loadout/equip", map[string]string{"item_id": cheapest.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t)

	adminToken := signup(t, ts, "admin")
	userToken := signup(t, ts, "vex")

	product := map[string]interface{}{
		"name":     "TEST BLADE",
		"category": "weapon",
		"price":    1000,
		"rarity":   "common",
	}

	t.Run("non-admin forbidden", func(t *testing.T) {
		resp := postAs(t, ts, userToken, "/api/v1/admin/products/", product)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin can create products", func(t *testing.T) {
		resp := postAs(t, ts, adminToken, "/api/v1/admin/products/", product)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}
