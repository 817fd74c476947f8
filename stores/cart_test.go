package stores

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

type stubSession struct{ authed bool }

func (s stubSession) IsAuthenticated() bool { return s.authed }

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second)
}

func TestCartFetchUnauthenticated(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	cart := NewCart(client, stubSession{authed: false}, notify.New())

	require.NoError(t, cart.Fetch(context.Background()))
	assert.Zero(t, requests, "no request for an unauthenticated session")
	assert.True(t, cart.Initialized())
	assert.True(t, cart.IsEmpty())
}

func TestCartFetchReplacesState(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart", r.URL.Path)
		w.Write([]byte(`{"data":{"data":[
			{"id":1,"product":{"id":5,"name":"Kopi","price":"50000","stock":10},"quantity":2,"total_price":"100000"}
		],"total":"100000","item_count":2},"message":"ok"}`))
	}))
	cart := NewCart(client, stubSession{authed: true}, notify.New())

	require.NoError(t, cart.Fetch(context.Background()))
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 2, cart.Count())
	assert.Equal(t, 100000.0, cart.Total())
	assert.Equal(t, "Rp 100.000", cart.FormattedTotal())
}

func TestCartAddRequiresAuth(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	cart := NewCart(client, stubSession{authed: false}, notify.New())

	err := cart.Add(context.Background(), 5, 1)
	assert.ErrorIs(t, err, api.ErrAuthRequired)
}

func TestCartAddMergesSameProduct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[
			{"id":1,"product":{"id":5,"name":"Kopi","price":"50000","stock":10},"quantity":1,"total_price":"50000"}
		],"total":"50000","item_count":1}}`))
	})
	mux.HandleFunc("POST /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":1,"product":{"id":5,"name":"Kopi","price":"50000","stock":10},"quantity":3,"total_price":"150000"}}`))
	})
	cart := NewCart(newTestClient(t, mux), stubSession{authed: true}, notify.New())
	require.NoError(t, cart.Fetch(context.Background()))

	require.NoError(t, cart.Add(context.Background(), 5, 2))

	items := cart.Items()
	require.Len(t, items, 1, "same product merges into one line")
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, cart.Count())
	assert.Equal(t, 150000.0, cart.Total())
}

func TestCartAddAppendsNewProduct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[
			{"id":1,"product":{"id":5,"name":"Kopi","price":"50000","stock":10},"quantity":1,"total_price":"50000"}
		],"total":"50000","item_count":1}}`))
	})
	mux.HandleFunc("POST /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":2,"product":{"id":9,"name":"Teh","price":"20000","stock":4},"quantity":1,"total_price":"20000"}}`))
	})
	cart := NewCart(newTestClient(t, mux), stubSession{authed: true}, notify.New())
	require.NoError(t, cart.Fetch(context.Background()))

	require.NoError(t, cart.Add(context.Background(), 9, 1))
	assert.Len(t, cart.Items(), 2)
	assert.Equal(t, 2, cart.Count())
	require.NotNil(t, cart.ItemByProduct(9))
	assert.Nil(t, cart.ItemByProduct(99))
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	var method, path string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[
			{"id":7,"product":{"id":5,"name":"Kopi","price":"50000","stock":10},"quantity":1,"total_price":"50000"}
		],"total":"50000","item_count":1}}`))
	})
	mux.HandleFunc("/cart/", func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.Write([]byte(`{"message":"removed"}`))
	})
	cart := NewCart(newTestClient(t, mux), stubSession{authed: true}, notify.New())
	require.NoError(t, cart.Fetch(context.Background()))

	require.NoError(t, cart.UpdateQuantity(context.Background(), 7, 0))
	assert.Equal(t, http.MethodDelete, method, "quantity zero deletes the line")
	assert.Equal(t, "/cart/7", path)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Count())
}

func TestCartMutationFailureResyncsFromServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		// The authoritative state the resync should restore.
		w.Write([]byte(`{"data":{"data":[
			{"id":1,"product":{"id":5,"name":"Kopi","price":"50000","stock":10},"quantity":1,"total_price":"50000"}
		],"total":"50000","item_count":1}}`))
	})
	mux.HandleFunc("POST /cart", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})
	cart := NewCart(newTestClient(t, mux), stubSession{authed: true}, notify.New())
	require.NoError(t, cart.Fetch(context.Background()))

	err := cart.Add(context.Background(), 9, 1)
	require.Error(t, err)

	items := cart.Items()
	require.Len(t, items, 1, "local state matches the server after resync")
	assert.Equal(t, 5, items[0].Product.ID)
	assert.Equal(t, 1, cart.Count())
	assert.Equal(t, "Server error. Please try again later.", cart.Err(),
		"mutation error survives the recovery pull")
}

func TestCartRemoveFailureKeepsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[
			{"id":7,"product":{"id":5,"name":"Kopi","price":"50000","stock":10},"quantity":1,"total_price":"50000"}
		],"total":"50000","item_count":1}}`))
	})
	mux.HandleFunc("DELETE /cart/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	cart := NewCart(newTestClient(t, mux), stubSession{authed: true}, notify.New())
	require.NoError(t, cart.Fetch(context.Background()))

	err := cart.Remove(context.Background(), 7)
	require.Error(t, err)
	assert.Len(t, cart.Items(), 1)
	assert.NotEmpty(t, cart.Err())
}

func TestCartValidateStock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart/validate-stock", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"product_id":5,"name":"Kopi","available_stock":1,"cart_quantity":3},
			{"product_id":9,"name":"Teh","available_stock":4,"cart_quantity":2}
		]}`))
	})
	cart := NewCart(newTestClient(t, mux), stubSession{authed: true}, notify.New())

	report, err := cart.ValidateStock(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.True(t, report[0].Oversold())
	assert.False(t, report[1].Oversold())
	assert.True(t, cart.HasStockIssues())

	cart.ResetStockValidation()
	assert.False(t, cart.HasStockIssues())
	assert.Empty(t, cart.StockReport())
}

func TestCartValidateStockAllAvailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart/validate-stock", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"product_id":5,"name":"Kopi","available_stock":3,"cart_quantity":3}
		]}`))
	})
	cart := NewCart(newTestClient(t, mux), stubSession{authed: true}, notify.New())

	_, err := cart.ValidateStock(context.Background())
	require.NoError(t, err)
	assert.False(t, cart.HasStockIssues(), "exact stock match is not an issue")
}

func TestCartClear(t *testing.T) {
	var deleted bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[
			{"id":1,"product":{"id":5,"name":"Kopi","price":"50000","stock":10},"quantity":2,"total_price":"100000"}
		],"total":"100000","item_count":2}}`))
	})
	mux.HandleFunc("DELETE /cart", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.Write([]byte(`{"message":"cleared"}`))
	})
	cart := NewCart(newTestClient(t, mux), stubSession{authed: true}, notify.New())
	require.NoError(t, cart.Fetch(context.Background()))

	require.NoError(t, cart.Clear(context.Background()))
	assert.True(t, deleted)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Total())
}
