package repository

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"store-service/database"
	"store-service/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite:///:memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *model.Product {
	t.Helper()

	p := &model.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, db.Create(p).Error)
	return p
}

// productAPI is an in-memory stand-in for the remote product API.
type productAPI struct {
	mu       sync.Mutex
	products map[uint]model.Product
	puts     int
}

func newProductAPI(t *testing.T, products ...model.Product) (*productAPI, *httptest.Server) {
	t.Helper()

	api := &productAPI{products: make(map[uint]model.Product)}
	for _, p := range products {
		api.products[p.ID] = p
	}

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *productAPI) stock(id uint) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.products[id].Stock
}

func (a *productAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/products":
		list := make([]model.Product, 0, len(a.products))
		for id := uint(1); len(list) < len(a.products); id++ {
			if p, ok := a.products[id]; ok {
				list = append(list, p)
			}
		}
		_ = json.NewEncoder(w).Encode(list)

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/products/"):
		var id uint
		fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/products/"), "%d", &id)
		p, ok := a.products[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]model.Product{"product": p})

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/product/"):
		var id uint
		fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/product/"), "%d", &id)
		if _, ok := a.products[id]; !ok {
			http.NotFound(w, r)
			return
		}
		var in model.Product
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		in.ID = id
		a.products[id] = in
		a.puts++
		w.WriteHeader(http.StatusOK)

	default:
		http.Error(w, "unexpected request", http.StatusTeapot)
	}
}
