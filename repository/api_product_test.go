package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"store-service/model"
)

func TestAPIProductRepository(t *testing.T) {
	ctx := context.Background()
	api, srv := newProductAPI(t,
		model.Product{ID: 1, Name: "Milk", Price: decimal.NewFromInt(10), Stock: 5},
		model.Product{ID: 2, Name: "Bread", Price: decimal.RequireFromString("2.5"), Stock: 1},
	)
	repo := NewAPIProductRepository(srv.URL+"/", time.Second)

	t.Run("find all", func(t *testing.T) {
		products, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		require.Equal(t, "Bread", products[1].Name)
		require.True(t, decimal.RequireFromString("2.5").Equal(products[1].Price))
	})

	t.Run("find", func(t *testing.T) {
		p, err := repo.Find(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "Milk", p.Name)
		require.Equal(t, 5, p.Stock)

		_, err = repo.Find(ctx, 9)
		require.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("adjust stock", func(t *testing.T) {
		p, err := repo.AdjustStock(ctx, 1, -2)
		require.NoError(t, err)
		require.Equal(t, 3, p.Stock)
		require.Equal(t, 3, api.stock(1))

		_, err = repo.AdjustStock(ctx, 2, -2)
		require.ErrorIs(t, err, model.ErrInsufficientStock)
		require.Equal(t, 1, api.stock(2))

		_, err = repo.AdjustStock(ctx, 9, 1)
		require.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("create is unsupported", func(t *testing.T) {
		require.Error(t, repo.Create(ctx, &model.Product{Name: "X"}))
	})
}

func TestAPIProductRepository_Shapes(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			_, _ = w.Write([]byte(`{"products":[{"id":3,"name":"Tea","price":"4.20","stock":7}]}`))
		case "/products/3":
			_, _ = w.Write([]byte(`{"name":"Tea","price":4.2,"stock":7}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	repo := NewAPIProductRepository(srv.URL, time.Second)

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, uint(3), products[0].ID)

	p, err := repo.Find(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, uint(3), p.ID)
	require.Equal(t, "4.2", p.Price.String())

	_, err = repo.Find(ctx, 4)
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrProductNotFound)
}
