package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"store-service/config"
	"store-service/model"
	"store-service/service"
)

var errBoom = errors.New("boom")

func reserve(productID uint, qty int, fail bool) func(service.RepositoryProvider) error {
	return func(provider service.RepositoryProvider) error {
		if _, err := provider.ProductRepository().AdjustStock(context.Background(), productID, -qty); err != nil {
			return err
		}
		err := provider.OrderRepository().Add(context.Background(), &model.Order{UserID: 1, ProductID: productID, Quantity: qty})
		if err != nil {
			return err
		}
		if fail {
			return errBoom
		}
		return nil
	}
}

func TestUnitOfWork_SQL(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	milk := seedProduct(t, db, "Milk", "10", 5)

	uow := NewUnitOfWork(db)
	products := NewProductRepository(db)
	orders := NewOrderRepository(db)

	t.Run("commit", func(t *testing.T) {
		require.NoError(t, uow.Execute(ctx, reserve(milk.ID, 2, false)))

		p, err := products.Find(ctx, milk.ID)
		require.NoError(t, err)
		require.Equal(t, 3, p.Stock)

		list, err := orders.ListByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("rollback", func(t *testing.T) {
		require.ErrorIs(t, uow.Execute(ctx, reserve(milk.ID, 2, true)), errBoom)

		p, err := products.Find(ctx, milk.ID)
		require.NoError(t, err)
		require.Equal(t, 3, p.Stock)

		list, err := orders.ListByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}

func TestUnitOfWork_RemoteCatalogCompensates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	api, srv := newProductAPI(t, model.Product{ID: 1, Name: "Milk", Price: decimal.NewFromInt(10), Stock: 5})

	uow := NewRemoteCatalogUnitOfWork(db, NewAPIProductRepository(srv.URL, time.Second))

	require.NoError(t, uow.Execute(ctx, reserve(1, 2, false)))
	require.Equal(t, 3, api.stock(1))

	require.ErrorIs(t, uow.Execute(ctx, reserve(1, 2, true)), errBoom)
	require.Equal(t, 3, api.stock(1))

	orders, err := NewOrderRepository(db).ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestNewBackend(t *testing.T) {
	db := newTestDB(t)

	b := NewBackend(db, &config.Config{})
	require.IsType(t, &ProductRepository{}, b.Products)

	b = NewBackend(db, &config.Config{UseAPIDatabase: true, APIEndpoint: "http://catalog", APITimeout: time.Second})
	require.IsType(t, &APIProductRepository{}, b.Products)
	require.NotNil(t, b.UnitOfWork)
}
