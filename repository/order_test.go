package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"store-service/model"
)

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	for _, o := range []*model.Order{
		{UserID: 1, ProductID: 10, Quantity: 1},
		{UserID: 2, ProductID: 10, Quantity: 2},
		{UserID: 1, ProductID: 11, Quantity: 3},
	} {
		require.NoError(t, repo.Add(ctx, o))
		require.NotZero(t, o.ID)
	}

	t.Run("list by owner keeps insertion order", func(t *testing.T) {
		orders, err := repo.ListByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		require.Equal(t, 1, orders[0].Quantity)
		require.Equal(t, 3, orders[1].Quantity)
	})

	t.Run("unknown owner", func(t *testing.T) {
		orders, err := repo.ListByOwner(ctx, 42)
		require.NoError(t, err)
		require.Empty(t, orders)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		err := repo.Add(ctx, &model.Order{UserID: 1, ProductID: 10, Quantity: 0})
		require.ErrorIs(t, err, model.ErrInvalidQuantity)
	})
}
