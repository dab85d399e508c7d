package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"store-service/model"
)

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "sqlite:///store.db", want: "store.db"},
		{url: "sqlite:////var/lib/store.db", want: "/var/lib/store.db"},
		{url: "sqlite:///", want: ":memory:"},
		{url: "sqlite:///:memory:", want: ":memory:"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			require.Equal(t, tt.want, SQLitePath(tt.url))
		})
	}
}

func TestOpen(t *testing.T) {
	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := Open("mysql://localhost/store")
		require.Error(t, err)
	})

	t.Run("in-memory sqlite migrates", func(t *testing.T) {
		db, err := Open("sqlite:///:memory:")
		require.NoError(t, err)
		defer Close(db)

		require.NoError(t, Migrate(db))

		p := model.Product{Name: "Milk", Price: decimal.RequireFromString("1.50"), Stock: 3}
		require.NoError(t, db.Create(&p).Error)

		var got model.Product
		require.NoError(t, db.First(&got, p.ID).Error)
		require.True(t, p.Price.Equal(got.Price))
		require.Equal(t, 3, got.Stock)
	})
}
