package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"store-service/model"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Add(ctx context.Context, o *model.Order) error {
	if o.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	return errors.WithStack(r.db.WithContext(ctx).Create(o).Error)
}

func (r *OrderRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Find(&orders).Error
	return orders, errors.WithStack(err)
}
