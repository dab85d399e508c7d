package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"store-service/model"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Find(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return products, nil
}

// AdjustStock is a single guarded UPDATE, so concurrent callers can never
// drive stock below zero.
func (r *ProductRepository) AdjustStock(ctx context.Context, id uint, delta int) (*model.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "failed to adjust stock of product %d", id)
	}

	if res.RowsAffected == 0 {
		if _, err := r.Find(ctx, id); err != nil {
			return nil, err
		}
		return nil, model.ErrInsufficientStock
	}

	return r.Find(ctx, id)
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	if p.Stock < 0 || p.Price.IsNegative() {
		return model.ErrValidation
	}
	return errors.WithStack(r.db.WithContext(ctx).Create(p).Error)
}
