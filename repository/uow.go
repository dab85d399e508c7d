package repository

import (
	"context"
	"log"

	"gorm.io/gorm"

	"store-service/model"
	"store-service/service"
)

// UnitOfWork opens one gorm transaction per Execute. With a remote catalog
// the stock changes cannot join that transaction, so they are journaled and
// reversed when the transaction does not commit.
type UnitOfWork struct {
	db     *gorm.DB
	remote *APIProductRepository
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func NewRemoteCatalogUnitOfWork(db *gorm.DB, remote *APIProductRepository) *UnitOfWork {
	return &UnitOfWork{db: db, remote: remote}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(provider service.RepositoryProvider) error) error {
	var journal *stockJournal

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		provider := &repositoryProvider{orders: NewOrderRepository(tx)}
		if u.remote != nil {
			journal = &stockJournal{ProductRepository: u.remote}
			provider.products = journal
		} else {
			provider.products = NewProductRepository(tx)
		}
		return fn(provider)
	})

	if err != nil && journal != nil {
		journal.compensate(context.WithoutCancel(ctx))
	}
	return err
}

type repositoryProvider struct {
	products service.ProductRepository
	orders   service.OrderRepository
}

func (p *repositoryProvider) ProductRepository() service.ProductRepository {
	return p.products
}

func (p *repositoryProvider) OrderRepository() service.OrderRepository {
	return p.orders
}

type stockChange struct {
	productID uint
	delta     int
}

type stockJournal struct {
	service.ProductRepository
	changes []stockChange
}

func (j *stockJournal) AdjustStock(ctx context.Context, id uint, delta int) (*model.Product, error) {
	p, err := j.ProductRepository.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	j.changes = append(j.changes, stockChange{productID: id, delta: delta})
	return p, nil
}

func (j *stockJournal) compensate(ctx context.Context) {
	for i := len(j.changes) - 1; i >= 0; i-- {
		c := j.changes[i]
		if _, err := j.ProductRepository.AdjustStock(ctx, c.productID, -c.delta); err != nil {
			log.Printf("Failed to compensate stock of product %d by %d: %v", c.productID, -c.delta, err)
			continue
		}
		log.Printf("Compensated stock of product %d by %d", c.productID, -c.delta)
	}
	j.changes = nil
}
