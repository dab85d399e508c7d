package service

import (
	"context"
	"time"

	"store-service/kafka"
	"store-service/model"
)

type ProductRepository interface {
	Find(ctx context.Context, id uint) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	// AdjustStock applies delta and returns the updated product. It fails with
	// model.ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, id uint, delta int) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
}

type OrderRepository interface {
	Add(ctx context.Context, o *model.Order) error
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	Find(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
}

type RepositoryProvider interface {
	ProductRepository() ProductRepository
	OrderRepository() OrderRepository
}

// UnitOfWork runs fn in a single transaction. Any error returned by fn
// rolls back everything done through the provider.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(provider RepositoryProvider) error) error
}

type Cache interface {
	// Get returns cache.ErrMiss when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type EventPublisher interface {
	PublishOrderCreated(event kafka.OrderCreatedEvent)
	PublishStockUpdated(event kafka.StockUpdatedEvent)
}

type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(kafka.OrderCreatedEvent) {}

func (NoopPublisher) PublishStockUpdated(kafka.StockUpdatedEvent) {}
