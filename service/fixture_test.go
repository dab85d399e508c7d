package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"store-service/cache"
	"store-service/config"
	"store-service/database"
	"store-service/kafka"
	"store-service/model"
	"store-service/repository"
	"store-service/service"
)

var _ service.EventPublisher = &recordingPublisher{}

type recordingPublisher struct {
	mu     sync.Mutex
	orders []kafka.OrderCreatedEvent
	stock  []kafka.StockUpdatedEvent
}

func (p *recordingPublisher) PublishOrderCreated(e kafka.OrderCreatedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, e)
}

func (p *recordingPublisher) PublishStockUpdated(e kafka.StockUpdatedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stock = append(p.stock, e)
}

type fixture struct {
	db      *gorm.DB
	cache   *cache.Memory
	events  *recordingPublisher
	catalog *service.Catalog
	orders  *service.OrderService
	users   *service.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Open("sqlite:///:memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	backend := repository.NewBackend(db, &config.Config{})
	f := &fixture{
		db:     db,
		cache:  cache.NewMemory(),
		events: &recordingPublisher{},
	}
	f.catalog = service.NewCatalog(backend.Products, backend.UnitOfWork, f.cache, f.events, time.Minute)
	f.orders = service.NewOrderService(backend.UnitOfWork, backend.Orders, f.catalog, f.events)
	f.users = service.NewUserService(backend.Users)
	return f
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *model.Product {
	t.Helper()

	p := &model.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()

	var p model.Product
	require.NoError(t, f.db.First(&p, id).Error)
	return p.Stock
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()

	var n int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&n).Error)
	return n
}
