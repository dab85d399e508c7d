package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"store-service/cache"
	"store-service/kafka"
	"store-service/model"
)

type InventoryReport struct {
	TotalProducts int             `json:"total_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockItems []string        `json:"low_stock_items"`
	Products      []model.Product `json:"products"`
}

type Catalog struct {
	products  ProductRepository
	uow       UnitOfWork
	cache     Cache
	publisher EventPublisher
	cacheTTL  time.Duration
}

func NewCatalog(products ProductRepository, uow UnitOfWork, c Cache, publisher EventPublisher, cacheTTL time.Duration) *Catalog {
	return &Catalog{
		products:  products,
		uow:       uow,
		cache:     c,
		publisher: publisher,
		cacheTTL:  cacheTTL,
	}
}

func (c *Catalog) Get(ctx context.Context, id uint) (*model.Product, error) {
	return c.products.Find(ctx, id)
}

// List serves the product listing from cache when possible. Cache failures
// only cost a trip to the repository.
func (c *Catalog) List(ctx context.Context) ([]model.Product, error) {
	if cached, err := c.cache.Get(ctx, cache.KeyProducts); err == nil {
		var products []model.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products, nil
		}
		log.Printf("Discarding undecodable %s entry", cache.KeyProducts)
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Product cache read failed: %v", err)
	}

	products, err := c.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(products); err == nil {
		if err := c.cache.Set(ctx, cache.KeyProducts, b, c.cacheTTL); err != nil {
			log.Printf("Product cache write failed: %v", err)
		}
	}
	return products, nil
}

// AdjustStock applies delta to one product. A negative result is refused
// with model.ErrInsufficientStock.
func (c *Catalog) AdjustStock(ctx context.Context, id uint, delta int) (*model.Product, error) {
	var product *model.Product
	err := c.uow.Execute(ctx, func(provider RepositoryProvider) error {
		var err error
		product, err = provider.ProductRepository().AdjustStock(ctx, id, delta)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.stockChanged(ctx, product, delta)
	return product, nil
}

func (c *Catalog) InvalidateProducts(ctx context.Context) error {
	return c.cache.Delete(ctx, cache.KeyProducts)
}

// InventoryReport always reads the repository directly.
func (c *Catalog) InventoryReport(ctx context.Context, threshold int) (*InventoryReport, error) {
	products, err := c.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &InventoryReport{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
		LowStockItems: make([]string, 0),
		Products:      make([]model.Product, 0, len(products)),
	}
	for _, p := range products {
		report.TotalValue = report.TotalValue.Add(p.LineTotal(p.Stock))
		if p.Stock < threshold {
			report.LowStockItems = append(report.LowStockItems, p.Name)
		}
		report.Products = append(report.Products, p)
	}
	return report, nil
}

func (c *Catalog) stockChanged(ctx context.Context, p *model.Product, delta int) {
	if err := c.InvalidateProducts(ctx); err != nil {
		log.Printf("Failed to invalidate product cache: %v", err)
	}
	c.publisher.PublishStockUpdated(kafka.StockUpdatedEvent{
		ProductID: p.ID,
		Delta:     delta,
		Stock:     p.Stock,
	})
}
