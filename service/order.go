package service

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"store-service/kafka"
	"store-service/model"
)

type OrderLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type ProcessedOrder struct {
	OrderID    uint            `json:"order_id"`
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	OrderTotal decimal.Decimal `json:"order_total"`
}

type BulkResult struct {
	ProcessedOrders []ProcessedOrder
	TotalRevenue    decimal.Decimal
}

type OrderView struct {
	OrderID     uint   `json:"order_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type OrderService struct {
	uow       UnitOfWork
	orders    OrderRepository
	catalog   *Catalog
	publisher EventPublisher
}

func NewOrderService(uow UnitOfWork, orders OrderRepository, catalog *Catalog, publisher EventPublisher) *OrderService {
	return &OrderService{
		uow:       uow,
		orders:    orders,
		catalog:   catalog,
		publisher: publisher,
	}
}

// PlaceOrder reserves stock and records the order in one unit of work.
func (s *OrderService) PlaceOrder(ctx context.Context, ownerID uint, line OrderLine) (*ProcessedOrder, error) {
	if line.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	var (
		order   model.Order
		product *model.Product
	)
	err := s.uow.Execute(ctx, func(provider RepositoryProvider) error {
		var err error
		product, err = provider.ProductRepository().AdjustStock(ctx, line.ProductID, -line.Quantity)
		if err != nil {
			return err
		}

		order = model.Order{UserID: ownerID, ProductID: product.ID, Quantity: line.Quantity}
		return provider.OrderRepository().Add(ctx, &order)
	})
	if err != nil {
		return nil, err
	}

	processed := &ProcessedOrder{
		OrderID:    order.ID,
		ProductID:  product.ID,
		Quantity:   line.Quantity,
		OrderTotal: product.LineTotal(line.Quantity),
	}

	s.catalog.stockChanged(ctx, product, -line.Quantity)
	s.publisher.PublishOrderCreated(kafka.OrderCreatedEvent{
		OrderID:    order.ID,
		UserID:     ownerID,
		ProductID:  product.ID,
		Quantity:   line.Quantity,
		OrderTotal: processed.OrderTotal,
		CreatedAt:  order.CreatedAt,
	})

	return processed, nil
}

// ProcessBulkOrders places each line on its own, in input order. Lines for
// unknown products, with bad quantities or without enough stock are skipped;
// the rest of the batch still goes through.
func (s *OrderService) ProcessBulkOrders(ctx context.Context, ownerID uint, lines []OrderLine) (*BulkResult, error) {
	result := &BulkResult{
		ProcessedOrders: make([]ProcessedOrder, 0, len(lines)),
		TotalRevenue:    decimal.Zero,
	}

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		processed, err := s.PlaceOrder(ctx, ownerID, line)
		switch {
		case errors.Is(err, model.ErrInvalidQuantity):
			log.Printf("Skipping line %d: invalid quantity %d for product %d", i, line.Quantity, line.ProductID)
			continue
		case errors.Is(err, model.ErrProductNotFound):
			log.Printf("Product ID %d does not exist.", line.ProductID)
			continue
		case errors.Is(err, model.ErrInsufficientStock):
			log.Printf("Insufficient stock for product %d", line.ProductID)
			continue
		case err != nil:
			return nil, errors.Wrapf(err, "failed to process line %d", i)
		}

		result.ProcessedOrders = append(result.ProcessedOrders, *processed)
		result.TotalRevenue = result.TotalRevenue.Add(processed.OrderTotal)
	}

	return result, nil
}

func (s *OrderService) ListOrders(ctx context.Context, ownerID uint) ([]OrderView, error) {
	orders, err := s.orders.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string)
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		name, ok := names[o.ProductID]
		if !ok {
			p, err := s.catalog.Get(ctx, o.ProductID)
			switch {
			case errors.Is(err, model.ErrProductNotFound):
				log.Printf("Order %d references missing product %d", o.ID, o.ProductID)
			case err != nil:
				return nil, err
			default:
				name = p.Name
			}
			names[o.ProductID] = name
		}

		views = append(views, OrderView{OrderID: o.ID, ProductName: name, Quantity: o.Quantity})
	}
	return views, nil
}
