package kafka

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicOrderCreated   = "order.created"
	TopicStockUpdated   = "stock.updated"
	TopicProductUpdated = "product.updated"
)

// envelope is the wire shape shared by every topic.
type envelope struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type OrderCreatedEvent struct {
	OrderID    uint            `json:"order_id"`
	UserID     uint            `json:"user_id"`
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	OrderTotal decimal.Decimal `json:"order_total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MarshalJSON writes order_total as a JSON number regardless of the
// decimal package's global quoting flag.
func (e OrderCreatedEvent) MarshalJSON() ([]byte, error) {
	type plain OrderCreatedEvent
	return json.Marshal(struct {
		plain
		OrderTotal json.Number `json:"order_total"`
	}{plain(e), json.Number(e.OrderTotal.String())})
}

type StockUpdatedEvent struct {
	ProductID uint `json:"product_id"`
	Delta     int  `json:"delta"`
	Stock     int  `json:"stock"`
}
