package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

type ProductsInvalidator interface {
	InvalidateProducts(ctx context.Context) error
}

type ProductUpdatedEvent struct {
	EventType string `json:"event_type"`
	Data      struct {
		ID uint `json:"id"`
	} `json:"data"`
}

// HandleProductUpdated drops the cached product list whenever the upstream
// catalog reports a change.
func HandleProductUpdated(invalidator ProductsInvalidator) func(data []byte) {
	return func(data []byte) {
		var event ProductUpdatedEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("Failed decode event: %v", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := invalidator.InvalidateProducts(ctx); err != nil {
			log.Printf("Failed to invalidate products after product %d update: %v", event.Data.ID, err)
			return
		}

		log.Printf("Received product.updated for product %d, cache invalidated", event.Data.ID)
	}
}
