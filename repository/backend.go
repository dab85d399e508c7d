package repository

import (
	"log"

	"gorm.io/gorm"

	"store-service/config"
	"store-service/service"
)

// Backend bundles the persistence capabilities the services depend on.
// Users and orders always live in SQL; the catalog is SQL or the remote
// product API depending on USE_API_DATABASE.
type Backend struct {
	Products   service.ProductRepository
	Orders     service.OrderRepository
	Users      service.UserRepository
	UnitOfWork service.UnitOfWork
}

func NewBackend(db *gorm.DB, cfg *config.Config) *Backend {
	b := &Backend{
		Orders: NewOrderRepository(db),
		Users:  NewUserRepository(db),
	}

	if cfg.UseAPIDatabase {
		remote := NewAPIProductRepository(cfg.APIEndpoint, cfg.APITimeout)
		b.Products = remote
		b.UnitOfWork = NewRemoteCatalogUnitOfWork(db, remote)
		log.Printf("Catalog backend: product API at %s", cfg.APIEndpoint)
		return b
	}

	b.Products = NewProductRepository(db)
	b.UnitOfWork = NewUnitOfWork(db)
	log.Println("Catalog backend: SQL")
	return b
}
