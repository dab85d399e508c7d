package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"store-service/cache"
	"store-service/config"
	"store-service/database"
	"store-service/kafka"
	"store-service/repository"
	"store-service/routes"
	"store-service/service"
)

type components struct {
	cfg     *config.Config
	db      *gorm.DB
	backend *repository.Backend

	catalog  *service.Catalog
	orders   *service.OrderService
	users    *service.UserService
	sessions *service.SessionManager

	closers []func() error
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return db, database.Migrate(db)
}

func buildComponents(ctx context.Context, cfg *config.Config) (_ *components, err error) {
	c := &components{cfg: cfg}
	defer func() {
		if err != nil {
			err = errors.Join(err, c.Close())
		}
	}()

	c.db, err = openDB(cfg)
	if c.db != nil {
		db := c.db
		c.closers = append(c.closers, func() error { return database.Close(db) })
	}
	if err != nil {
		return nil, err
	}
	c.backend = repository.NewBackend(c.db, cfg)

	var store service.Cache
	if cfg.RedisAddr != "" {
		r, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, r.Close)
		store = r
	} else {
		log.Println("REDIS_ADDR not set, using in-process cache")
		store = cache.NewMemory()
	}

	var publisher service.EventPublisher = service.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaConnectRetries)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, p.Close)
		publisher = p
	} else {
		log.Println("KAFKA_BROKERS not set, events are dropped")
	}

	c.catalog = service.NewCatalog(c.backend.Products, c.backend.UnitOfWork, store, publisher, cfg.ProductCacheTTL)
	c.orders = service.NewOrderService(c.backend.UnitOfWork, c.backend.Orders, c.catalog, publisher)
	c.users = service.NewUserService(c.backend.Users)
	c.sessions = service.NewSessionManager(cfg.SecretKey, cfg.SessionTTL, store)
	return c, nil
}

func (c *components) services() routes.Services {
	return routes.Services{
		Users:             c.users,
		Sessions:          c.sessions,
		Catalog:           c.catalog,
		Orders:            c.orders,
		LowStockThreshold: c.cfg.LowStockThreshold,
		SecureCookies:     c.cfg.Env == config.EnvProduction,
	}
}

// Close runs the closers in reverse order of acquisition.
func (c *components) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}
