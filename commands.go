package main

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"store-service/config"
	"store-service/database"
	"store-service/kafka"
	"store-service/middleware"
	"store-service/model"
	"store-service/repository"
	"store-service/routes"
)

func serviceCommand() *cli.Command {
	return &cli.Command{
		Name:  "service",
		Usage: "migrate and serve HTTP",
		Action: func(c *cli.Context) (err error) {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			comps, err := buildComponents(c.Context, cfg)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, comps.Close())
			}()

			if cfg.UseAPIDatabase && len(cfg.KafkaBrokers) > 0 {
				consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaConnectRetries)
				if err != nil {
					return err
				}
				comps.closers = append(comps.closers, consumer.Close)
				if err := consumer.Consume(kafka.TopicProductUpdated, kafka.HandleProductUpdated(comps.catalog)); err != nil {
					return err
				}
			}

			app := routes.NewApp(cfg.CORSAllowOrigins)
			routes.RegisterStoreRoutes(app, comps.services(), middleware.SessionRequired(comps.sessions))

			g, ctx := errgroup.WithContext(c.Context)
			g.Go(func() error {
				log.Printf("HTTP store server running on %s", cfg.HTTPAddress)
				return app.Listen(cfg.HTTPAddress)
			})
			g.Go(func() error {
				<-ctx.Done()
				log.Println("shutting down HTTP server")
				return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
			})

			return g.Wait()
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update the database tables",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := openDB(cfg)
			if db != nil {
				defer database.Close(db)
			}
			return err
		},
	}
}

var demoProducts = []model.Product{
	{Name: "Milk", Price: decimal.RequireFromString("1.99"), Stock: 50},
	{Name: "Bread", Price: decimal.RequireFromString("2.49"), Stock: 8},
	{Name: "Eggs", Price: decimal.RequireFromString("3.20"), Stock: 24},
	{Name: "Coffee", Price: decimal.RequireFromString("7.50"), Stock: 5},
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert demo products into an empty SQL catalog",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := openDB(cfg)
			if db != nil {
				defer database.Close(db)
			}
			if err != nil {
				return err
			}

			products := repository.NewProductRepository(db)
			existing, err := products.FindAll(c.Context)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				log.Printf("catalog already holds %d products, skipping seed", len(existing))
				return nil
			}

			for _, p := range demoProducts {
				p := p
				if err := products.Create(c.Context, &p); err != nil {
					return err
				}
				log.Printf("seeded product %d %s", p.ID, p.Name)
			}
			return nil
		},
	}
}

func restockCommand() *cli.Command {
	return &cli.Command{
		Name:  "restock",
		Usage: "adjust the stock of one product",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "product", Required: true},
			&cli.IntFlag{Name: "delta", Required: true},
		},
		Action: func(c *cli.Context) (err error) {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			comps, err := buildComponents(c.Context, cfg)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, comps.Close())
			}()

			p, err := comps.catalog.AdjustStock(c.Context, c.Uint("product"), c.Int("delta"))
			if err != nil {
				return err
			}
			log.Printf("product %d %s now has %d in stock", p.ID, p.Name, p.Stock)
			return nil
		},
	}
}
