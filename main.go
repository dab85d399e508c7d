package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "store-service",
		Usage: "catalog, orders and inventory HTTP service",
		Commands: []*cli.Command{
			serviceCommand(),
			migrateCommand(),
			seedCommand(),
			restockCommand(),
		},
		DefaultCommand: "service",
	}
}
