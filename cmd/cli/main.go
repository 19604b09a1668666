package main

import (
	"context"
	"log"

	"github.com/nomad-tales/nomadtales/internal/cli"
	"github.com/nomad-tales/nomadtales/internal/config"
	"github.com/nomad-tales/nomadtales/internal/logging"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewDefault(cfg.LogLevel)
	app := cli.NewApp(cfg, logger)

	app.Run(ctx)

}
