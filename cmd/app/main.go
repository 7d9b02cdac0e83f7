package main

import (
	"context"

	"loft/config"
	"loft/di"
	"loft/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.ContractRollover.Run(ctx)

	app.HTTP.Serve()
}
