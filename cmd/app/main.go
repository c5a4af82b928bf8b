package main

import (
	"himalayandays/config"
	"himalayandays/di"
	"himalayandays/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
