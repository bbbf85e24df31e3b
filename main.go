package main

import (
	"github.com/aaryandewangan/japlearn-sub001/internal/config"
	"github.com/aaryandewangan/japlearn-sub001/internal/database"
	logger "github.com/aaryandewangan/japlearn-sub001/internal/logging"
	"github.com/aaryandewangan/japlearn-sub001/internal/router"
	"go.uber.org/zap"
)

func main() {
	// A console-only logger carries us until the config is loaded.
	bootstrapLog := logger.NewBootstrap()

	if err := config.Init(".", bootstrapLog); err != nil {
		bootstrapLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(".", config.Conf.Logging)
	if err != nil {
		bootstrapLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	database.Init(log)

	r := router.Setup(log)

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
