package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/jotter-dev/jotter/internal/config"
	"github.com/jotter-dev/jotter/internal/logger"
	"github.com/jotter-dev/jotter/internal/router"
	"github.com/jotter-dev/jotter/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	if err := deps.Storage.Bootstrap(); err != nil {
		logger.Log.Error("failed to bootstrap schema", "error", err)
		os.Exit(1)
	}

	r := router.New(deps)

	logger.Log.Info("server started", "addr", cfg.Public.Addr)
	if err := http.ListenAndServe(cfg.Public.Addr, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
