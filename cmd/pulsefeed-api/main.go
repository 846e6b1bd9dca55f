package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/pulsefeed-dev/pulsefeed/internal/config"
	"github.com/pulsefeed-dev/pulsefeed/internal/logger"
	"github.com/pulsefeed-dev/pulsefeed/internal/router"
	"github.com/pulsefeed-dev/pulsefeed/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Server.LogLevel, cfg.Public.Server.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to setup dependencies", "err", err.Error())
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	addr := fmt.Sprintf(":%d", cfg.Public.Server.Port)
	logger.Log.Info("server started", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Error("server stopped", "err", err.Error())
		os.Exit(1)
	}
}
