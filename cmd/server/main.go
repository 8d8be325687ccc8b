package main

import (
	app "ad-matrix-engine/internal/app/server"
	"ad-matrix-engine/internal/config"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.Server.LogLevel)
	app.Run(cfg)
}
