package main

import (
	"context"
	"embed"
	"io/fs"
	"log"

	"mbtidash/internal/config"
	"mbtidash/internal/dashboard"
	"mbtidash/internal/dataset"
	"mbtidash/internal/logging"
	"mbtidash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed ui/templates ui/static
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.SetLevel(appConfig.Logging.Level)
	gin.SetMode(appConfig.Server.GinMode)

	store := dataset.NewStore(appConfig.Data.File, appConfig.Data.CacheTTL)
	builder := dashboard.NewBuilder(store, appConfig.Data.ReferenceCountry, appConfig.Data.TopN)

	// Warm the cache so a missing file shows up in the logs at startup. The
	// page still reports it to every visitor until the file appears.
	if _, err := store.Table(context.Background()); err != nil {
		logging.Warnf("[Startup] %v", err)
	}

	uiFiles, err := fs.Sub(embeddedFiles, "ui")
	if err != nil {
		log.Fatalf("Failed to open embedded UI files: %v", err)
	}

	server, err := ui.NewServer(uiFiles, builder)
	if err != nil {
		log.Fatalf("Failed to initialize UI server: %v", err)
	}

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
