package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/benjihealth/sanctuary/internal/api"
	"github.com/benjihealth/sanctuary/internal/backend"
	"github.com/benjihealth/sanctuary/internal/config"
	"github.com/benjihealth/sanctuary/internal/db"
	"github.com/benjihealth/sanctuary/internal/session"
	"github.com/benjihealth/sanctuary/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv("SANCTUARY_CONFIG"))
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	kv, err := storage.Open(filepath.Join(cfg.DataDir, "kv"))
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Printf("storage close failed: %v", err)
		}
	}()

	client := backend.NewClient(cfg.BackendURL)
	sessions := session.NewManager(kv, []byte(cfg.SecretKey))
	handler := api.NewHandler(cfg, kv, db.NewRepositories(database), client, sessions)

	app := fiber.New(fiber.Config{
		AppName:               "Sanctuary",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Sanctuary listening on http://127.0.0.1:%s (backend: %s, db: %s)", cfg.Port, cfg.BackendURL, cfg.DBPath)
	if err := app.Listen("127.0.0.1:" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
