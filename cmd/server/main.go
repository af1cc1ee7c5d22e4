/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the fiscal engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML config (env overrides apply)
  3. Initialize SQLite store and projection cache
  4. Load catalog overrides if configured
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML config path (default: config.yaml, missing file is fine)
  -port    HTTP server port (overrides config)
  -db      SQLite database path (overrides config)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/fiscal.db"

  # Run with in-memory database on a different port
  ./server -db=":memory:" -port=3000

  # Redis-backed projection cache
  REDIS_ADDR=localhost:6379 ./server

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: YAML config schema
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/fiscal-engine/api"
	"github.com/warp/fiscal-engine/cache"
	"github.com/warp/fiscal-engine/config"
	"github.com/warp/fiscal-engine/factory"
	"github.com/warp/fiscal-engine/fiscal"
	"github.com/warp/fiscal-engine/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "config.yaml", "YAML config path")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.SQLitePath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Projection cache: Redis when configured, in-process otherwise
	var projectionCache cache.Cache
	if cfg.Cache.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.Cache.RedisAddr)
		if err := redisCache.Ping(); err != nil {
			log.Printf("Warning: Redis unreachable at %s, falling back to in-process cache: %v",
				cfg.Cache.RedisAddr, err)
			projectionCache = cache.NewMemory()
		} else {
			projectionCache = redisCache
		}
	} else {
		projectionCache = cache.NewMemory()
	}

	// Initialize handler
	handler := api.NewHandler(store, projectionCache)

	// Catalog overrides from config
	loadCatalog(handler, fiscal.FamilyNue, cfg.Catalogs.NueFile)
	loadCatalog(handler, fiscal.FamilyLmnp, cfg.Catalogs.LmnpFile)

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// loadCatalog replaces a family's default catalog with a JSON file.
func loadCatalog(handler *api.Handler, family fiscal.Family, path string) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s catalog %s: %v", family, path, err)
	}
	catalog, err := factory.New().ParseCatalog(data)
	if err != nil {
		log.Fatalf("Failed to parse %s catalog %s: %v", family, path, err)
	}
	handler.SetCatalog(family, catalog)
}
