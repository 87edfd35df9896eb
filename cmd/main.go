package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"glyphor/internal/caching"
	"glyphor/internal/events"
	"glyphor/internal/handlers"
	"glyphor/internal/jobs/background"
	"glyphor/internal/recordstore"
	"glyphor/internal/repositories"
	"glyphor/internal/services"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Record store selection: a remote record-store URL takes precedence,
	// otherwise the engine runs directly against Postgres.
	var (
		store recordstore.Store
		pool  *pgxpool.Pool
	)
	if storeURL := os.Getenv("RECORD_STORE_URL"); storeURL != "" {
		store = recordstore.NewRPCClient(storeURL)
		log.Printf("Using remote record store at %s", storeURL)
	} else {
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			log.Fatal("DATABASE_URL or RECORD_STORE_URL environment variable is required")
		}

		var err error
		pool, err = pgxpool.New(context.Background(), databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		store = repositories.NewPostgresStore(pool)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Monitor tick interval
	tickInterval := services.DefaultTickInterval
	if tickStr := os.Getenv("MONITOR_TICK"); tickStr != "" {
		if d, err := time.ParseDuration(tickStr); err == nil && d > 0 {
			tickInterval = d
		} else {
			log.Printf("Ignoring invalid MONITOR_TICK %q", tickStr)
		}
	}

	// Create services
	hub := events.NewHub()
	builder := services.NewCandidateBuilder(store, services.IndexDistance)
	engine := services.NewRankingEngine(services.DefaultScoringPolicy())
	relocationSvc := services.NewRelocationService(store)
	monitorSvc := services.NewMonitorService(store, builder, engine, relocationSvc, hub)
	spikeSvc := services.NewSpikeService(store)
	dashboardSvc := services.NewDashboardService(store)

	// Background jobs
	scheduler := background.NewJobScheduler(monitorSvc, dashboardSvc, spikeSvc, cacheSvc, tickInterval)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create handlers
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(store, cacheSvc)
	itemHandlers := handlers.NewItemHandlers(store)
	locationHandlers := handlers.NewLocationHandlers(store)
	mapHandlers := handlers.NewMapHandlers(store)
	relocationHandlers := handlers.NewRelocationHandlers(store, relocationSvc)
	alertHandlers := handlers.NewAlertHandlers(store)
	demandHandlers := handlers.NewDemandHandlers(store)
	spikeHandlers := handlers.NewSpikeHandlers(spikeSvc, cacheSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc, cacheSvc)
	loadBalancerHandlers := handlers.NewLoadBalancerHandlers(monitorSvc)
	eventsHandlers := handlers.NewEventsHandlers(hub)
	jobHandlers := handlers.NewJobHandlers(scheduler)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	api := e.Group("/api")

	// Inventory routes
	api.GET("/inventory", inventoryHandlers.ListInventories)
	api.POST("/inventory", inventoryHandlers.CreateInventory)
	api.GET("/inventory/:id", inventoryHandlers.GetInventory)
	api.PUT("/inventory/:id", inventoryHandlers.UpdateInventory)
	api.DELETE("/inventory/:id", inventoryHandlers.DeleteInventory)
	api.GET("/inventory/:id/details", inventoryHandlers.GetInventoryDetails)
	api.GET("/inventory/:id/items", inventoryHandlers.ListInventoryItems)
	api.POST("/inventory/:id/items", inventoryHandlers.AddInventoryItem)
	api.PUT("/inventory/:id/items/:item_id", inventoryHandlers.UpdateInventoryItem)
	api.DELETE("/inventory/:id/items/:item_id", inventoryHandlers.RemoveInventoryItem)

	// Item routes
	api.GET("/items", itemHandlers.ListItems)
	api.POST("/items", itemHandlers.CreateItem)
	api.GET("/items/:id", itemHandlers.GetItem)
	api.PUT("/items/:id", itemHandlers.UpdateItem)
	api.DELETE("/items/:id", itemHandlers.DeleteItem)

	// Location routes
	api.GET("/locations", locationHandlers.ListLocations)
	api.POST("/locations", locationHandlers.CreateLocation)
	api.GET("/locations/:id", locationHandlers.GetLocation)
	api.PUT("/locations/:id", locationHandlers.UpdateLocation)
	api.DELETE("/locations/:id", locationHandlers.DeleteLocation)

	// Map routes
	api.GET("/map/inventory-locations", mapHandlers.ListInventoryLocations)
	api.GET("/map/inventory-locations/:id", mapHandlers.GetInventoryLocation)

	// Relocation routes
	api.GET("/relocations", relocationHandlers.ListRelocations)
	api.POST("/relocations", relocationHandlers.CreateRelocation)
	api.GET("/relocations/:id", relocationHandlers.GetRelocation)
	api.GET("/relocations/status/:status", relocationHandlers.ListRelocationsByStatus)
	api.POST("/relocations/:id/execute", relocationHandlers.ExecuteRelocation)
	api.POST("/relocations/:id/cancel", relocationHandlers.CancelRelocation)

	// Alert routes
	api.GET("/alerts", alertHandlers.ListAlerts)
	api.GET("/alerts/unresolved", alertHandlers.ListUnresolvedAlerts)
	api.GET("/alerts/severity/:severity", alertHandlers.ListAlertsBySeverity)
	api.POST("/alerts", alertHandlers.CreateAlert)
	api.PUT("/alerts/:id/resolve", alertHandlers.ResolveAlert)

	// Demand history routes
	api.GET("/demand-history", demandHandlers.ListDemandHistory)
	api.POST("/demand-history", demandHandlers.CreateDemandRecord)
	api.GET("/demand-history/inventory/:inventory_id", demandHandlers.ListDemandByInventory)
	api.GET("/demand-history/item/:item_id", demandHandlers.ListDemandByItem)

	// Engine routes
	api.POST("/load-balancer/trigger", loadBalancerHandlers.Trigger)
	api.GET("/spikes/monitoring", spikeHandlers.GetMonitoringReport)
	api.GET("/dashboard/overview", dashboardHandlers.GetOverview)
	api.GET("/dashboard/stats", dashboardHandlers.GetStats)
	api.GET("/events/stream", eventsHandlers.Stream)
	api.GET("/events/status", eventsHandlers.Status)
	api.GET("/jobs/status", jobHandlers.GetJobStatus)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	go func() {
		log.Printf("Glyphor engine v%s starting on port %d (tick %s)", version, port, tickInterval)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
