package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightlog-service/internal/infrastructure/config"
	"flightlog-service/internal/infrastructure/persistence"
	repo "flightlog-service/internal/interface/repository"
	"flightlog-service/internal/usecase"
	"flightlog-service/pkg/logger"
	"flightlog-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Flight Log Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up reference repositories
	airportRepository := repo.NewGormAirportRepository(gormDB)
	airlineRepository := repo.NewGormAirlineRepository(gormDB)
	aircraftRepository := repo.NewGormAircraftRepository(gormDB)

	// Set up persistence repositories
	flightRepository := repo.NewMongoFlightRepository(db)
	userRepository := repo.NewMongoUserRepository(db)

	// The aircraft reference table is immutable for the process lifetime,
	// load it once and hand it to the resolver.
	aircraftTable, err := aircraftRepository.ListAll(ctx)
	if err != nil {
		log.Fatal("Failed to load aircraft type table", "error", err)
	}
	log.Info("Loaded aircraft type table", "entries", len(aircraftTable))

	serviceMetrics := metrics.NewMetrics("flightlog")

	resolver := usecase.NewAircraftResolver(aircraftTable, log)
	transformer := usecase.NewImportTransformer(airportRepository, airlineRepository, resolver, log)
	importService := usecase.NewImportService(transformer, flightRepository, serviceMetrics, log)
	userService := usecase.NewUserService(userRepository, cfg.BcryptCost, log)

	// The application API layer mounts these; this binary owns only the
	// operational endpoints.
	log.Info("Services wired",
		"version", cfg.AppVersion,
		"users", userService != nil,
		"import", importService != nil)

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := mongoClient.Ping(r.Context(), nil); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Mongo unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flight Log Service stopped")
}
