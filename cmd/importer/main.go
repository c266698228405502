// Command importer runs a one-off Miles & More import for a single user.
// It reads the exported JSON document from a file and prints any airport
// codes that could not be resolved.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"flightlog-service/internal/infrastructure/config"
	"flightlog-service/internal/infrastructure/persistence"
	repo "flightlog-service/internal/interface/repository"
	"flightlog-service/internal/usecase"
	"flightlog-service/pkg/auth"
	"flightlog-service/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	var (
		file     = flag.String("file", "", "path to the Miles & More JSON export")
		username = flag.String("user", "", "username to attribute the imported flights to")
	)
	flag.Parse()

	log := logger.NewLogger()
	defer log.Sync()

	if *file == "" || *username == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -file export.json -user <username>")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read export file", "file", *file, "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx := context.Background()

	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	airportRepository := repo.NewGormAirportRepository(gormDB)
	airlineRepository := repo.NewGormAirlineRepository(gormDB)
	aircraftRepository := repo.NewGormAircraftRepository(gormDB)
	flightRepository := repo.NewMongoFlightRepository(db)
	userRepository := repo.NewMongoUserRepository(db)

	user, err := userRepository.FindByUsername(ctx, *username)
	if err != nil {
		log.Fatal("Failed to look up user", "username", *username, "error", err)
	}

	aircraftTable, err := aircraftRepository.ListAll(ctx)
	if err != nil {
		log.Fatal("Failed to load aircraft type table", "error", err)
	}

	resolver := usecase.NewAircraftResolver(aircraftTable, log)
	transformer := usecase.NewImportTransformer(airportRepository, airlineRepository, resolver, log)
	importService := usecase.NewImportService(transformer, flightRepository, nil, log)

	ctx = auth.WithUser(ctx, auth.User{ID: user.ID})
	result, err := importService.ImportMilesAndMore(ctx, raw)
	if err != nil {
		log.Fatal("Import failed", "error", err)
	}

	fmt.Printf("Imported %d flights for %s\n", len(result.Flights), *username)
	if len(result.UnknownAirports) > 0 {
		fmt.Println("Unresolved airport codes (add these manually):")
		for _, code := range result.UnknownAirports {
			fmt.Printf("  %s\n", code)
		}
	}
}
