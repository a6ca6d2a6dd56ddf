package main

import (
	"context"
	"log"

	"github.com/sngm3741/smartform-services/api/internal/config"
	googleinfra "github.com/sngm3741/smartform-services/api/internal/infrastructure/google"
	"github.com/sngm3741/smartform-services/api/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatalf("failed to connect to MongoDB: %v", err)
	}

	sheets, err := googleinfra.NewSheetsClient(ctx, cfg.GoogleCredentialsJSON, cfg.SpreadsheetID)
	if err != nil {
		cfg.ServerLog.Fatalf("failed to initialize Sheets client: %v", err)
	}
	drive, err := googleinfra.NewDriveStore(ctx, cfg.ServerLog, cfg.GoogleCredentialsJSON, cfg.DriveFolderID)
	if err != nil {
		cfg.ServerLog.Fatalf("failed to initialize Drive client: %v", err)
	}

	app := server.New(cfg, client, sheets, drive)
	if err := app.Run(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
