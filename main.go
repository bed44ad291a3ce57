package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/appstore-backend/api"
	"github.com/rpupo63/appstore-backend/config"
	"github.com/rpupo63/appstore-backend/database"
	"github.com/rpupo63/appstore-backend/models"
	"github.com/rpupo63/appstore-backend/services"
	"github.com/rpupo63/appstore-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	settings := config.Load(config.New())
	if err := settings.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if settings.SessionSecret == config.DefaultSessionSecret {
		log.Warn().Msg("SESSION_SECRET is not set; flash cookies are signed with the development default")
	}

	ctx := context.Background()

	if settings.Database.PasswordParameter != "" {
		client, err := config.NewParameterGetter(ctx)
		if err != nil {
			fmt.Printf("Error creating SSM client: %v\n", err)
			os.Exit(1)
		}
		if err := config.ResolveDatabasePassword(ctx, client, &settings.Database); err != nil {
			fmt.Printf("Error resolving database password: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("DB_TYPE: %s\n", settings.Database.Type)
	db, err := database.Open(settings.Database)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := models.AutoMigrate(db); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	// If generating column mismatch report, run report and exit
	if os.Getenv("GENERATE_COLUMN_REPORT") == "true" {
		fmt.Println("Generating column mismatch report...")
		mismatches, err := models.ColumnMismatchReport(db)
		if err != nil {
			fmt.Printf("Error generating column report: %v\n", err)
			os.Exit(1)
		}
		for _, mismatch := range mismatches {
			log.Warn().Str("table", mismatch.Table).Strs("columns", mismatch.Columns).Msg("columns not mapped by any model")
		}
		fmt.Printf("%d table(s) with unmapped columns\n", len(mismatches))
		return
	}

	layout := storage.NewLayout(settings.ApplicationsDir)
	if err := os.MkdirAll(layout.Root, 0o755); err != nil {
		fmt.Printf("Error creating applications directory: %v\n", err)
		os.Exit(1)
	}

	var publisher storage.Publisher = storage.NopPublisher{}
	if settings.AssetMirrorBucket != "" {
		s3Publisher, err := storage.NewS3PublisherFromEnv(ctx, settings.AssetMirrorBucket, settings.AssetMirrorPrefix)
		if err != nil {
			fmt.Printf("Error creating asset mirror: %v\n", err)
			os.Exit(1)
		}
		publisher = s3Publisher
		log.Info().Str("bucket", settings.AssetMirrorBucket).Msg("mirroring assets to S3")
	}

	catalog := services.NewCatalog(database.New(db), layout, publisher)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(settings, catalog, layout)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
