package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"crossconnect/config"
	"crossconnect/db"
	"crossconnect/dispatcher"
	"crossconnect/identity"
	"crossconnect/model"
	natsClient "crossconnect/nats"
	"crossconnect/post"
	"crossconnect/profile"
	"crossconnect/scratch"
	"crossconnect/store"
	"crossconnect/upload"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the database
	dbConn, err := database.NewConnection(database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxLifetime:  cfg.Database.MaxLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()
	log.Println("Successfully connected to database")

	// Initialize NATS client
	nats, err := natsClient.NewClient(natsClient.Config{
		URL:           cfg.NATS.URL,
		MaxReconnects: cfg.NATS.MaxReconnects,
		ReconnectWait: cfg.NATS.ReconnectWait,
		ClientID:      cfg.NATS.ClientID,
	})
	if err != nil {
		log.Fatalf("Failed to initialize NATS client: %v", err)
	}
	defer nats.Close()

	// Initialize Redis scratch storage
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Initialize blob storage
	uploader, err := upload.New(upload.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
	})
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}
	if err := uploader.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to ensure bucket: %v", err)
	}

	// Initialize the document store
	documents := store.New(dbConn.DB, nats)
	if err := documents.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Wire the synchronization core
	dispatch := dispatcher.New(documents, dispatcher.LogNotifier{})
	ids := identity.NewProvider(identity.NewManager(cfg.Auth.JWTSecret), scratch.New(redisClient))

	posts := post.NewService(documents, dispatch)
	profiles := profile.NewService(documents, dispatch, ids)

	// Tail the live feed so operators can watch replication land
	feedSub, err := posts.WatchFeed(ctx, func(feed []models.Post) {
		if len(feed) == 0 {
			log.Println("feed: empty")
			return
		}
		latest := feed[len(feed)-1]
		log.Printf("feed: %d posts, latest by %s at %d", len(feed), latest.UserID, latest.TimeStamp)
	})
	if err != nil {
		log.Fatalf("Failed to open feed subscription: %v", err)
	}

	profileSub, err := profiles.WatchAll(ctx, func(all []models.UserProfile) {
		log.Printf("profiles: %d registered", len(all))
	})
	if err != nil {
		log.Fatalf("Failed to open profile subscription: %v", err)
	}

	log.Println("crossconnect sync core running")

	// Graceful shutdown handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	feedSub.Cancel()
	profileSub.Cancel()
	cancel()
	log.Println("Server stopped")
}
