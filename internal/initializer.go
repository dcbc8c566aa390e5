package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"skillswap-web/internal/config"
	"skillswap-web/internal/coordinator"
	"skillswap-web/internal/handlers"
	"skillswap-web/internal/managers"
	"skillswap-web/internal/routing"
)

func Init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("error loading configuration: ", err)
	}

	setLogLevel(cfg.LogLevel)
	log.Debugf("Configuration: %+v", redacted(cfg))

	// Initialize session storage
	newStore, ping := initializeStorage(cfg)

	// Initialize session registry
	sessions := handlers.NewSessionRegistry(newStore, ping, cfg.APIBaseURL, cfg.APITimeout, coordinator.Options{
		AdminCacheTTL: cfg.AdminCacheTTL,
	}, handlers.RegistryLimits{
		IdleTTL:     cfg.SessionIdleTTL,
		MaxSessions: cfg.MaxSessions,
	})

	// Initialize router
	r := routing.InitRouter(cfg, sessions)
	log.Println("Initialized router")

	// Handle interrupt signal gracefully
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)

		<-c
		log.Println("Server shutting down...")
		os.Exit(0)
	}()

	// Start server on the specified port
	log.Printf("Starting server on port %s...\n", cfg.Port)
	err = http.ListenAndServe(cfg.Addr(), r)
	if err != nil {
		log.Fatal("Error starting server: ", err)
	}
}

// initializeStorage picks the backend that holds each browser's local storage.
// The memory backend forgets every session on restart.
func initializeStorage(cfg config.Config) (handlers.StoreFactory, func(ctx context.Context) error) {
	if cfg.StorageBackend != config.StorageRedis {
		log.Info("Using in-memory session storage")
		return func(string) managers.KeyValueStore {
			return managers.NewMemoryStore()
		}, nil
	}

	log.Info("Initializing redis session storage")
	client := managers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("error connecting to redis: ", err)
	}
	log.Info("Connected to redis")

	newStore := func(sessionID string) managers.KeyValueStore {
		return managers.NewRedisStore(client, sessionID)
	}
	ping := func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
	return newStore, ping
}

func redacted(cfg config.Config) config.Config {
	if cfg.RedisPassword != "" {
		cfg.RedisPassword = "***"
	}
	return cfg
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetReportCaller(true)

	log.SetOutput(os.Stdout)

}
