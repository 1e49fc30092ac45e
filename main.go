package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/rankfeed/cache"
	"github.com/danielhkuo/rankfeed/cliparse"
	"github.com/danielhkuo/rankfeed/db"
	"github.com/danielhkuo/rankfeed/events"
	"github.com/danielhkuo/rankfeed/middleware"
	"github.com/danielhkuo/rankfeed/posts"
	"github.com/danielhkuo/rankfeed/router"
)

func main() {
	var err error

	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx := context.Background()

	// Connect to the database
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	var opts []posts.Option

	// Optional post cache
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		opts = append(opts, posts.WithCache(cache.NewPostCache(client, cache.DefaultTTL)))
		slog.Info("Post cache enabled")
	}

	// Optional change events
	if cfg.NATSURL != "" {
		pub, err := events.Connect(cfg.NATSURL)
		if err != nil {
			slog.Error("nats connection failed", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		opts = append(opts, posts.WithPublisher(pub))
		slog.Info("Event publishing enabled")

		if cfg.LogLevel <= slog.LevelDebug {
			if _, err := pub.Subscribe(events.LogEvent); err != nil {
				slog.Warn("failed to subscribe to post events", "error", err)
			}
		}
	}

	svc := posts.NewService(dbConn, opts...)

	// Create router
	mux := router.NewRouter(dbConn, svc, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.ClientHosts)(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
