package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/smartstock/inventory_shop/internal/cartstore"
	"github.com/smartstock/inventory_shop/internal/config"
	"github.com/smartstock/inventory_shop/internal/es"
	"github.com/smartstock/inventory_shop/internal/handlers"
	"github.com/smartstock/inventory_shop/internal/hash"
	"github.com/smartstock/inventory_shop/internal/logging"
	"github.com/smartstock/inventory_shop/internal/mail"
	"github.com/smartstock/inventory_shop/internal/mykafka"
	"github.com/smartstock/inventory_shop/internal/repo"
	"github.com/smartstock/inventory_shop/internal/service/checkout"
	httpserver "github.com/smartstock/inventory_shop/internal/transport/http"
	"github.com/smartstock/inventory_shop/pkg/db"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.ADMIN_EMAIL, "ADMIN_EMAIL")
	config.MustNonEmpty(configuration.ADMIN_PASSWORD, "ADMIN_PASSWORD")

	logger := logging.New(configuration.LOG_LEVEL)

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		configuration.DB_USER, configuration.DB_PASSWORD,
		configuration.DB_HOST, configuration.DB_PORT, configuration.DB_NAME,
	)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, dsn)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := config.SeedDatabase(database); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	var carts cartstore.Store
	if configuration.REDIS_ADDR != "" {
		redisStore, err := cartstore.NewRedisStore(configuration.REDIS_ADDR, configuration.REDIS_PASSWORD)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		defer redisStore.Close()
		carts = redisStore
	} else {
		gormStore, err := cartstore.NewGormStore(database)
		if err != nil {
			log.Fatalf("cart store init error: %v", err)
		}
		carts = gormStore
	}

	var producer mykafka.Publisher
	var kafkaProducer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		kafkaProducer, err = mykafka.NewProducer(config.CSV(configuration.KAFKA_ADDRESS))
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
		producer = kafkaProducer
	}

	var searchHandler *handlers.SearchHandler
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: "products"}
	}

	var sender mail.Sender
	if configuration.SMTP_HOST != "" {
		sender = mail.NewSMTPSender(configuration)
	}

	adminHash, err := hash.HashPassword(configuration.ADMIN_PASSWORD)
	if err != nil {
		log.Fatalf("admin password hash error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	catalogRepo := &repo.CatalogRepo{DB: database}
	orderRepo := &repo.OrderRepo{DB: database}
	checkoutSvc := checkout.New(database, carts)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:        database,
		JWTSecret: jwtSecret,
		AuthHandler: &handlers.AuthHandler{
			JWTSecret:         jwtSecret,
			AdminEmail:        configuration.ADMIN_EMAIL,
			AdminPasswordHash: adminHash,
		},
		ProductHandler:   &handlers.ProductHandler{Repo: catalogRepo, Producer: producer},
		CategoryHandler:  &handlers.CategoryHandler{Repo: catalogRepo},
		CartHandler:      &handlers.CartHandler{Checkout: checkoutSvc, Producer: producer, Mail: sender},
		OrderHandler:     &handlers.OrderHandler{Repo: orderRepo},
		DashboardHandler: &handlers.DashboardHandler{Catalog: catalogRepo, Orders: orderRepo},
		SearchHandler:    searchHandler,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.SERVER_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
