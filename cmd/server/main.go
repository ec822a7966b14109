package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/cart"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/config"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/events"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/httpserver"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/logging"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/media"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/search"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database init failed", "error", err)
		os.Exit(1)
	}
	r := repo.New(db)

	var producer events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		producer = p
	} else {
		logger.Warn("KAFKA_BROKERS not set, events disabled")
	}

	var indexer *search.Client
	if cfg.ESURL != "" {
		indexer, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Error("elasticsearch init failed", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("ES_URL not set, search disabled")
	}

	var mediaSvc *media.Service
	if cfg.S3Bucket != "" {
		disk, err := media.NewS3Disk(ctx, media.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.S3BaseURL,
		})
		if err != nil {
			logger.Error("s3 init failed", "error", err)
			os.Exit(1)
		}
		mediaSvc = &media.Service{Disk: disk}
	} else {
		logger.Warn("S3_BUCKET not set, media uploads disabled")
	}

	catalogSvc := &service.CatalogService{Repo: r, Producer: producer}
	if indexer != nil {
		catalogSvc.Indexer = indexer
	}

	deps := httpserver.Deps{
		Catalog:           catalogSvc,
		Orders:            &service.OrderService{Repo: r, Producer: producer, ShippingCost: cfg.ShippingCost},
		Cart:              &service.CartService{Store: cart.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword), Repo: r},
		Auth:              &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret},
		Dashboard:         &service.DashboardService{Repo: r, DefaultThreshold: cfg.LowStockThreshold},
		Media:             mediaSvc,
		Search:            indexer,
		Repo:              r,
		LowStockThreshold: cfg.LowStockThreshold,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = transport.HTTPErrorHandler
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, deps)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
