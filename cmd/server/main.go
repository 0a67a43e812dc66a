package main // Entry point package

import (
	"context"   // shutdown deadline
	"errors"    // errors.Is for server and consumer exits
	"net/http"  // http.ErrServerClosed
	"os"        // process signals
	"os/signal" // graceful shutdown on SIGINT/SIGTERM
	"strings"   // log level parsing
	"syscall"   // SIGTERM
	"time"      // shutdown timeout

	"github.com/labstack/echo/v4"                 // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's stock middleware
	"github.com/labstack/gommon/log"              // Echo's leveled logger

	"github.com/iliyamo/hotel-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/hotel-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/hotel-reservation/internal/middleware" // rate limit and cache
	"github.com/iliyamo/hotel-reservation/internal/queue"      // booking events
	"github.com/iliyamo/hotel-reservation/internal/repository" // in-memory stores
	"github.com/iliyamo/hotel-reservation/internal/router"     // Internal router setup
	"github.com/iliyamo/hotel-reservation/internal/service"    // booking facade
)

func main() {
	cfg := config.Load() // Load environment config

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Logger.SetLevel(parseLevel(cfg.LogLevel))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())

	logger := log.New("booking")
	logger.SetLevel(parseLevel(cfg.LogLevel))

	var events service.EventPublisher = queue.NopPublisher{}
	if cfg.EventsEnabled {
		events = queue.NewAMQPPublisher(cfg.AMQPURL, logger)
	}

	users := repository.NewUserRepo()
	reservations := repository.NewReservationRepo()
	reviews := repository.NewReviewRepo()
	booking := service.NewBookingService(users, reservations, events, logger)
	h := handler.NewHandler(users, reservations, reviews, booking)

	rdb, err := config.NewRedisClient(config.LoadRedisConfig())
	if err != nil {
		e.Logger.Infof("rate limiting and response cache disabled: %v", err)
	} else {
		defer rdb.Close()
	}

	router.RegisterRoutes(e, h)
	router.RegisterAPI(e, h,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ConsumeEvents {
		go func() {
			err := queue.StartBookingConsumer(ctx, cfg.AMQPURL, cfg.BookingLogPath, logger)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("booking consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port // Address string with port
	go func() {
		e.Logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}

func parseLevel(s string) log.Lvl {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return log.DEBUG
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}
