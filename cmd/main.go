package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/config"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/endpoints"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/service"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/transport"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/flight"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/gds"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/itinerary"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/logger"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/markup"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/ratelimit"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title           Flight Fare Engine API
// @version         0.0.1
// @description     flight fare search, markup and fare calendar
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {

	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	deps := initDependencies(ctx, &cfg)
	defer deps.close()

	endpts := makeEndpoints(&cfg, deps)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

type dependencies struct {
	redis *redis.Client
	mongo *mongo.Client
}

func (d dependencies) close() {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			slog.Error("failed to close redis", slog.String("error", err.Error()))
		}
	}

	if d.mongo != nil {
		if err := d.mongo.Disconnect(context.Background()); err != nil {
			slog.Error("failed to disconnect mongo", slog.String("error", err.Error()))
		}
	}
}

func initDependencies(ctx context.Context, cfg *config.Config) dependencies {
	var deps dependencies

	// init redis
	if cfg.Redis.Addr != "" {
		deps.redis = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			ReadTimeout:  cfg.Redis.Timeout,
			WriteTimeout: cfg.Redis.Timeout,
		})
	}

	// init mongo
	if cfg.Mongo.URI != "" {
		client, err := mongo.Connect(ctx, options.Client().
			ApplyURI(cfg.Mongo.URI).
			SetConnectTimeout(cfg.Mongo.Timeout))
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect mongo", slog.String("error", err.Error()))
			panic(err)
		}
		deps.mongo = client
	}

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	return deps
}

func makeEndpoints(cfg *config.Config, deps dependencies) endpoints.Endpoints {
	gdsClient := gds.NewHTTPClient(gds.Config{
		BaseURL: cfg.GDS.BaseURL,
		Token:   cfg.GDS.Token,
		Timeout: cfg.GDS.Timeout,
	}, gds.WithLimiter(makeLimiter(cfg, deps)))

	searchService := service.NewFlightSearchService(gdsClient, makeRuleStore(cfg, deps),
		itinerary.NewNormalizer(cfg.GDS.DefaultCurrency))

	calendarService := service.NewFareCalendarService(gdsClient, makeCalendarCache(cfg, deps),
		cfg.GDS.DefaultCurrency, cfg.FareCalendar.Concurrency)

	return endpoints.MakeEndpoints(searchService, service.NewFareRulesService(), calendarService)
}

func makeLimiter(cfg *config.Config, deps dependencies) gds.Limiter {
	if cfg.GDS.RateLimitBackend == "redis" && deps.redis != nil && cfg.GDS.RateLimit > 0 {
		return ratelimit.NewRedisLimiter(redis_rate.NewLimiter(deps.redis), "gds", cfg.GDS.RateLimit)
	}

	return ratelimit.NewLocalLimiter(cfg.GDS.RateLimit)
}

func makeRuleStore(cfg *config.Config, deps dependencies) markup.Store {
	if deps.mongo != nil {
		collection := deps.mongo.Database(cfg.Mongo.Database).Collection(cfg.Mongo.MarkupCollection)
		return markup.NewMongoStore(collection)
	}

	rules := make([]markup.Rule, len(cfg.Markup.Rules))
	for i, r := range cfg.Markup.Rules {
		rules[i] = markup.Rule{
			ID:          r.ID,
			Airlines:    r.Airlines,
			Origin:      r.Origin,
			MarkupType:  markup.Type(r.MarkupType),
			MarkupValue: r.MarkupValue,
			Priority:    r.Priority,
			Status:      markup.Status(r.Status),
		}
	}

	slog.Info("using static markup rules", slog.Int("rules", len(rules)))

	return markup.NewStaticStore(rules)
}

func makeCalendarCache(cfg *config.Config, deps dependencies) service.CalendarCacher {
	if cfg.FareCalendar.CacheBackend == "redis" && deps.redis != nil {
		return flight.NewRedisCalendarCache(deps.redis, cfg.FareCalendar.CacheTTL)
	}

	return flight.NewMemoryCalendarCache(cfg.FareCalendar.CacheTTL)
}
