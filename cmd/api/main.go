// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/smartroom/booking-platform/internal/config"
	"github.com/smartroom/booking-platform/internal/handler"
	"github.com/smartroom/booking-platform/internal/llm"
	natsclient "github.com/smartroom/booking-platform/internal/nats"
	"github.com/smartroom/booking-platform/internal/roomapi"
	"github.com/smartroom/booking-platform/internal/service"
	"github.com/smartroom/booking-platform/pkg/logger"
	"github.com/smartroom/booking-platform/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	loc, _ := cfg.Location()

	log.Info("starting booking API server", zap.String("timezone", loc.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracing if enabled
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "booking-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(context.Background(), tp)
		}
	}

	// Booking events go to JetStream when enabled and are dropped otherwise.
	var (
		publisher  service.EventPublisher = service.NopPublisher{}
		eventLog   handler.EventLog
		connection handler.ConnectionChecker
	)
	if cfg.NATSEnabled {
		natsClient, err := natsclient.Connect(ctx, natsclient.Config{
			URL:            cfg.NATSURL,
			CAFile:         cfg.NATSCAFile,
			CertFile:       cfg.NATSCertFile,
			KeyFile:        cfg.NATSKeyFile,
			Token:          cfg.NATSToken,
			ConnectTimeout: cfg.NATSTimeout,
		}, log)
		if err != nil {
			log.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer natsClient.Close()

		streamManager := natsclient.NewStreamManager(natsClient)
		if err := streamManager.EnsureStream(ctx); err != nil {
			log.Fatal("failed to ensure stream", zap.Error(err))
		}
		publisher = streamManager
		eventLog = streamManager
		connection = natsClient
	}

	// Room directory. A failed first fetch leaves it empty and the service keeps running.
	roomSvc := service.NewRoomService(roomapi.NewClient(cfg.RoomAPIURL, cfg.RoomAPITimeout), log)
	if err := roomSvc.Refresh(ctx); err != nil {
		log.Warn("starting with an empty room directory", zap.String("room_api_url", cfg.RoomAPIURL))
	}
	go roomSvc.Run(ctx, cfg.RoomRefreshInterval)

	bookingSvc := service.NewBookingService(roomSvc, publisher, loc, time.Now, log)
	if cfg.SeedBookings {
		bookingSvc.Seed(service.SeedBookings(time.Now(), loc))
	}

	gateway := service.NewRecommendationGateway(newLLMClient(cfg, log), cfg.LLMModel, cfg.RecommendationTimeout, loc, time.Now)
	assistantSvc := service.NewAssistantService(gateway, roomSvc, bookingSvc, time.Now, log)
	calendarSvc := service.NewCalendarService(roomSvc, bookingSvc, loc, cfg.VisibleStartHour, cfg.VisibleEndHour, cfg.CalendarTickInterval, time.Now)
	statsSvc := service.NewStatsService(roomSvc, bookingSvc)

	router := handler.NewRouter(handler.RouterConfig{
		Health:    handler.NewHealthHandler(connection, roomSvc),
		Auth:      handler.NewAuthHandler(cfg.JWTSecret, cfg.JWTExpiration, log),
		Rooms:     handler.NewRoomHandler(roomSvc, log),
		Bookings:  handler.NewBookingHandler(bookingSvc, eventLog, log),
		Calendar:  handler.NewCalendarHandler(calendarSvc, statsSvc, log),
		Stream:    handler.NewStreamHandler(calendarSvc, cfg.SSEHeartbeat, log),
		Assistant: handler.NewAssistantHandler(assistantSvc, log),

		JWTSecret:                  cfg.JWTSecret,
		CORSOrigins:                cfg.CORSOrigins,
		RateLimitRequests:          cfg.RateLimitRequests,
		RateLimitWindow:            cfg.RateLimitWindow,
		AssistantRateLimitRequests: cfg.AssistantRateLimitRequests,
		Logger:                     log,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

// newLLMClient picks the recommendation provider. A missing key or unknown provider leaves
// the assistant without a provider, which answers every query with the apology text.
func newLLMClient(cfg *config.Config, log *logger.Logger) llm.Client {
	provider := llm.Provider(cfg.LLMProvider)

	var apiKey string
	switch provider {
	case llm.ProviderAnthropic:
		apiKey = cfg.AnthropicAPIKey
	case llm.ProviderOpenAI:
		apiKey = cfg.OpenAIAPIKey
	}

	client, err := llm.NewClient(provider, apiKey)
	if err != nil {
		log.Warn("LLM provider unavailable, assistant disabled",
			zap.String("provider", cfg.LLMProvider),
			zap.Error(err),
		)
		return nil
	}

	log.Info("LLM provider configured", zap.String("provider", client.Name()))
	return client
}
