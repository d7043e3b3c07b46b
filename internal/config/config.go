// Package config provides environment configuration for the booking service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	CORSOrigins        []string
	SSEHeartbeat       time.Duration

	// Room directory
	RoomAPIURL          string
	RoomAPITimeout      time.Duration
	RoomRefreshInterval time.Duration

	// Calendar
	Timezone             string
	VisibleStartHour     int
	VisibleEndHour       int
	CalendarTickInterval time.Duration

	// Bookings
	SeedBookings bool

	// NATS settings
	NATSEnabled  bool
	NATSURL      string
	NATSCAFile   string
	NATSCertFile string
	NATSKeyFile  string
	NATSToken    string
	NATSTimeout  time.Duration

	// JWT settings
	JWTSecret     string
	JWTExpiration time.Duration

	// LLM settings
	AnthropicAPIKey       string
	OpenAIAPIKey          string
	LLMProvider           string
	LLMModel              string
	RecommendationTimeout time.Duration

	// Rate limiting
	RateLimitRequests          int
	RateLimitWindow            time.Duration
	AssistantRateLimitRequests int

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),
		CORSOrigins:        getListEnv("CORS_ALLOWED_ORIGINS", nil),
		SSEHeartbeat:       getDurationEnv("SSE_HEARTBEAT_INTERVAL", 30*time.Second),

		// Room directory
		RoomAPIURL:          getEnv("ROOM_API_URL", "http://localhost:8000/api"),
		RoomAPITimeout:      getDurationEnv("ROOM_API_TIMEOUT", 10*time.Second),
		RoomRefreshInterval: getDurationEnv("ROOM_REFRESH_INTERVAL", 0),

		// Calendar
		Timezone:             getEnv("TIMEZONE", "Local"),
		VisibleStartHour:     getIntEnv("VISIBLE_START_HOUR", 7),
		VisibleEndHour:       getIntEnv("VISIBLE_END_HOUR", 19),
		CalendarTickInterval: getDurationEnv("CALENDAR_TICK_INTERVAL", time.Minute),

		// Bookings
		SeedBookings: getBoolEnv("SEED_BOOKINGS", true),

		// NATS
		NATSEnabled:  getBoolEnv("NATS_ENABLED", false),
		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		NATSCAFile:   getEnv("NATS_CA_FILE", ""),
		NATSCertFile: getEnv("NATS_CERT_FILE", ""),
		NATSKeyFile:  getEnv("NATS_KEY_FILE", ""),
		NATSToken:    getEnv("NATS_TOKEN", ""),
		NATSTimeout:  getDurationEnv("NATS_CONNECT_TIMEOUT", 5*time.Second),

		// JWT
		JWTSecret:     getEnv("JWT_SECRET", "development-secret-change-in-production"),
		JWTExpiration: getDurationEnv("JWT_EXPIRATION", 8*time.Hour),

		// LLM
		AnthropicAPIKey:       getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		LLMProvider:           getEnv("LLM_PROVIDER", "anthropic"),
		LLMModel:              getEnv("LLM_MODEL", ""),
		RecommendationTimeout: getDurationEnv("RECOMMENDATION_TIMEOUT", 30*time.Second),

		// Rate limiting
		RateLimitRequests:          getIntEnv("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:            getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		AssistantRateLimitRequests: getIntEnv("ASSISTANT_RATE_LIMIT_REQUESTS", 10),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

// Validate checks settings that cannot be defaulted safely.
func (c *Config) Validate() error {
	if c.VisibleStartHour < 0 || c.VisibleEndHour > 24 {
		return fmt.Errorf("visible window %d-%d is outside 0-24", c.VisibleStartHour, c.VisibleEndHour)
	}
	if c.VisibleEndHour <= c.VisibleStartHour {
		return fmt.Errorf("visible window end %d must be after start %d", c.VisibleEndHour, c.VisibleStartHour)
	}
	if c.CalendarTickInterval <= 0 {
		return errors.New("calendar tick interval must be positive")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone to a *time.Location.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
