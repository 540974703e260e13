package config

import (
	"errors"
	"os"
	"strconv"

	"app/forecast"
)

// Config holds application configuration loaded from the environment.
// This is a simple way to make config accessible globally.
type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	GeminiAPIKey string

	// ScheduleHour/ScheduleMinute is the local wall-clock time of the daily
	// prediction sweep.
	ScheduleHour   int
	ScheduleMinute int

	Forecast forecast.Params
}

// AppConfig holds the application-wide configuration.
var AppConfig Config

// Load reads configuration from environment variables. DATABASE_URL and
// JWT_SECRET are required; everything else has defaults. The forecast tuning
// defaults preserve the values downstream consumers are calibrated to.
func Load() error {
	cfg := Config{
		Port:           getEnv("PORT", "3000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		ScheduleHour:   getEnvInt("PREDICTION_SCHEDULE_HOUR", 2),
		ScheduleMinute: getEnvInt("PREDICTION_SCHEDULE_MINUTE", 0),
	}

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	params := forecast.DefaultParams()
	params.Horizon = getEnvInt("FORECAST_HORIZON_DAYS", params.Horizon)
	params.Window = getEnvInt("FORECAST_WINDOW_DAYS", params.Window)
	params.TrendWeight = getEnvFloat("FORECAST_TREND_WEIGHT", params.TrendWeight)
	params.AverageWeight = getEnvFloat("FORECAST_AVERAGE_WEIGHT", params.AverageWeight)
	params.SafetyFactor = getEnvFloat("SAFETY_STOCK_FACTOR", params.SafetyFactor)
	params.ConfidenceSlope = getEnvFloat("CONFIDENCE_SLOPE", params.ConfidenceSlope)
	params.ConfidenceFloor = getEnvFloat("CONFIDENCE_FLOOR", params.ConfidenceFloor)
	cfg.Forecast = params

	AppConfig = cfg
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
