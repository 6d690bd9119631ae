package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	LocationSourceStatic = "static"
	LocationSourceIP     = "ip"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	WeatherBaseURL   string
	WeatherRateLimit float64
	WeatherRateBurst int

	LocationSource    string
	LocationLatitude  float64
	LocationLongitude float64
	LocationIPURL     string
	LocationTimeout   time.Duration
	LocationMaxAge    time.Duration

	HostWebhookURL string
	ZipkinURL      string

	ShutdownTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "watchface-weather")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("HTTP_TIMEOUT", 175)
	v.SetDefault("WEATHER_BASE_URL", "http://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("WEATHER_RATE_LIMIT", 0)
	v.SetDefault("WEATHER_RATE_BURST", 1)
	v.SetDefault("LOCATION_SOURCE", LocationSourceIP)
	v.SetDefault("LOCATION_IP_URL", "http://ip-api.com/json/")
	v.SetDefault("LOCATION_TIMEOUT", 15000*time.Millisecond)
	v.SetDefault("LOCATION_MAX_AGE", 60000*time.Millisecond)
	v.SetDefault("SHUTDOWN_TIMEOUT", 30*time.Second)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:       v.GetString("SERVICE_NAME"),
		ServerAddress:     v.GetString("SERVER_ADDRESS"),
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		HTTPTimeout:       v.GetInt32("HTTP_TIMEOUT"),
		WeatherBaseURL:    v.GetString("WEATHER_BASE_URL"),
		WeatherRateLimit:  v.GetFloat64("WEATHER_RATE_LIMIT"),
		WeatherRateBurst:  v.GetInt("WEATHER_RATE_BURST"),
		LocationSource:    v.GetString("LOCATION_SOURCE"),
		LocationLatitude:  v.GetFloat64("LOCATION_LATITUDE"),
		LocationLongitude: v.GetFloat64("LOCATION_LONGITUDE"),
		LocationIPURL:     v.GetString("LOCATION_IP_URL"),
		LocationTimeout:   v.GetDuration("LOCATION_TIMEOUT"),
		LocationMaxAge:    v.GetDuration("LOCATION_MAX_AGE"),
		HostWebhookURL:    v.GetString("HOST_WEBHOOK_URL"),
		ZipkinURL:         v.GetString("ZIPKIN_URL"),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.LocationSource {
	case LocationSourceStatic:
		if c.LocationLatitude < -90 || c.LocationLatitude > 90 {
			return fmt.Errorf("LOCATION_LATITUDE out of range: %f", c.LocationLatitude)
		}
		if c.LocationLongitude < -180 || c.LocationLongitude > 180 {
			return fmt.Errorf("LOCATION_LONGITUDE out of range: %f", c.LocationLongitude)
		}
	case LocationSourceIP:
		if c.LocationIPURL == "" {
			return fmt.Errorf("LOCATION_IP_URL is required when LOCATION_SOURCE is %q", LocationSourceIP)
		}
	default:
		return fmt.Errorf("unknown LOCATION_SOURCE: %q", c.LocationSource)
	}

	if c.LocationTimeout <= 0 {
		return fmt.Errorf("LOCATION_TIMEOUT must be positive, got %s", c.LocationTimeout)
	}

	if c.LocationMaxAge < 0 {
		return fmt.Errorf("LOCATION_MAX_AGE must not be negative, got %s", c.LocationMaxAge)
	}

	if c.WeatherRateLimit < 0 {
		return fmt.Errorf("WEATHER_RATE_LIMIT must not be negative, got %f", c.WeatherRateLimit)
	}

	return nil
}

// IsDevelopment reports whether ENV names a local development environment.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local":
		return true
	}
	return false
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}
