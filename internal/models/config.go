package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	// Pricing
	BaseDeliveryPrice    float64 `mapstructure:"base_delivery_price"`
	Currency             string  `mapstructure:"currency"`
	BulkBaseMultiplier   float64 `mapstructure:"bulk_base_multiplier"`
	PerKmRateFactor      float64 `mapstructure:"per_km_rate_factor"`
	FreeKm               float64 `mapstructure:"free_km"`
	TimeSurchargeRate    float64 `mapstructure:"time_surcharge_rate"`
	WeatherSurchargeRate float64 `mapstructure:"weather_surcharge_rate"`
	NightStartHour       int     `mapstructure:"night_start_hour"`
	NightEndHour         int     `mapstructure:"night_end_hour"`
	LocalTimezone        string  `mapstructure:"local_timezone"`

	// Location tracking
	SignificantChangeKm float64       `mapstructure:"significant_change_km"`
	DebounceInterval    time.Duration `mapstructure:"debounce_interval"`

	// Device sensor
	SensorHighAccuracy bool          `mapstructure:"sensor_high_accuracy"`
	SensorTimeout      time.Duration `mapstructure:"sensor_timeout"`
	SensorMaxCacheAge  time.Duration `mapstructure:"sensor_max_cache_age"`

	// Mapping provider
	MapAPIKey       string        `mapstructure:"map_api_key"`
	MapAPIBaseURL   string        `mapstructure:"map_api_base_url"`
	MapRegionBias   string        `mapstructure:"map_region_bias"`
	ResolverTimeout time.Duration `mapstructure:"resolver_timeout"`

	// Weather provider
	WeatherAPIKey     string        `mapstructure:"weather_api_key"`
	WeatherAPIBaseURL string        `mapstructure:"weather_api_base_url"`
	WeatherCacheTTL   time.Duration `mapstructure:"weather_cache_ttl"`

	// Order backend
	OrderAPIBaseURL   string        `mapstructure:"order_api_base_url"`
	RouteQuoteTimeout time.Duration `mapstructure:"route_quote_timeout"`

	// Ranking
	NoSupplierPenaltyKm float64 `mapstructure:"no_supplier_penalty_km"`

	// Storage
	DatabaseURL string `mapstructure:"database_url"`

	// Event output
	KafkaEnabled      bool               `mapstructure:"kafka_enabled"`
	KafkaBrokerList   string             `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs  int                `mapstructure:"session_timeout_ms"`
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Only an explicitly requested file is required to exist; the
		// defaults above are a complete working configuration.
		if cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Pricing mirrors the order backend's rule set: the base price covers
	// the first free_km kilometres, every started kilometre beyond that is
	// billed at per_km_rate_factor of the base price, bulk orders pay a
	// multiplied base, and night/rain each add 10% of the distance fee.
	viper.SetDefault("base_delivery_price", 50.0)
	viper.SetDefault("currency", "LKR")
	viper.SetDefault("bulk_base_multiplier", 5.0)
	viper.SetDefault("per_km_rate_factor", 0.30)
	viper.SetDefault("free_km", 5.0)
	viper.SetDefault("time_surcharge_rate", 0.10)
	viper.SetDefault("weather_surcharge_rate", 0.10)
	viper.SetDefault("night_start_hour", 18)
	viper.SetDefault("night_end_hour", 5)
	viper.SetDefault("local_timezone", "Asia/Colombo")

	viper.SetDefault("significant_change_km", 2.0)
	viper.SetDefault("debounce_interval", "1s")

	viper.SetDefault("sensor_high_accuracy", true)
	viper.SetDefault("sensor_timeout", "10s")
	viper.SetDefault("sensor_max_cache_age", "30s")

	viper.SetDefault("map_api_base_url", "https://maps.googleapis.com")
	viper.SetDefault("map_region_bias", "lk")
	viper.SetDefault("resolver_timeout", "5s")

	viper.SetDefault("weather_api_base_url", "https://api.openweathermap.org")
	viper.SetDefault("weather_cache_ttl", "15m")

	viper.SetDefault("route_quote_timeout", "5s")

	viper.SetDefault("no_supplier_penalty_km", 20037.5)

	viper.SetDefault("kafka_enabled", false)
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("output_folder", "geo_events")
	viper.SetDefault("output_format", "json")
	viper.SetDefault("output_destination", "local")
}
