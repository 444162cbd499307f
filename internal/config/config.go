package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Providers ProvidersConfig
	Log       LogConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig - параметры пула соединений Redis
type RedisConfig struct {
	Host            string
	Port            int
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
}

// CacheConfig - время жизни записей кеша и порог для фонового обновления курсов
type CacheConfig struct {
	TTL           time.Duration
	RefreshMinTTL time.Duration
}

// ProvidersConfig - адреса и ключи внешних API
type ProvidersConfig struct {
	GeocoderURL     string
	YandexAPIKey    string
	CountryInfoURL  string
	CurrencyInfoURL string
	WeatherInfoURL  string
	WeatherAPIKey   string
	RequestTimeout  time.Duration
	MaxRetries      int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled         bool
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// .env не обязателен: в контейнере всё приходит через окружение
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),

			AllowOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:            viper.GetString("REDIS_HOST"),
			Port:            viper.GetInt("REDIS_PORT"),
			Password:        viper.GetString("REDIS_PASSWORD"),
			DB:              viper.GetInt("REDIS_DB"),
			PoolSize:        viper.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns:    viper.GetInt("REDIS_MIN_IDLE_CONNS"),
			ConnMaxIdleTime: time.Duration(viper.GetInt("REDIS_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Cache: CacheConfig{
			TTL:           time.Duration(viper.GetInt("LIVE_CACHE_SECONDS")) * time.Second,
			RefreshMinTTL: time.Duration(viper.GetInt("REFRESH_MIN_TTL_SECONDS")) * time.Second,
		},
		Providers: ProvidersConfig{
			GeocoderURL:     viper.GetString("GEOCODER_URL"),
			YandexAPIKey:    viper.GetString("YANDEX_API_KEY"),
			CountryInfoURL:  viper.GetString("COUNTRY_INFO_URL"),
			CurrencyInfoURL: viper.GetString("CURRENCY_INFO_URL"),
			WeatherInfoURL:  viper.GetString("WEATHER_INFO_URL"),
			WeatherAPIKey:   viper.GetString("WEATHER_API_KEY"),
			RequestTimeout:  time.Duration(viper.GetInt("PROVIDER_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries:      viper.GetInt("PROVIDER_MAX_RETRIES"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:         viper.GetBool("WORKER_ENABLED"),
			RefreshInterval: time.Duration(viper.GetInt("REFRESH_INTERVAL_SECONDS")) * time.Second,
		},
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	viper.SetDefault("REDIS_CONN_MAX_IDLE_TIME", 300)
	viper.SetDefault("LIVE_CACHE_SECONDS", 3600)
	viper.SetDefault("REFRESH_MIN_TTL_SECONDS", 10)
	viper.SetDefault("GEOCODER_URL", "https://geocode-maps.yandex.ru/1.x/")
	viper.SetDefault("COUNTRY_INFO_URL", "https://restcountries.com/v3.1/alpha/")
	viper.SetDefault("CURRENCY_INFO_URL", "https://www.cbr-xml-daily.ru/daily_json.js")
	viper.SetDefault("WEATHER_INFO_URL", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PROVIDER_MAX_RETRIES", 3)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REFRESH_INTERVAL_SECONDS", 60)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
