package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	JWT       JWTConfig
	Upstream  UpstreamConfig
	Redis     RedisConfig
	Business  BusinessConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	Debug     bool
	LogLevel  string
	LogFormat string
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours time.Duration
}

// UpstreamConfig points at the remote services every business record lives
// behind: product catalog, customer directory and invoice/transaction store.
type UpstreamConfig struct {
	CatalogURL     string
	CustomerURL    string
	InvoiceURL     string
	Timeout        time.Duration
	SearchCacheTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BusinessConfig is the header block printed on receipts and invoices.
type BusinessConfig struct {
	StoreName string
	Address   string
	Phone     string
	TaxID     string
	Footer    string
}

type PrinterConfig struct {
	Type      string // usb, network, none
	USBPath   string
	Address   string
	CharWidth int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "tillpoint-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_ISSUER", "tillpoint-identity")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CATALOG_SERVICE_URL", "http://localhost:9001")
	viper.SetDefault("CUSTOMER_SERVICE_URL", "http://localhost:9002")
	viper.SetDefault("INVOICE_SERVICE_URL", "http://localhost:9003")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SEARCH_CACHE_TTL_SECONDS", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BUSINESS_STORE_NAME", "Tillpoint Store")
	viper.SetDefault("BUSINESS_ADDRESS", "")
	viper.SetDefault("BUSINESS_PHONE", "")
	viper.SetDefault("BUSINESS_TAX_ID", "")
	viper.SetDefault("BUSINESS_RECEIPT_FOOTER", "Thank you for your business!")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:      viper.GetString("APP_NAME"),
			Env:       viper.GetString("APP_ENV"),
			Port:      viper.GetString("APP_PORT"),
			Debug:     viper.GetBool("APP_DEBUG"),
			LogLevel:  viper.GetString("LOG_LEVEL"),
			LogFormat: viper.GetString("LOG_FORMAT"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			Issuer:      viper.GetString("JWT_ISSUER"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Upstream: UpstreamConfig{
			CatalogURL:     viper.GetString("CATALOG_SERVICE_URL"),
			CustomerURL:    viper.GetString("CUSTOMER_SERVICE_URL"),
			InvoiceURL:     viper.GetString("INVOICE_SERVICE_URL"),
			Timeout:        time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
			SearchCacheTTL: time.Duration(viper.GetInt("SEARCH_CACHE_TTL_SECONDS")) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Business: BusinessConfig{
			StoreName: viper.GetString("BUSINESS_STORE_NAME"),
			Address:   viper.GetString("BUSINESS_ADDRESS"),
			Phone:     viper.GetString("BUSINESS_PHONE"),
			TaxID:     viper.GetString("BUSINESS_TAX_ID"),
			Footer:    viper.GetString("BUSINESS_RECEIPT_FOOTER"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}
