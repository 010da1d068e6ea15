package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	DiscogsToken string
	EbayToken    string

	// Operator pricing knobs
	FlatShippingCost float64
	MinStorePrice    float64

	// Optional marketplace response cache; empty disables it
	RedisURL string
	// Cron spec for the bulk pricing refresh; empty disables it
	RefreshCron string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := Config{
		Port:             getenv("PORT", "8081"),
		DBDSN:            getenv("DB_DSN", "crateworth.db"),
		LogFile:          getenv("LOG_FILE", "./crateworth.log"),
		DiscogsToken:     os.Getenv("DISCOGS_TOKEN"),
		EbayToken:        os.Getenv("EBAY_OAUTH_TOKEN"),
		FlatShippingCost: getfloat("FLAT_SHIPPING_COST", 5.72),
		MinStorePrice:    getfloat("MIN_STORE_PRICE", 1.99),
		RedisURL:         os.Getenv("REDIS_URL"),
		RefreshCron:      os.Getenv("REFRESH_CRON"),
	}

	// never echo tokens
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s FLAT_SHIPPING_COST=%.2f MIN_STORE_PRICE=%.2f REFRESH_CRON=%q",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.FlatShippingCost, cfg.MinStorePrice, cfg.RefreshCron)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getfloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] bad %s=%q, using %.2f", key, v, def)
		return def
	}
	return f
}
