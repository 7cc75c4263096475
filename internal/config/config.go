package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/snaptrust/trust-growth-backend/internal/scoring"
)

type Config struct {
	Port    string
	GinMode string

	PaymentsCSV  string
	MerchantsCSV string

	CacheEnabled  bool
	SQLitePath    string
	AutoMigrate   bool
	MigrationsURL string

	OpenAIKey   string
	OpenAIModel string
	AITimeout   time.Duration

	VolumeBonus bool
	LegacyTiers bool
}

// Load reads configuration from the environment, with a .env file as a
// lower-precedence source.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		PaymentsCSV:  getEnv("PAYMENTS_CSV", "data/payments.csv"),
		MerchantsCSV: getEnv("MERCHANTS_CSV", "data/merchants_loyalty.csv"),

		CacheEnabled:  getBool("CACHE_ENABLED", true),
		SQLitePath:    getEnv("SQLITE_PATH", "data/cache.db"),
		AutoMigrate:   getBool("AUTO_MIGRATE", true),
		MigrationsURL: getEnv("MIGRATIONS_URL", "file://migrations"),

		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AITimeout:   getDuration("AI_TIMEOUT", 30*time.Second),

		VolumeBonus: getBool("SCORING_VOLUME_BONUS", true),
		LegacyTiers: getBool("SCORING_LEGACY_TIERS", false),
	}
}

// ScoringConfig maps the formula toggles onto the scoring engine.
func (c *Config) ScoringConfig() scoring.Config {
	return scoring.Config{VolumeBonus: c.VolumeBonus, LegacyTiers: c.LegacyTiers}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			log.Warn().Str("key", key).Str("value", value).Msg("invalid boolean, using default")
			return fallback
		}
		return parsed
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			log.Warn().Str("key", key).Str("value", value).Msg("invalid duration, using default")
			return fallback
		}
		return parsed
	}
	return fallback
}
