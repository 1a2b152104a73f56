package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

// Config holds everything the process reads from the environment.
// The two secrets (bot token, API key) are required; the rest has defaults.
type Config struct {
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN" env-required:"true"`
	OpenAIKey     string `env:"OPENAI_API_KEY" env-required:"true"`

	OpenAIBaseURL   string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	VisionModel     string `env:"VISION_MODEL" env-default:"gpt-4o"`
	TextModel       string `env:"TEXT_MODEL" env-default:"gpt-4o-mini"`
	TranscribeModel string `env:"TRANSCRIBE_MODEL" env-default:"whisper-1"`

	DatabasePath      string `env:"DATABASE_PATH" env-default:"data/meals.db"`
	NutritionBasePath string `env:"NUTRITION_BASE_PATH" env-default:"data/nutrition_base.json"`
	LogFilePath       string `env:"LOG_FILE" env-default:"logs/bot.log"`
	HTTPPort          int    `env:"HTTP_PORT" env-default:"8080"`

	// Estimated start of pregnancy, used to derive week and trimester.
	PregnancyStart time.Time `env:"PREGNANCY_START_DATE" env-default:"2025-12-02T00:00:00Z"`
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

var DB *gorm.DB

// InitDB opens the single-file SQLite store and migrates the diary schema.
func InitDB(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&models.FoodEntry{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	DB = db
	return nil
}
