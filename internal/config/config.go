package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const placeholderAccessKey = "your_access_key_here"
const placeholderSecretKey = "your_secret_key_here"

type Config struct {
	Environment string `envconfig:"ENV" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:"0.0.0.0:5001"`

	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
	DBDSN         string `envconfig:"DB_DSN"`

	AWSAccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	AWSRegion          string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Каталог курсов (XLSX в S3)
	CatalogBucket      string `envconfig:"CATALOG_BUCKET" default:"schedulebuildertool"`
	CatalogKey         string `envconfig:"CATALOG_KEY" default:"classes/SCU_Find_Course_Sections.xlsx"`
	CatalogRefreshCron string `envconfig:"CATALOG_REFRESH_CRON" default:"0 */6 * * *"`

	BedrockModelID string `envconfig:"BEDROCK_MODEL_ID" default:"us.anthropic.claude-sonnet-4-5-20250929-v1:0"`

	RMPBaseURL     string        `envconfig:"RMP_BASE_URL" default:"https://www.ratemyprofessors.com"`
	RMPSchoolID    string        `envconfig:"RMP_SCHOOL_ID" default:"U2Nob29sLTg4Mg=="`
	RatingCacheTTL time.Duration `envconfig:"RATING_CACHE_TTL" default:"168h"`

	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE" default:"credentials.json"`
	GoogleTokenFile       string `envconfig:"GOOGLE_TOKEN_FILE" default:"token.json"`
	CalendarTimezone      string `envconfig:"CALENDAR_TIMEZONE" default:"America/Los_Angeles"`

	QuartersFile string `envconfig:"QUARTERS_FILE"`

	// datetime | time_of_day
	OverlapMode string `envconfig:"SCHEDULE_OVERLAP_MODE" default:"datetime"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет поля, без которых не работает ни один бинарник
func (c *Config) Validate() error {
	if c.AWSAccessKeyID == "" || c.AWSAccessKeyID == placeholderAccessKey {
		return fmt.Errorf("AWS_ACCESS_KEY_ID is required but not set")
	}
	if c.AWSSecretAccessKey == "" || c.AWSSecretAccessKey == placeholderSecretKey {
		return fmt.Errorf("AWS_SECRET_ACCESS_KEY is required but not set")
	}
	if _, err := time.LoadLocation(c.CalendarTimezone); err != nil {
		return fmt.Errorf("invalid CALENDAR_TIMEZONE %q: %w", c.CalendarTimezone, err)
	}
	return nil
}

// RequireBot проверяет настройки Telegram-бота
func (c *Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required but not set")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location возвращает часовой пояс календаря
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.CalendarTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
