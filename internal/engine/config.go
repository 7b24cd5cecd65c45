package engine

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const seedEnv = "RS_SEED"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все уровни:
	// зерно уровня = Seed, смешанное с хешем имени уровня.
	Seed int64 `env:"RS_SEED"`

	// Размер экрана в клетках. Окно камеры не больше уровня.
	DisplayWidth  int `env:"RS_DISPLAY_WIDTH" envDefault:"35"`
	DisplayHeight int `env:"RS_DISPLAY_HEIGHT" envDefault:"22"`

	// VisionRadius - радиус обзора игрока
	VisionRadius int `env:"RS_VISION_RADIUS" envDefault:"8"`

	StartLevel    string `env:"RS_START_LEVEL" envDefault:"overworld"`
	StartRevealed bool   `env:"RS_START_REVEALED" envDefault:"true"`

	Port      int  `env:"RS_PORT" envDefault:"8080"`
	Telemetry bool `env:"RS_TELEMETRY"`
}

// NewConfig создает конфиг по умолчанию (случайный сид), не читая окружение.
func NewConfig() Config {
	var cfg Config
	// Пустое окружение: остаются только значения envDefault
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	cfg.Seed = time.Now().UnixNano()
	return cfg
}

// LoadConfig читает .env (если он есть) и переменные окружения RS_*.
func LoadConfig() (Config, error) {
	// Отсутствие .env - нормальная ситуация
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	// RS_SEED=0 - допустимое явное зерно, случайное берём только без переменной
	if v, ok := os.LookupEnv(seedEnv); !ok || strings.TrimSpace(v) == "" {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет, что с такими параметрами движок может работать.
func (c Config) Validate() error {
	if c.DisplayWidth <= 0 || c.DisplayHeight <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.DisplayWidth, c.DisplayHeight)
	}
	if c.VisionRadius < 0 {
		return fmt.Errorf("vision radius must not be negative, got %d", c.VisionRadius)
	}
	if c.StartLevel == "" {
		return fmt.Errorf("start level name is empty")
	}
	return nil
}
