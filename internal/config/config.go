package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
// Заполняется один раз при старте и дальше передается в конструкторы явно.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	ServerPort  string `env:"SERVER_PORT"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:4200"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Аутентификация
	JWTSecret             string        `env:"JWT_SECRET,required"`
	BcryptCost            int           `env:"BCRYPT_COST" envDefault:"10"`
	SessionTokenTTL       time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`
	ResetTokenTTL         time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`
	PublicTokenTTL        time.Duration `env:"PUBLIC_TOKEN_TTL" envDefault:"2h"`
	PublicPortfolioUserID string        `env:"PUBLIC_PORTFOLIO_USER_ID,required"`

	// Подписанные ссылки на резюме
	ResumeURLExpiry time.Duration `env:"RESUME_SIGNED_URL_EXPIRY" envDefault:"600s"`

	// Настройки для MinIO / S3
	MinioEndpoint        string `env:"MINIO_ENDPOINT,required"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID,required"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY,required"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"assets"`
	MinioRegion          string `env:"MINIO_REGION,required"`

	// Исходящая почта (используется только в production, иначе ссылка логируется)
	SMTP struct {
		Host string `env:"SMTP_HOST"`
		Port int    `env:"SMTP_PORT" envDefault:"587"`
		User string `env:"SMTP_USER"`
		Pass string `env:"SMTP_PASS"`
		From string `env:"SMTP_FROM" envDefault:"Support <support@example.com>"`
	}

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL,required"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"reset_email_queue"`
	}
}

// IsProduction сообщает, работаем ли мы в боевом окружении.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	return &cfg, nil
}
