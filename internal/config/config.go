package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr    string `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseDSN   string `env:"DATABASE_DSN" envDefault:""`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"secret"`
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	TelegramAddr  string `env:"TELEGRAM_API_ADDRESS" envDefault:"https://api.telegram.org"`
	SMTPAddr      string `env:"SMTP_ADDRESS" envDefault:"localhost:25"`
	SMTPUser      string `env:"SMTP_USERNAME" envDefault:""`
	SMTPPassword  string `env:"SMTP_PASSWORD" envDefault:""`
	EmailFrom     string `env:"EMAIL_FROM" envDefault:"noreply@dessertshop.ru"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr  string
	LogLevel    string
	JWTSecret   string
	DatabaseDSN string
}

// TelegramConfig модель настроек работы с Telegram Bot API
type TelegramConfig struct {
	Token        string
	APIAddr      string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// SMTPConfig модель настроек почтового шлюза
type SMTPConfig struct {
	Addr     string
	Username string
	Password string
	From     string
}

// NotifyConfig модель настроек рассылки уведомлений
type NotifyConfig struct {
	BatchSize      int
	BatchDelay     time.Duration
	RateLimitDelay time.Duration
	SendTimeout    time.Duration
	QueueSize      int
}

// Config модель настроек сервиса
type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	SMTP     SMTPConfig
	Notify   NotifyConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server   = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN      = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN")
		secret   = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		token    = pflag.StringP("token", "t", args.TelegramToken, "Telegram bot API token")
		tgAddr   = pflag.StringP("telegram", "g", args.TelegramAddr, "Telegram bot API address")
		smtpAddr = pflag.StringP("smtp", "m", args.SMTPAddr, "SMTP server address in a form host:port.")
		from     = pflag.StringP("from", "f", args.EmailFrom, "Sender address for outgoing email")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:  *server,
			LogLevel:    *logLevel,
			DatabaseDSN: *DSN,
			JWTSecret:   *secret,
		},
		Telegram: TelegramConfig{
			Token:        *token,
			APIAddr:      *tgAddr,
			PollInterval: 2 * time.Second,
			PollTimeout:  25 * time.Second,
		},
		SMTP: SMTPConfig{
			Addr:     *smtpAddr,
			Username: args.SMTPUser,
			Password: args.SMTPPassword,
			From:     *from,
		},
		Notify: DefaultNotifyConfig(),
	}
}

// DefaultNotifyConfig - настройки рассылки по умолчанию: батчи по 5
// получателей, пауза 500мс между батчами, 1с после превышения лимита.
func DefaultNotifyConfig() NotifyConfig {
	return NotifyConfig{
		BatchSize:      5,
		BatchDelay:     500 * time.Millisecond,
		RateLimitDelay: time.Second,
		SendTimeout:    10 * time.Second,
		QueueSize:      64,
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  "localhost:8080",
			LogLevel:    "info",
			DatabaseDSN: "",
			JWTSecret:   "secret",
		},
		Telegram: TelegramConfig{
			APIAddr:      "https://api.telegram.org",
			PollInterval: 2 * time.Second,
			PollTimeout:  25 * time.Second,
		},
		SMTP: SMTPConfig{
			Addr: "localhost:25",
			From: "noreply@dessertshop.ru",
		},
		Notify: DefaultNotifyConfig(),
	}
}
