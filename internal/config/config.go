// Package config loads runtime settings from the environment (optionally seeded
// from a .env file) and holds the domain constants shared across packages.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the backend.
type Config struct {
	HTTP     HTTP
	Database Database
	Redis    Redis
	SMTP     SMTP
	Telegram Telegram
	Gemini   Gemini

	JWTSecret      string
	SupportHotline string
	LogLevel       string
}

type HTTP struct {
	Addr        string
	CORSOrigins []string
	Development bool
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a libpq style connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Enabled reports whether outgoing email is configured.
func (s SMTP) Enabled() bool { return s.Host != "" && s.From != "" }

type Telegram struct {
	BotToken    string
	StaffChatID int64
}

// Enabled reports whether staff alerts can be delivered.
func (t Telegram) Enabled() bool { return t.BotToken != "" && t.StaffChatID != 0 }

type Gemini struct {
	APIKey string
	Model  string
}

// Enabled reports whether the chat widget has an upstream model.
func (g Gemini) Enabled() bool { return g.APIKey != "" }

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is not set.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded, using process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, which keeps tests away from
// the real environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	smtpPort, err := strconv.Atoi(get("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	redisDB, err := strconv.Atoi(get("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	var staffChat int64
	if raw := get("TELEGRAM_STAFF_CHAT_ID", ""); raw != "" {
		staffChat, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_STAFF_CHAT_ID: %w", err)
		}
	}

	cfg := &Config{
		HTTP: HTTP{
			Addr:        get("HTTP_ADDR", ":8080"),
			CORSOrigins: splitList(get("CORS_ORIGINS", "http://localhost:3000")),
			Development: get("APP_ENV", "production") == "development",
		},
		Database: Database{
			Host:     get("DB_HOST", "localhost"),
			Port:     get("DB_PORT", "5432"),
			User:     get("DB_USER", "postgres"),
			Password: get("DB_PASSWORD", ""),
			Name:     get("DB_NAME", "labourdesk"),
			SSLMode:  get("DB_SSLMODE", "disable"),
		},
		Redis: Redis{
			Addr:     get("REDIS_ADDR", ""),
			Password: get("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		SMTP: SMTP{
			Host:     get("SMTP_HOST", ""),
			Port:     smtpPort,
			Username: get("SMTP_USER", ""),
			Password: get("SMTP_PASSWORD", ""),
			From:     get("SMTP_FROM", ""),
			FromName: get("SMTP_FROM_NAME", "Labour Department"),
		},
		Telegram: Telegram{
			BotToken:    get("TELEGRAM_BOT_TOKEN", ""),
			StaffChatID: staffChat,
		},
		Gemini: Gemini{
			APIKey: get("GEMINI_API_KEY", ""),
			Model:  get("GEMINI_MODEL", DefaultGeminiModel),
		},
		JWTSecret:      get("JWT_SECRET", ""),
		SupportHotline: get("SUPPORT_HOTLINE", "0800-LABOUR"),
		LogLevel:       get("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
