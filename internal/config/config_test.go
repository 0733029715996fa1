package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("MEDIA_STORAGE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("порт по умолчанию: %q", cfg.Port)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %#v", cfg.CORSOrigins)
	}
	if cfg.MediaStorage != "local" {
		t.Errorf("MediaStorage = %q", cfg.MediaStorage)
	}
}

func TestLoadConfig_BadTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "сутки")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("ожидалась ошибка разбора SESSION_TTL")
	}
}

func TestValidate(t *testing.T) {
	c := &Config{DbHost: "h", DbUser: "u", DbName: "n", Env: "prod", MediaStorage: "local"}
	if _, err := c.Validate(); err == nil {
		t.Fatal("пустой JWT_SECRET в prod должен быть ошибкой")
	}

	c.Env = "dev"
	warnings, err := c.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(warnings) == 0 {
		t.Error("ожидалось предупреждение про JWT_SECRET")
	}

	c.MediaStorage = "s3"
	c.JWTSecret = "secret"
	if _, err := c.Validate(); err == nil {
		t.Error("s3 без бакета должен быть ошибкой")
	}
}

func TestGetDSNSafe(t *testing.T) {
	c := &Config{DbUser: "u", DbPass: "p", DbHost: "h", DbPort: "5432", DbName: "n", DbSSLMode: "disable"}
	if got := c.GetDSNSafe(); got != "postgres://u:***@h:5432/n?sslmode=disable" {
		t.Errorf("GetDSNSafe = %q", got)
	}
	if got := c.GetDSN(); got != "postgres://u:p@h:5432/n?sslmode=disable" {
		t.Errorf("GetDSN = %q", got)
	}
}
