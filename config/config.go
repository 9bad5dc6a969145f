// Package config assembles the settings of the blog from defaults, an ini file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// DefaultDatabaseURL is an sqlite3 file in the working directory, see github.com/xo/dburl.
const DefaultDatabaseURL = "sqlite3:blog.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&_foreign_keys=on"

type Config struct {
	AdminMail     string
	AdminPassword string
	Base          string // URL prefix without trailing slash
	CSRF          bool
	DatabaseURL   string
	Lang          string            // default language of the copy
	Listen        string            // ip:port
	Messages      map[string]string // overrides the built-in copy
	PageSize      int               // posts per page
	SecretKey     string            // signs CSRF tokens, random if empty
}

func Default() *Config {
	return &Config{
		AdminMail:     "admin@admin.com",
		AdminPassword: "admin",
		CSRF:          true,
		DatabaseURL:   DefaultDatabaseURL,
		Lang:          "it",
		Listen:        "127.0.0.1:8080",
		Messages:      map[string]string{},
		PageSize:      5,
	}
}

// Load reads the ini file at iniPath and the dotenv file at envPath, then applies environment variables.
// Missing files are skipped. Environment variables take precedence over the ini file.
func Load(iniPath, envPath string) (*Config, error) {

	var cfg = Default()

	if iniPath != "" {
		if err := cfg.loadIni(iniPath); err != nil {
			return nil, err
		}
	}

	if envPath != "" {
		// godotenv does not override variables which are already set
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envPath, err)
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	cfg.Base = NormalizeBase(cfg.Base)

	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", cfg.PageSize)
	}

	return cfg, nil
}

func (cfg *Config) loadIni(path string) error {

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	var sec = file.Section("")

	cfg.AdminMail = sec.Key("admin_mail").MustString(cfg.AdminMail)
	cfg.AdminPassword = sec.Key("admin_password").MustString(cfg.AdminPassword)
	cfg.Base = sec.Key("base").MustString(cfg.Base)
	cfg.CSRF = sec.Key("csrf").MustBool(cfg.CSRF)
	cfg.DatabaseURL = sec.Key("database_url").MustString(cfg.DatabaseURL)
	cfg.Lang = sec.Key("lang").MustString(cfg.Lang)
	cfg.Listen = sec.Key("listen").MustString(cfg.Listen)
	cfg.PageSize = sec.Key("page_size").MustInt(cfg.PageSize)
	cfg.SecretKey = sec.Key("secret_key").MustString(cfg.SecretKey)

	if file.HasSection("messages") {
		for key, value := range file.Section("messages").KeysHash() {
			cfg.Messages[key] = value
		}
	}

	return nil
}

func (cfg *Config) loadEnv() error {

	var envStrings = map[string]*string{
		"BLOG_ADMIN_MAIL":     &cfg.AdminMail,
		"BLOG_ADMIN_PASSWORD": &cfg.AdminPassword,
		"BLOG_BASE":           &cfg.Base,
		"BLOG_LANG":           &cfg.Lang,
		"BLOG_LISTEN":         &cfg.Listen,
		"DATABASE_URL":        &cfg.DatabaseURL,
		"SECRET_KEY":          &cfg.SecretKey,
	}

	for name, field := range envStrings {
		if value, ok := os.LookupEnv(name); ok && value != "" {
			*field = value
		}
	}

	if value, ok := os.LookupEnv("PAGE_ELEM_NUMBER"); ok && value != "" {
		pageSize, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("PAGE_ELEM_NUMBER: %w", err)
		}
		cfg.PageSize = pageSize
	}

	if value, ok := os.LookupEnv("BLOG_CSRF"); ok && value != "" {
		csrf, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("BLOG_CSRF: %w", err)
		}
		cfg.CSRF = csrf
	}

	return nil
}

// NormalizeBase returns the prefix with a leading slash and without trailing slash, or the empty string.
func NormalizeBase(base string) string {
	base = strings.Trim(base, "/")
	if base != "" {
		base = "/" + base
	}
	return base
}
