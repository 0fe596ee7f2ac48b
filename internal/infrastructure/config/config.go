package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env          string
	Server       ServerConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	ProfileStore ProfileStoreConfig
	Logging      LoggingConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
	I18n         I18nConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	BaseURL         string // URL base da API para construir URIs RFC 7807
	BodyLimitBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	FrontendDistDir string // build do SPA servido nas rotas de página (opcional)
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
	AutoMigrate bool
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// ProfileStoreConfig aponta para o serviço externo de perfis (API REST estilo PostgREST).
// URL vazia usa a tabela users local.
type ProfileStoreConfig struct {
	URL        string
	ServiceKey string
	Timeout    time.Duration
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type I18nConfig struct {
	DefaultLanguage string
	LocalesDir      string // opcional: sobrescreve os arquivos embutidos
}

// IsProduction indica se a aplicação roda em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("BODY_LIMIT_BYTES", 10<<20)
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "60s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	v.SetDefault("PROFILE_STORE_TIMEOUT", "5s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("I18N_DEFAULT_LANGUAGE", "en")
}

// Load carrega as configurações do ambiente, lendo antes um arquivo .env quando existir
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading env file %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	accessExpiry, err := parseDuration(v, "JWT_ACCESS_EXPIRY")
	if err != nil {
		return nil, err
	}
	profileTimeout, err := parseDuration(v, "PROFILE_STORE_TIMEOUT")
	if err != nil {
		return nil, err
	}
	rateWindow, err := parseDuration(v, "RATE_LIMIT_WINDOW")
	if err != nil {
		return nil, err
	}
	readTimeout, err := parseDuration(v, "SERVER_READ_TIMEOUT")
	if err != nil {
		return nil, err
	}
	writeTimeout, err := parseDuration(v, "SERVER_WRITE_TIMEOUT")
	if err != nil {
		return nil, err
	}

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("HOST"),
			BaseURL:         v.GetString("API_BASE_URL"),
			BodyLimitBytes:  v.GetInt64("BODY_LIMIT_BYTES"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			FrontendDistDir: v.GetString("FRONTEND_DIST_DIR"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		ProfileStore: ProfileStoreConfig{
			URL:        strings.TrimRight(v.GetString("PROFILE_STORE_URL"), "/"),
			ServiceKey: v.GetString("PROFILE_STORE_SERVICE_KEY"),
			Timeout:    profileTimeout,
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: allowedOrigins(v),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   rateWindow,
		},
		I18n: I18nConfig{
			DefaultLanguage: v.GetString("I18N_DEFAULT_LANGUAGE"),
			LocalesDir:      v.GetString("I18N_LOCALES_DIR"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejeita configurações que impedem a aplicação de subir com segurança
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	if c.ProfileStore.URL != "" && c.ProfileStore.ServiceKey == "" {
		return errors.New("PROFILE_STORE_SERVICE_KEY is required when PROFILE_STORE_URL is set")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if c.Server.BodyLimitBytes <= 0 {
		return errors.New("BODY_LIMIT_BYTES must be positive")
	}
	return nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// allowedOrigins combina FRONTEND_URL com a lista CORS_ALLOWED_ORIGINS
func allowedOrigins(v *viper.Viper) []string {
	seen := map[string]bool{}
	var origins []string

	candidates := append([]string{v.GetString("FRONTEND_URL")}, strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",")...)
	for _, o := range candidates {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}

	return origins
}
