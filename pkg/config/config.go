package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento de snapshots.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Storage StorageConfig
	DB      DBConfig
	Store   StoreConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración del token de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// StorageConfig dónde se guardan los snapshots del carrito y de la sesión.
type StorageConfig struct {
	Driver         string // memory | sqlite | postgres
	SQLitePath     string
	PersistTimeout time.Duration
}

// DBConfig configuración de PostgreSQL (solo con Storage.Driver = postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// StoreConfig parámetros del store de dominio.
type StoreConfig struct {
	SuperAdminID string // identidad sembrada con acceso total si no tiene mapa de permisos
	QueryLocale  string // idioma para ordenar textos (BCP 47)
	SeedDemoData bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env o config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "storefront-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "storefront-admin"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(getString(v, "STORAGE_DRIVER", StorageSQLite)),
			SQLitePath:     getString(v, "SQLITE_PATH", "data/storefront.db"),
			PersistTimeout: time.Duration(getInt(v, "PERSIST_TIMEOUT_MS", 2000)) * time.Millisecond,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "storefront"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Store: StoreConfig{
			SuperAdminID: getString(v, "SUPER_ADMIN_ID", "admin-1"),
			QueryLocale:  getString(v, "QUERY_LOCALE", "vi"),
			SeedDemoData: getBool(v, "SEED_DEMO_DATA", true),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER desconocido %q", c.Storage.Driver)
	}
	if c.JWT.Secret == "" && c.App.Env == "production" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio en production")
	}
	if c.Store.SuperAdminID == "" {
		return fmt.Errorf("config: SUPER_ADMIN_ID no puede estar vacío")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
