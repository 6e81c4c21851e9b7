package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	StorageDriver  string        `mapstructure:"STORAGE_DRIVER"`
	PostgresConn   string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser   string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass   string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost   string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort   string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB     string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL   string        `mapstructure:"MIGRATION_URL"`
	SQLitePath     string        `mapstructure:"SQLITE_PATH"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFormat      string        `mapstructure:"LOG_FORMAT"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	SeedDemoData   bool          `mapstructure:"SEED_DEMO_DATA"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":    ":8080",
	"STORAGE_DRIVER":    StoragePostgres,
	"POSTGRES_CONN":     "",
	"POSTGRES_USERNAME": "",
	"POSTGRES_PASSWORD": "",
	"POSTGRES_HOST":     "",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_DATABASE": "",
	"MIGRATION_URL":     "file://migrations",
	"SQLITE_PATH":       "procurement.db",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "json",
	"REQUEST_TIMEOUT":   "5s",
	"SEED_DEMO_DATA":    false,
}

// LoadConfig загружает конфигурацию из app.env в каталоге path, переменные окружения имеют приоритет.
// Отсутствие файла не считается ошибкой.
func LoadConfig(path string) (cfg Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}
	err = v.Unmarshal(&cfg)
	return
}
