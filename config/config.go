package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	Store struct {
		Driver       string // postgres | memory
		SeedAccounts int    // сколько пустых счетов создать на старте
	}
	RateLimit struct {
		Limit int // запросов в минуту с одного IP
	}
}

// NewConfig создает новый экземпляр конфигурации
func NewConfig() (*Config, error) {
	cfg := &Config{}

	// Настройки сервера
	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("неверный формат порта сервера: %v", err)
	}
	cfg.Server.Port = port

	// Настройки базы данных
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("неверный формат порта базы данных: %v", err)
	}
	cfg.DB.Port = dbPort
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "bank_db")

	// Настройки хранилища
	cfg.Store.Driver = getEnv("STORE_DRIVER", "postgres")
	if cfg.Store.Driver != "postgres" && cfg.Store.Driver != "memory" {
		return nil, fmt.Errorf("неизвестный драйвер хранилища: %s", cfg.Store.Driver)
	}
	seedAccounts, err := strconv.Atoi(getEnv("SEED_ACCOUNTS", "0"))
	if err != nil {
		return nil, fmt.Errorf("неверный формат количества стартовых счетов: %v", err)
	}
	cfg.Store.SeedAccounts = seedAccounts

	// Настройки ограничения частоты запросов
	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT", "100"))
	if err != nil {
		return nil, fmt.Errorf("неверный формат лимита запросов: %v", err)
	}
	cfg.RateLimit.Limit = rateLimit

	return cfg, nil
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
