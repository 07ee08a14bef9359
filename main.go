package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"bankaccount/config"
	"bankaccount/controllers"
	"bankaccount/database"
	"bankaccount/middleware"
	"bankaccount/services"
	"bankaccount/storage"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// newStore создает хранилище счетов согласно конфигурации
func newStore(cfg *config.Config) (storage.AccountStore, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresStore(db), nil
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища: %s", cfg.Store.Driver)
	}
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем хранилище счетов
	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Ошибка инициализации хранилища: %v", err)
	}
	log.Printf("Хранилище счетов: %s", cfg.Store.Driver)

	// Создаем стартовые счета с нулевым балансом
	for i := 0; i < cfg.Store.SeedAccounts; i++ {
		account, err := store.CreateAccount(decimal.Zero)
		if err != nil {
			log.Fatalf("Ошибка создания стартового счета: %v", err)
		}
		log.Printf("Создан счет с ID %d", account.ID)
	}

	// Создаем сервисы, передавая хранилище явно
	accountService := services.NewAccountService(store)
	operationService := services.NewOperationService(store)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RateLimit(cfg.RateLimit.Limit, time.Minute))
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.Recovery)

	// Регистрируем маршруты контроллеров
	controllers.NewAccountController(accountService).RegisterRoutes(router)
	controllers.NewOperationController(operationService).RegisterRoutes(router)
	controllers.NewMetricsController().RegisterRoutes(router)

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
