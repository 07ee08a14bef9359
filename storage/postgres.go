package storage

import (
	"database/sql"
	"errors"
	"time"

	"bankaccount/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore реализует AccountStore поверх GORM и PostgreSQL
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore создает новый экземпляр PostgresStore
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindByID возвращает счет по ID
func (s *PostgresStore) FindByID(id uint) (*models.Account, error) {
	var account models.Account

	// Ищем счет в базе данных
	if err := s.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

// SaveAtomic выполняет read-modify-write над счетом в одной транзакции
// уровня SERIALIZABLE. Строка счета дополнительно берется под блокировку,
// поэтому конкурирующие операции по одному счету выстраиваются в очередь,
// а операции по разным счетам друг другу не мешают
func (s *PostgresStore) SaveAtomic(id uint, apply func(account *models.Account) (*models.Operation, error)) (*models.Account, error) {
	var updated *models.Account

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Читаем счет под блокировкой строки
		var account models.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		// Решение принимает вызывающий: проверка инвариантов,
		// расчет нового баланса, формирование записи журнала
		operation, err := apply(&account)
		if err != nil {
			return err
		}

		// Сохраняем новый баланс
		account.UpdatedAt = time.Now()
		if err := tx.Save(&account).Error; err != nil {
			return err
		}

		// Добавляем запись в журнал операций
		if err := tx.Create(operation).Error; err != nil {
			return err
		}

		updated = &account
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		return nil, err
	}

	return updated, nil
}

// FindOperations возвращает операции счета в порядке их создания
func (s *PostgresStore) FindOperations(accountID uint) ([]models.Operation, error) {
	var operations []models.Operation

	if err := s.db.Where("account_id = ?", accountID).
		Order("id ASC").
		Find(&operations).Error; err != nil {
		return nil, err
	}

	return operations, nil
}

// CreateAccount создает счет с начальным балансом
func (s *PostgresStore) CreateAccount(initial decimal.Decimal) (*models.Account, error) {
	account := &models.Account{
		Balance:   initial,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, err
	}

	return account, nil
}
