package storage

import (
	"errors"

	"bankaccount/models"

	"github.com/shopspring/decimal"
)

// ErrAccountNotFound — счет с указанным ID отсутствует в хранилище
var ErrAccountNotFound = errors.New("банковский счет не найден")

// AccountStore — хранилище банковских счетов и их журналов операций.
// Сериализуемость конкурентных операций по одному счету обеспечивает
// хранилище, а не сервисный слой: разные реализации делают это
// транзакцией базы данных или мьютексом счета
type AccountStore interface {
	// FindByID возвращает снимок счета по ID или ErrAccountNotFound
	FindByID(id uint) (*models.Account, error)

	// SaveAtomic — атомарный примитив read-modify-write: apply получает
	// актуальное состояние счета в монопольном владении и возвращает
	// новую запись журнала. Новый баланс и запись сохраняются как единое
	// целое; ошибка apply отменяет изменения полностью
	SaveAtomic(id uint, apply func(account *models.Account) (*models.Operation, error)) (*models.Account, error)

	// FindOperations возвращает операции счета в порядке их создания
	FindOperations(accountID uint) ([]models.Operation, error)

	// CreateAccount создает счет с начальным балансом и пустым журналом.
	// Используется при наполнении хранилища на старте и в тестах —
	// HTTP-маршрута создания счета нет
	CreateAccount(initial decimal.Decimal) (*models.Account, error)
}
