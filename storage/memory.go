package storage

import (
	"sync"
	"sync/atomic"
	"time"

	"bankaccount/models"

	"github.com/shopspring/decimal"
)

// MemoryStore реализует AccountStore в памяти, без внешних зависимостей.
// Используется в тестах и при STORE_DRIVER=memory.
// У каждого счета собственный мьютекс: операции по одному счету
// линеаризуются, операции по разным счетам идут параллельно
type MemoryStore struct {
	mu            sync.RWMutex
	accounts      map[uint]*accountEntry
	nextAccountID uint
	operationSeq  uint64
}

// accountEntry — счет вместе с его мьютексом и журналом операций.
// Журнал принадлежит только своему счету и удаляется вместе с ним
type accountEntry struct {
	mu         sync.Mutex
	account    models.Account
	operations []models.Operation
}

// NewMemoryStore создает пустое хранилище счетов в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[uint]*accountEntry)}
}

// entry возвращает запись счета по ID
func (s *MemoryStore) entry(id uint) (*accountEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return e, nil
}

// FindByID возвращает копию счета по ID.
// Наружу всегда отдается копия — вызывающий не может изменить
// внутреннее состояние хранилища
func (s *MemoryStore) FindByID(id uint) (*models.Account, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cp := e.account
	return &cp, nil
}

// SaveAtomic выполняет apply под мьютексом счета. apply работает
// с копией: при ошибке состояние хранилища остается нетронутым
func (s *MemoryStore) SaveAtomic(id uint, apply func(account *models.Account) (*models.Operation, error)) (*models.Account, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Применяем операцию к копии счета
	cp := e.account
	operation, err := apply(&cp)
	if err != nil {
		return nil, err
	}

	// Назначаем записи журнала внутренний ID
	operation.ID = uint(atomic.AddUint64(&s.operationSeq, 1))

	// Фиксируем новый баланс и запись журнала как единое целое
	cp.UpdatedAt = time.Now()
	e.account = cp
	e.operations = append(e.operations, *operation)

	result := cp
	return &result, nil
}

// FindOperations возвращает копию журнала операций счета
// в порядке их создания
func (s *MemoryStore) FindOperations(accountID uint) ([]models.Operation, error) {
	e, err := s.entry(accountID)
	if err != nil {
		return []models.Operation{}, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	operations := make([]models.Operation, len(e.operations))
	copy(operations, e.operations)
	return operations, nil
}

// CreateAccount создает счет с начальным балансом и пустым журналом
func (s *MemoryStore) CreateAccount(initial decimal.Decimal) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAccountID++
	account := models.Account{
		ID:        s.nextAccountID,
		Balance:   initial,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.accounts[account.ID] = &accountEntry{account: account}

	cp := account
	return &cp, nil
}

// DeleteAccount удаляет счет вместе со всем его журналом операций —
// записи журнала не переживают свой счет
func (s *MemoryStore) DeleteAccount(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(s.accounts, id)
	return nil
}
