package services

import (
	"time"

	"bankaccount/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationDTO представляет запись журнала операций в ответе API
type OperationDTO struct {
	ID                   uint            `json:"id"`
	OperationID          uuid.UUID       `json:"operationId"`
	Date                 time.Time       `json:"date"`
	OperationType        string          `json:"operationType"`
	Amount               decimal.Decimal `json:"amount"`
	PostOperationBalance decimal.Decimal `json:"postOperationBalance"`
}

// OperationService предоставляет доступ к журналу операций счета
type OperationService struct {
	store storage.AccountStore
}

// NewOperationService создает новый экземпляр OperationService
func NewOperationService(store storage.AccountStore) *OperationService {
	return &OperationService{store: store}
}

// GetAllAccountOperations возвращает все операции счета в порядке
// их создания. Пустой журнал — в том числе по несуществующему счету —
// сообщается как ErrNoOperationsForAccount
func (s *OperationService) GetAllAccountOperations(accountID uint) ([]OperationDTO, error) {
	operations, err := s.store.FindOperations(accountID)
	if err != nil {
		return nil, err
	}

	if len(operations) == 0 {
		return nil, ErrNoOperationsForAccount
	}

	// Конвертируем записи журнала в DTO
	dtos := make([]OperationDTO, 0, len(operations))
	for _, operation := range operations {
		dtos = append(dtos, OperationDTO{
			ID:                   operation.ID,
			OperationID:          operation.OperationID,
			Date:                 operation.Date,
			OperationType:        operation.OperationType,
			Amount:               operation.Amount,
			PostOperationBalance: operation.PostOperationBalance,
		})
	}

	return dtos, nil
}
