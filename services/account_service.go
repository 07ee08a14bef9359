package services

import (
	"fmt"
	"strings"
	"time"

	"bankaccount/models"
	"bankaccount/storage"
	"bankaccount/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountDTO представляет счет в ответе API
type AccountDTO struct {
	ID      uint            `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

// operationRequest представляет данные операции над балансом счета.
// Amount — указатель: отсутствующая в запросе сумма приходит как nil
type operationRequest struct {
	AccountID     uint
	Amount        *decimal.Decimal `validate:"required"`
	OperationType string           `validate:"required,oneof=DEPOSIT WITHDRAWAL"`
}

// AccountService реализует операции над балансом счета: пополнение,
// снятие с контролем достаточности средств и выписку.
// Хранилище передается при создании; изоляцию конкурентных операций
// по одному счету обеспечивает его атомарный примитив SaveAtomic
type AccountService struct {
	store     storage.AccountStore
	validator *validator.Validate
}

// NewAccountService создает новый экземпляр AccountService
func NewAccountService(store storage.AccountStore) *AccountService {
	return &AccountService{
		store:     store,
		validator: validator.New(),
	}
}

// validateRequest проверяет данные операции. Сумма проверяется
// до поиска счета: некорректная сумма по несуществующему счету
// сообщается как ErrInvalidAmount, а не ErrAccountNotFound
func (s *AccountService) validateRequest(request operationRequest) error {
	if err := s.validator.Struct(request); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "oneof":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
			}
		}
		return fmt.Errorf("%w: %s", ErrInvalidAmount, strings.Join(errorMessages, "; "))
	}

	// Ровно ноль — тоже некорректная сумма, для обоих типов операций
	if !request.Amount.IsPositive() {
		return fmt.Errorf("%w: сумма должна быть больше 0", ErrInvalidAmount)
	}

	return nil
}

// newOperation формирует неизменяемую запись журнала операций.
// Снимок баланса после операции фиксируется здесь и никогда
// не пересчитывается
func (s *AccountService) newOperation(account *models.Account, operationType string, amount decimal.Decimal) *models.Operation {
	return &models.Operation{
		OperationID:          uuid.New(),
		AccountID:            account.ID,
		Date:                 time.Now(),
		OperationType:        operationType,
		Amount:               amount,
		PostOperationBalance: account.Balance,
	}
}

// toAccountDTO конвертирует счет в DTO
func toAccountDTO(account *models.Account) *AccountDTO {
	return &AccountDTO{
		ID:      account.ID,
		Balance: account.Balance,
	}
}

// Deposit пополняет счет и добавляет запись DEPOSIT в журнал операций
func (s *AccountService) Deposit(id uint, amount *decimal.Decimal) (*AccountDTO, error) {
	start := time.Now()

	// Валидируем сумму до поиска счета
	if err := s.validateRequest(operationRequest{
		AccountID:     id,
		Amount:        amount,
		OperationType: models.OperationTypeDeposit,
	}); err != nil {
		utils.GetMetrics().RecordOperation(models.OperationTypeDeposit, time.Since(start), err)
		return nil, err
	}

	// Читаем, решаем и записываем атомарно внутри примитива хранилища
	account, err := s.store.SaveAtomic(id, func(account *models.Account) (*models.Operation, error) {
		account.Balance = account.Balance.Add(*amount)
		return s.newOperation(account, models.OperationTypeDeposit, *amount), nil
	})
	utils.GetMetrics().RecordOperation(models.OperationTypeDeposit, time.Since(start), err)
	utils.LogOperation(models.OperationTypeDeposit, start, err)
	if err != nil {
		return nil, err
	}

	return toAccountDTO(account), nil
}

// Withdraw снимает средства со счета и добавляет запись WITHDRAWAL
// в журнал операций. Снятие ровно всего баланса допустимо — баланс
// может стать ровно нулем, но не отрицательным
func (s *AccountService) Withdraw(id uint, amount *decimal.Decimal) (*AccountDTO, error) {
	start := time.Now()

	// Валидируем сумму до поиска счета
	if err := s.validateRequest(operationRequest{
		AccountID:     id,
		Amount:        amount,
		OperationType: models.OperationTypeWithdrawal,
	}); err != nil {
		utils.GetMetrics().RecordOperation(models.OperationTypeWithdrawal, time.Since(start), err)
		return nil, err
	}

	account, err := s.store.SaveAtomic(id, func(account *models.Account) (*models.Operation, error) {
		// Проверяем достаточность средств по актуальному балансу
		if account.Balance.LessThan(*amount) {
			return nil, ErrInsufficientBalance
		}
		account.Balance = account.Balance.Sub(*amount)
		return s.newOperation(account, models.OperationTypeWithdrawal, *amount), nil
	})
	utils.GetMetrics().RecordOperation(models.OperationTypeWithdrawal, time.Since(start), err)
	utils.LogOperation(models.OperationTypeWithdrawal, start, err)
	if err != nil {
		return nil, err
	}

	return toAccountDTO(account), nil
}

// GetStatement возвращает выписку по счету: ID и текущий баланс.
// Состояние счета не изменяется
func (s *AccountService) GetStatement(id uint) (*AccountDTO, error) {
	account, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}

	return toAccountDTO(account), nil
}
