package services

import (
	"errors"

	"bankaccount/storage"
)

// Доменные ошибки сервисного слоя. Контроллеры преобразуют их
// в HTTP-статусы через errors.Is; сервисы никогда их не повторяют —
// все ошибки терминальные
var (
	// ErrInvalidAmount — сумма отсутствует или не положительна (400)
	ErrInvalidAmount = errors.New("некорректная сумма операции")

	// ErrInsufficientBalance — недостаточно средств для снятия (400)
	ErrInsufficientBalance = errors.New("недостаточно средств на счете")

	// ErrAccountNotFound — счет не найден (404), приходит из хранилища
	ErrAccountNotFound = storage.ErrAccountNotFound

	// ErrNoOperationsForAccount — по счету нет ни одной операции (404)
	ErrNoOperationsForAccount = errors.New("операции по счету не найдены")
)
