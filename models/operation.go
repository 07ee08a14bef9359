package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Типы операций по счету
const (
	OperationTypeDeposit    = "DEPOSIT"
	OperationTypeWithdrawal = "WITHDRAWAL"
)

// Operation представляет неизменяемую запись журнала операций:
// одно пополнение или снятие и снимок баланса счета сразу после него.
// Записи только добавляются, никогда не изменяются и не переупорядочиваются
type Operation struct {
	ID uint `gorm:"primaryKey;autoIncrement"`
	// Внешний идентификатор операции для трассировки
	OperationID   uuid.UUID       `gorm:"column:operation_id;type:uuid;unique;not null"`
	AccountID     uint            `gorm:"column:account_id;not null;index"`
	Date          time.Time       `gorm:"column:date;not null"`
	OperationType string          `gorm:"column:operation_type;not null;size:20"` // DEPOSIT, WITHDRAWAL
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
	// Снимок баланса фиксируется в момент операции и никогда не пересчитывается
	PostOperationBalance decimal.Decimal `gorm:"column:post_operation_balance;type:decimal(20,2);not null"`
}

func (Operation) TableName() string {
	return "operations"
}
