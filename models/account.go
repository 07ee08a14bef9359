package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account представляет банковский счет: текущий баланс и журнал операций
type Account struct {
	ID uint `gorm:"primaryKey;autoIncrement"`
	// Баланс хранится как decimal, а не float — денежные суммы
	// не должны накапливать двоичную погрешность
	Balance decimal.Decimal `gorm:"column:balance;type:decimal(20,2);not null;default:0.0"`
	// Операция не существует отдельно от своего счета:
	// при удалении счета база удаляет и его операции (ON DELETE CASCADE)
	Operations []Operation `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time   `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time   `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (Account) TableName() string {
	return "accounts"
}
