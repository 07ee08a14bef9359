package services

import (
	"errors"
	"sync"
	"testing"

	"bankaccount/models"
	"bankaccount/storage"

	"github.com/shopspring/decimal"
)

// newTestService создает сервис поверх хранилища в памяти
// и счет с указанным начальным балансом
func newTestService(t *testing.T, initial string) (*AccountService, storage.AccountStore, uint) {
	t.Helper()

	store := storage.NewMemoryStore()
	account, err := store.CreateAccount(decimal.RequireFromString(initial))
	if err != nil {
		t.Fatalf("не удалось создать счет: %v", err)
	}

	return NewAccountService(store), store, account.ID
}

// amount упаковывает строку в указатель на decimal
func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestDepositUpdatesBalanceAndAppendsOperation(t *testing.T) {
	service, store, id := newTestService(t, "1000.0")

	// Пополняем счет
	dto, err := service.Deposit(id, amount("200.0"))
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	// Новый баланс = старый + сумма
	if !dto.Balance.Equal(decimal.RequireFromString("1200.0")) {
		t.Errorf("wrong balance: got %v want 1200", dto.Balance)
	}

	// В журнале ровно одна запись DEPOSIT со снимком нового баланса
	operations, err := store.FindOperations(id)
	if err != nil {
		t.Fatalf("find operations failed: %v", err)
	}
	if len(operations) != 1 {
		t.Fatalf("wrong operations count: got %d want 1", len(operations))
	}
	op := operations[0]
	if op.OperationType != models.OperationTypeDeposit {
		t.Errorf("wrong operation type: got %v want DEPOSIT", op.OperationType)
	}
	if !op.Amount.Equal(decimal.RequireFromString("200.0")) {
		t.Errorf("wrong operation amount: got %v want 200", op.Amount)
	}
	if !op.PostOperationBalance.Equal(dto.Balance) {
		t.Errorf("wrong post-operation balance: got %v want %v", op.PostOperationBalance, dto.Balance)
	}
	if op.Date.IsZero() {
		t.Error("operation date is not set")
	}
}

// Сценарий: 1000 → пополнение 200 → отказ снятия 1500 → снятие 1200 в ноль
func TestWithdrawScenario(t *testing.T) {
	service, store, id := newTestService(t, "1000.0")

	// Пополняем на 200
	dto, err := service.Deposit(id, amount("200.0"))
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if !dto.Balance.Equal(decimal.RequireFromString("1200.0")) {
		t.Fatalf("wrong balance after deposit: got %v want 1200", dto.Balance)
	}

	// Снятие 1500 превышает баланс — отказ без изменения состояния
	if _, err := service.Withdraw(id, amount("1500.0")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("wrong error: got %v want ErrInsufficientBalance", err)
	}
	statement, err := service.GetStatement(id)
	if err != nil {
		t.Fatalf("statement failed: %v", err)
	}
	if !statement.Balance.Equal(decimal.RequireFromString("1200.0")) {
		t.Errorf("balance changed after failed withdraw: got %v want 1200", statement.Balance)
	}

	// Снятие ровно всего баланса допустимо
	dto, err = service.Withdraw(id, amount("1200.0"))
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if !dto.Balance.IsZero() {
		t.Errorf("wrong balance after full withdraw: got %v want 0", dto.Balance)
	}

	// В журнале две записи: DEPOSIT и WITHDRAWAL, отказ следа не оставил
	operations, err := store.FindOperations(id)
	if err != nil {
		t.Fatalf("find operations failed: %v", err)
	}
	if len(operations) != 2 {
		t.Fatalf("wrong operations count: got %d want 2", len(operations))
	}
	if operations[1].OperationType != models.OperationTypeWithdrawal {
		t.Errorf("wrong operation type: got %v want WITHDRAWAL", operations[1].OperationType)
	}
	if !operations[1].PostOperationBalance.IsZero() {
		t.Errorf("wrong post-operation balance: got %v want 0", operations[1].PostOperationBalance)
	}
}

// Повторный отказ снятия не изменяет состояние
func TestFailedWithdrawIsRepeatable(t *testing.T) {
	service, store, id := newTestService(t, "100.0")

	for i := 0; i < 3; i++ {
		if _, err := service.Withdraw(id, amount("150.0")); !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("wrong error on attempt %d: got %v want ErrInsufficientBalance", i, err)
		}
	}

	statement, err := service.GetStatement(id)
	if err != nil {
		t.Fatalf("statement failed: %v", err)
	}
	if !statement.Balance.Equal(decimal.RequireFromString("100.0")) {
		t.Errorf("balance changed: got %v want 100", statement.Balance)
	}
	operations, err := store.FindOperations(id)
	if err != nil {
		t.Fatalf("find operations failed: %v", err)
	}
	if len(operations) != 0 {
		t.Errorf("failed withdraw recorded operations: got %d want 0", len(operations))
	}
}

func TestInvalidAmount(t *testing.T) {
	service, store, id := newTestService(t, "1000.0")

	cases := []struct {
		name   string
		amount *decimal.Decimal
	}{
		{"отсутствующая сумма", nil},
		{"нулевая сумма", amount("0")},
		{"отрицательная сумма", amount("-50.0")},
	}

	for _, tc := range cases {
		if _, err := service.Deposit(id, tc.amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("deposit, %s: got %v want ErrInvalidAmount", tc.name, err)
		}
		if _, err := service.Withdraw(id, tc.amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("withdraw, %s: got %v want ErrInvalidAmount", tc.name, err)
		}
	}

	// Состояние не изменилось
	operations, err := store.FindOperations(id)
	if err != nil {
		t.Fatalf("find operations failed: %v", err)
	}
	if len(operations) != 0 {
		t.Errorf("invalid amounts recorded operations: got %d want 0", len(operations))
	}
}

// Сумма проверяется до поиска счета: некорректная сумма
// по несуществующему счету — это ErrInvalidAmount
func TestInvalidAmountCheckedBeforeAccountLookup(t *testing.T) {
	service, _, _ := newTestService(t, "0")
	const missingID = 9999

	if _, err := service.Deposit(missingID, amount("-1")); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("deposit: got %v want ErrInvalidAmount", err)
	}
	if _, err := service.Withdraw(missingID, nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("withdraw: got %v want ErrInvalidAmount", err)
	}
}

func TestUnknownAccount(t *testing.T) {
	service, _, _ := newTestService(t, "0")
	const missingID = 9999

	if _, err := service.Deposit(missingID, amount("10")); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("deposit: got %v want ErrAccountNotFound", err)
	}
	if _, err := service.Withdraw(missingID, amount("10")); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("withdraw: got %v want ErrAccountNotFound", err)
	}
	if _, err := service.GetStatement(missingID); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("statement: got %v want ErrAccountNotFound", err)
	}
}

// N конкурентных пополнений на a дают ровно b + N*a и N записей журнала
func TestConcurrentDeposits(t *testing.T) {
	service, store, id := newTestService(t, "100.0")

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if _, err := service.Deposit(id, amount("10.0")); err != nil {
				t.Errorf("concurrent deposit failed: %v", err)
			}
		}()
	}
	wg.Wait()

	statement, err := service.GetStatement(id)
	if err != nil {
		t.Fatalf("statement failed: %v", err)
	}
	want := decimal.RequireFromString("600.0") // 100 + 50*10
	if !statement.Balance.Equal(want) {
		t.Errorf("wrong final balance: got %v want %v", statement.Balance, want)
	}

	operations, err := store.FindOperations(id)
	if err != nil {
		t.Fatalf("find operations failed: %v", err)
	}
	if len(operations) != goroutines {
		t.Errorf("wrong operations count: got %d want %d", len(operations), goroutines)
	}

	// Журнал линеаризован: баланс последней записи равен итоговому
	last := operations[len(operations)-1]
	if !last.PostOperationBalance.Equal(statement.Balance) {
		t.Errorf("last post-operation balance mismatch: got %v want %v", last.PostOperationBalance, statement.Balance)
	}
}

// Конкурентные снятия не могут увести баланс в минус: из десяти снятий
// по 10 со счета с балансом 30 успешны ровно три
func TestConcurrentWithdrawalsNoLostUpdate(t *testing.T) {
	service, store, id := newTestService(t, "30.0")

	const goroutines = 10
	var wg sync.WaitGroup
	results := make(chan error, goroutines)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := service.Withdraw(id, amount("10.0"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrInsufficientBalance) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 3 {
		t.Errorf("wrong succeeded count: got %d want 3", succeeded)
	}

	statement, err := service.GetStatement(id)
	if err != nil {
		t.Fatalf("statement failed: %v", err)
	}
	if !statement.Balance.IsZero() {
		t.Errorf("wrong final balance: got %v want 0", statement.Balance)
	}
	operations, err := store.FindOperations(id)
	if err != nil {
		t.Fatalf("find operations failed: %v", err)
	}
	if len(operations) != 3 {
		t.Errorf("wrong operations count: got %d want 3", len(operations))
	}
}
