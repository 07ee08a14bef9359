package controllers

import (
	"net/http"
	"strconv"

	"bankaccount/services"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// AccountController обрабатывает запросы по банковским счетам
type AccountController struct {
	accountService *services.AccountService
}

// NewAccountController создает новый экземпляр AccountController
func NewAccountController(accountService *services.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

// parseAccountID извлекает ID счета из пути запроса.
// Нечисловой ID не может указывать ни на один счет
func parseAccountID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, services.ErrAccountNotFound
	}
	return uint(id), nil
}

// parseAmount извлекает сумму из query-параметра amount.
// Отсутствующий или нечитаемый параметр возвращается как nil —
// решение о корректности суммы принимает сервисный слой
func parseAmount(r *http.Request) *decimal.Decimal {
	raw := r.URL.Query().Get("amount")
	if raw == "" {
		return nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &amount
}

// GetStatement обрабатывает запрос выписки по счету
func (c *AccountController) GetStatement(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Получаем выписку
	account, err := c.accountService.GetStatement(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Deposit обрабатывает запрос на пополнение счета
func (c *AccountController) Deposit(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Пополняем счет
	account, err := c.accountService.Deposit(id, parseAmount(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Withdraw обрабатывает запрос на снятие средств со счета
func (c *AccountController) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Снимаем средства
	account, err := c.accountService.Withdraw(id, parseAmount(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *AccountController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/accounts/{id}/statement", c.GetStatement).Methods("GET")
	router.HandleFunc("/api/accounts/{id}/deposit", c.Deposit).Methods("POST")
	router.HandleFunc("/api/accounts/{id}/withdraw", c.Withdraw).Methods("POST")
}
