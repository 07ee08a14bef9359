package controllers

import (
	"net/http"

	"bankaccount/services"

	"github.com/gorilla/mux"
)

// OperationController обрабатывает запросы к журналу операций
type OperationController struct {
	operationService *services.OperationService
}

// NewOperationController создает новый экземпляр OperationController
func NewOperationController(operationService *services.OperationService) *OperationController {
	return &OperationController{operationService: operationService}
}

// GetAccountOperations обрабатывает запрос истории операций по счету
func (c *OperationController) GetAccountOperations(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Получаем историю операций
	operations, err := c.operationService.GetAllAccountOperations(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, operations)
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *OperationController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/operations/{id}/history", c.GetAccountOperations).Methods("GET")
}
