package controllers

import (
	"net/http"

	"bankaccount/utils"

	"github.com/gorilla/mux"
)

// MetricsController отдает снимок метрик приложения
type MetricsController struct{}

// NewMetricsController создает новый экземпляр MetricsController
func NewMetricsController() *MetricsController {
	return &MetricsController{}
}

// GetMetrics обрабатывает запрос снимка метрик
func (c *MetricsController) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utils.GetMetrics().GetMetricsSnapshot())
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *MetricsController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/metrics", c.GetMetrics).Methods("GET")
}
