package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики операций по счетам
	TotalDeposits     int64
	TotalWithdrawals  int64
	FailedOperations  int64
	OperationLatency  time.Duration
	LastOperationTime time.Time

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest записывает метрики HTTP-запроса
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordOperation записывает метрики операции по счету
func (m *Metrics) RecordOperation(operationType string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.OperationLatency += duration
	m.LastOperationTime = time.Now()

	if err != nil {
		m.FailedOperations++
		m.recordErrorLocked(err)
		return
	}

	switch operationType {
	case "DEPOSIT":
		m.TotalDeposits++
	case "WITHDRAWAL":
		m.TotalWithdrawals++
	}
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErrorLocked(err)
}

// recordErrorLocked выполняет запись ошибки, mu уже захвачен вызывающим
func (m *Metrics) recordErrorLocked(err error) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}
	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	errorTypes := make(map[string]int64, len(m.ErrorTypes))
	for k, v := range m.ErrorTypes {
		errorTypes[k] = v
	}

	return map[string]interface{}{
		"total_requests":      m.TotalRequests,
		"failed_requests":     m.FailedRequests,
		"average_latency":     m.AverageLatency.String(),
		"total_deposits":      m.TotalDeposits,
		"total_withdrawals":   m.TotalWithdrawals,
		"failed_operations":   m.FailedOperations,
		"last_operation_time": m.LastOperationTime,
		"error_count":         m.ErrorCount,
		"last_error_time":     m.LastErrorTime,
		"error_types":         errorTypes,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.TotalDeposits = 0
	m.TotalWithdrawals = 0
	m.FailedOperations = 0
	m.OperationLatency = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
