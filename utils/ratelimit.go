package utils

import (
	"sync"
	"time"
)

// RateLimiter ограничивает частоту запросов по ключу (IP клиента)
// в рамках фиксированного окна
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
}

// window — счетчик запросов ключа в текущем окне
type window struct {
	count   int
	startAt time.Time
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
}

// Allow проверяет, разрешен ли запрос для ключа, и учитывает его
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w := rl.current(key)
	if w.count >= rl.limit {
		return false
	}

	w.count++
	return true
}

// Remaining возвращает количество оставшихся запросов в окне
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.limit - rl.current(key).count
}

// ResetAt возвращает время окончания текущего окна
func (rl *RateLimiter) ResetAt(key string) time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.current(key).startAt.Add(rl.period)
}

// current возвращает окно ключа, открывая новое при истечении старого.
// mu уже захвачен вызывающим
func (rl *RateLimiter) current(key string) *window {
	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.startAt) >= rl.period {
		w = &window{startAt: now}
		rl.windows[key] = w
	}
	return w
}
