package cache

import (
	"sync"
	"time"
)

const (
	// запас до истечения, чтобы не отдать токен на грани TTL
	safetyMargin = 10 * time.Second
	// нижняя граница TTL, даже если провайдер сообщил меньше
	minLifetime = 30 * time.Second
)

// TokenCache — единственный слот bearer-токена курьерского провайдера.
// Мьютекс закрывает гонку двойного обновления под конкурентной нагрузкой.
type TokenCache struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// Get возвращает токен, если срок ещё не вышел.
func (c *TokenCache) Get(now time.Time) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" || !now.Before(c.expiry) {
		return "", false
	}
	return c.token, true
}

// Set сохраняет токен: TTL снизу ограничен minLifetime, срок годности
// уменьшен на safetyMargin.
func (c *TokenCache) Set(now time.Time, token string, ttl time.Duration) {
	if ttl < minLifetime {
		ttl = minLifetime
	}
	c.mu.Lock()
	c.token = token
	c.expiry = now.Add(ttl - safetyMargin)
	c.mu.Unlock()
}

// Invalidate сбрасывает слот (например, после 401 от провайдера).
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiry = time.Time{}
	c.mu.Unlock()
}

// Refresh возвращает закэшированный токен либо получает новый через fn,
// удерживая мьютекс на время обновления: конкурирующие запросы не
// устраивают шторм обновлений, а ждут один результат.
func (c *TokenCache) Refresh(now time.Time, fn func() (string, time.Duration, error)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && now.Before(c.expiry) {
		return c.token, nil
	}
	token, ttl, err := fn()
	if err != nil {
		return "", err
	}
	if ttl < minLifetime {
		ttl = minLifetime
	}
	c.token = token
	c.expiry = now.Add(ttl - safetyMargin)
	return token, nil
}
