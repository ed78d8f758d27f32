package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Context состояние диалога переноса записи с клиентом.
// Хранится во внешнем кеше с TTL: рестарт сервиса не теряет диалоги,
// а истекший контекст исчезает сам.
type Context struct {
	TenantID      int64     `json:"tenantId"`
	CustomerPhone string    `json:"customerPhone"`
	AppointmentID int64     `json:"appointmentId"`
	Suggestions   []Slot    `json:"suggestions"`
	MessageID     string    `json:"messageId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Slot предложенный клиенту вариант переноса
type Slot struct {
	Date  string `json:"date"`  // формат 2006-01-02
	Time  string `json:"time"`  // формат 15:04
	Index int    `json:"index"` // порядковый номер в сообщении клиенту
}

// Store хранилище контекстов диалогов поверх Redis
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище контекстов с заданным TTL
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Put сохраняет контекст диалога, перезаписывая предыдущий для этого клиента
func (s *Store) Put(ctx context.Context, conv *Context) error {
	payload, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeContext, err)
	}

	key := contextKey(conv.TenantID, conv.CustomerPhone)

	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrCacheSet, key, err)
	}

	return nil
}

// Get получает контекст диалога клиента
func (s *Store) Get(ctx context.Context, tenantID int64, customerPhone string) (*Context, error) {
	key := contextKey(tenantID, customerPhone)

	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: key %s", ErrContextNotFound, key)
		}
		return nil, fmt.Errorf("%w: key %s: %v", ErrCacheGet, key, err)
	}

	var conv Context
	if err := json.Unmarshal(payload, &conv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeContext, err)
	}

	return &conv, nil
}

// Delete удаляет контекст диалога после завершения
func (s *Store) Delete(ctx context.Context, tenantID int64, customerPhone string) error {
	key := contextKey(tenantID, customerPhone)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrCacheDelete, key, err)
	}

	return nil
}

func contextKey(tenantID int64, customerPhone string) string {
	return fmt.Sprintf("conversation:tenant:%d:phone:%s", tenantID, customerPhone)
}
