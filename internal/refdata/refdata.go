// internal/refdata/refdata.go
package refdata

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend — источник справочников; в бою это api.Client.
type Backend interface {
	Groups(ctx context.Context) ([]string, error)
	AllowedRooms(ctx context.Context) ([]string, error)
}

// Store кэширует редко меняющиеся справочники (список групп и аудиторий),
// чтобы не дёргать бэкенд на каждый рендер страницы. При наличии Redis кэш
// переживает перезапуск; без него работает кэш в памяти с тем же TTL.
type Store struct {
	backend Backend
	rdb     *redis.Client // nil — только память
	ttl     time.Duration

	mu     sync.Mutex
	groups cachedList
	rooms  cachedList
}

type cachedList struct {
	values    []string
	fetchedAt time.Time
}

func (c cachedList) fresh(ttl time.Duration, now time.Time) bool {
	return c.values != nil && now.Sub(c.fetchedAt) < ttl
}

func New(backend Backend, rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{backend: backend, rdb: rdb, ttl: ttl}
}

// Groups возвращает список групп, по возможности из кэша.
func (s *Store) Groups(ctx context.Context) ([]string, error) {
	return s.cached(ctx, "refdata:groups", &s.groups, s.backend.Groups)
}

// AllowedRooms возвращает список аудиторий, по возможности из кэша.
func (s *Store) AllowedRooms(ctx context.Context) ([]string, error) {
	return s.cached(ctx, "refdata:allowed_rooms", &s.rooms, s.backend.AllowedRooms)
}

func (s *Store) cached(ctx context.Context, key string, mem *cachedList, fetch func(context.Context) ([]string, error)) ([]string, error) {
	now := time.Now()

	s.mu.Lock()
	if mem.fresh(s.ttl, now) {
		values := mem.values
		s.mu.Unlock()
		return values, nil
	}
	s.mu.Unlock()

	if s.rdb != nil {
		cachedData, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var values []string
			if json.Unmarshal([]byte(cachedData), &values) == nil {
				s.remember(mem, values, now)
				return values, nil
			}
			slog.Warn("Не удалось разобрать кэшированный справочник", "key", key, "data", cachedData)
		} else if err != redis.Nil {
			slog.Error("Ошибка чтения из Redis", "error", err, "key", key)
		}
	}

	values, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.remember(mem, values, now)

	if s.rdb != nil {
		jsonData, err := json.Marshal(values)
		if err == nil {
			if err := s.rdb.Set(ctx, key, jsonData, s.ttl).Err(); err != nil {
				slog.Error("Не удалось записать справочник в кэш", "error", err, "key", key)
			}
		}
	}
	return values, nil
}

func (s *Store) remember(mem *cachedList, values []string, now time.Time) {
	s.mu.Lock()
	*mem = cachedList{values: values, fetchedAt: now}
	s.mu.Unlock()
}
