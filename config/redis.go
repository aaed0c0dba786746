// config/redis.go
package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis подключается к Redis для кэша справочников (группы, аудитории).
// Если адрес не задан или Redis недоступен — возвращается nil, и приложение
// работает с кэшем в памяти.
func ConnectRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		slog.Warn("Переменная окружения REDIS_ADDR не установлена, кэш справочников будет в памяти.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Проверяем соединение
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Не удалось подключиться к Redis", "error", err)
		return nil
	}

	slog.Info("Успешное подключение к Redis!")
	return rdb
}
