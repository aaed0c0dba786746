// internal/handlers/handlers.go
package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/bilart2005/mai-schedule-project/internal/api"
	"github.com/bilart2005/mai-schedule-project/internal/refdata"
	"github.com/bilart2005/mai-schedule-project/internal/session"
)

// Handlers держит зависимости всех обработчиков: API-клиент бэкенда,
// сессию и кэш справочников. Часы подменяемые — проверка
// "аудитория свободна сейчас" тестируется с фиксированным временем.
type Handlers struct {
	api  *api.Client
	sess *session.Session
	ref  *refdata.Store
	now  func() time.Time
}

func New(client *api.Client, sess *session.Session, ref *refdata.Store) *Handlers {
	return &Handlers{
		api:  client,
		sess: sess,
		ref:  ref,
		now:  time.Now,
	}
}

// userMessage переводит ошибку в текст для пользователя: сообщение бэкенда,
// когда оно есть, иначе общая формулировка действия. Сетевые ошибки и ответы
// без текста неразличимы для пользователя — обе ветки дают fallback.
func userMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	slog.Error(fallback, "error", err)
	return fallback
}
