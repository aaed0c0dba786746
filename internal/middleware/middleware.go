// internal/middleware/middleware.go
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bilart2005/mai-schedule-project/internal/session"
)

// RequestLogger помечает каждый запрос идентификатором и пишет строку
// структурированного лога по завершении обработки.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		start := time.Now()

		c.Next()

		slog.Info("Запрос обработан",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// SessionGuard сбрасывает сессию с истёкшим токеном до того, как обработчик
// успеет показать административные элементы или отправить запрос,
// который бэкенд всё равно отклонит.
func SessionGuard(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess.Expired(time.Now()) {
			slog.Info("Срок действия токена истёк, сессия сброшена")
			sess.Clear()
		}
		c.Next()
	}
}

// RequireLogin закрывает маршруты, требующие входа: без токена бэкенд
// всё равно ответит 401, но пользователю понятнее оказаться на главной.
func RequireLogin(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sess.LoggedIn() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin закрывает административные маршруты. Неадминистратора
// возвращаем на главную: формы, ведущие сюда, ему и так не рендерятся.
func RequireAdmin(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sess.IsAdmin() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
