// internal/handlers/auth_handler.go
package handlers

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// LoginHandler обрабатывает форму входа. При успехе токен и флаг
// администратора сохраняются в сессии; при ошибке сессия не меняется,
// а пользователю показывается сообщение бэкенда.
func (h *Handlers) LoginHandler(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := strings.TrimSpace(c.PostForm("password"))
	if email == "" || password == "" {
		h.renderIndex(c, viewState{Alert: "Укажите почту и пароль."})
		return
	}

	resp, err := h.api.Login(c.Request.Context(), email, password)
	if err != nil {
		h.renderIndex(c, viewState{Alert: "Ошибка входа: " + userMessage(err, "сервер недоступен")})
		return
	}

	h.sess.SetFromLogin(email, resp.AccessToken, resp.IsAdmin)
	slog.Info("Вход выполнен", "email", email, "is_admin", resp.IsAdmin)
	h.renderIndex(c, viewState{Notice: "Вход выполнен"})
}

// RegisterHandler обрабатывает форму регистрации.
func (h *Handlers) RegisterHandler(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := strings.TrimSpace(c.PostForm("password"))
	if email == "" || password == "" {
		h.renderIndex(c, viewState{Alert: "Укажите почту и пароль."})
		return
	}

	if err := h.api.Register(c.Request.Context(), email, password); err != nil {
		h.renderIndex(c, viewState{Alert: "Ошибка регистрации: " + userMessage(err, "сервер недоступен")})
		return
	}
	h.renderIndex(c, viewState{Notice: "Вы успешно зарегистрировались! Теперь выполните вход."})
}

// LogoutHandler сбрасывает сессию. Административные элементы рендерятся
// из состояния сессии, поэтому после сброса они исчезают из разметки
// вместе с кнопками удаления.
func (h *Handlers) LogoutHandler(c *gin.Context) {
	h.sess.Clear()
	slog.Info("Выход выполнен")
	h.renderIndex(c, viewState{Notice: "Вы вышли из системы"})
}
