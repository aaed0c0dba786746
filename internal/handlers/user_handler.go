// internal/handlers/user_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bilart2005/mai-schedule-project/models"
)

// usersViewState — данные страницы управления пользователями.
type usersViewState struct {
	Alert  string
	Notice string
	Users  []models.User
}

// ShowUsersPage показывает список пользователей с кнопками назначения
// администратором. Маршрут закрыт middleware.RequireAdmin.
func (h *Handlers) ShowUsersPage(c *gin.Context) {
	h.renderUsers(c, usersViewState{})
}

func (h *Handlers) renderUsers(c *gin.Context, state usersViewState) {
	users, err := h.api.Users(c.Request.Context())
	if err != nil && state.Alert == "" {
		state.Alert = userMessage(err, "Ошибка загрузки пользователей")
	}
	state.Users = users
	c.HTML(http.StatusOK, "users.html", state)
}

// PromoteUserHandler назначает пользователя администратором и перечитывает
// список. Если назначение прошло, а перечитать список не удалось,
// показывается отдельное сообщение — само назначение уже состоялось.
func (h *Handlers) PromoteUserHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.renderUsers(c, usersViewState{Alert: "Некорректный идентификатор пользователя."})
		return
	}

	if err := h.api.PromoteUser(c.Request.Context(), id); err != nil {
		h.renderUsers(c, usersViewState{Alert: userMessage(err, "Не удалось назначить")})
		return
	}
	slog.Info("Пользователь назначен администратором", "user_id", id)

	users, err := h.api.Users(c.Request.Context())
	if err != nil {
		slog.Error("Ошибка при обновлении списка пользователей", "error", err)
		c.HTML(http.StatusOK, "users.html", usersViewState{
			Alert: "Пользователь назначен, но не удалось обновить список",
		})
		return
	}
	c.HTML(http.StatusOK, "users.html", usersViewState{
		Notice: "Пользователь назначен админом",
		Users:  users,
	})
}
