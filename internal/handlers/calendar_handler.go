// internal/handlers/calendar_handler.go
package handlers

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// SyncCalendarHandler запускает на бэкенде синхронизацию расписания группы
// с Google Calendar. Сама интеграция живёт на бэкенде, фронтенд только
// передаёт название группы и показывает результат.
func (h *Handlers) SyncCalendarHandler(c *gin.Context) {
	group := strings.TrimSpace(c.PostForm("group"))
	if group == "" {
		h.renderIndex(c, viewState{Alert: "Укажите группу"})
		return
	}

	if err := h.api.SyncCalendar(c.Request.Context(), group); err != nil {
		h.renderIndex(c, viewState{
			Alert: "Ошибка синхронизации: " + userMessage(err, "сервер недоступен"),
			Group: group,
		})
		return
	}
	slog.Info("Расписание группы отправлено в Google Calendar", "group", group)
	h.renderIndex(c, viewState{
		Notice: "Расписание группы " + group + " добавлено в Google Calendar",
		Group:  group,
	})
}
