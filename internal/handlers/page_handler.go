// internal/handlers/page_handler.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bilart2005/mai-schedule-project/internal/dates"
	"github.com/bilart2005/mai-schedule-project/internal/schedule"
	"github.com/bilart2005/mai-schedule-project/models"
)

// viewState — всё, что нужно шаблону index.html: состояние сессии,
// справочники для форм, текущий выбор и загруженные данные таблиц.
type viewState struct {
	Alert  string // красный баннер
	Notice string // зелёный баннер

	LoggedIn bool
	IsAdmin  bool
	Email    string

	Weeks  []models.WeekOption
	Rooms  []string
	Groups []string

	Room    string
	Week    int
	Group   string
	FreeNow bool

	Entries   []models.ScheduleEntry
	FreeSlots []models.FreeSlot

	// Баннер "свободна сейчас": RoomFree имеет смысл только при
	// FreeNowChecked.
	FreeNowChecked bool
	RoomFree       bool
}

// ShowIndexPage рендерит главную страницу без загруженного расписания.
func (h *Handlers) ShowIndexPage(c *gin.Context) {
	h.renderIndex(c, viewState{})
}

// renderIndex дополняет состояние общими полями (сессия, недели, справочники)
// и рендерит главную страницу. Недоступность справочников не валит страницу:
// формы рендерятся пустыми, а пользователь видит баннер.
func (h *Handlers) renderIndex(c *gin.Context, state viewState) {
	state.LoggedIn = h.sess.LoggedIn()
	state.IsAdmin = h.sess.IsAdmin()
	state.Email = h.sess.Email()
	state.Weeks = dates.WeekOptions(h.now().Year())

	ctx := c.Request.Context()
	rooms, err := h.ref.AllowedRooms(ctx)
	if err != nil {
		slog.Error("Не удалось загрузить список кабинетов", "error", err)
		if state.Alert == "" {
			state.Alert = "Не удалось загрузить список кабинетов"
		}
	}
	state.Rooms = rooms

	groups, err := h.ref.Groups(ctx)
	if err != nil {
		slog.Error("Не удалось загрузить список групп", "error", err)
	}
	state.Groups = groups

	c.HTML(http.StatusOK, "index.html", state)
}

// loadRoomView загружает и готовит таблицу занятости аудитории: общий список
// занятых слотов фильтруется по аудитории и неделе и сортируется по дате и
// времени.
func (h *Handlers) loadRoomView(ctx context.Context, room string, week int) ([]models.ScheduleEntry, error) {
	all, err := h.api.OccupiedRooms(ctx)
	if err != nil {
		return nil, err
	}
	entries := schedule.FilterRoomWeek(all, room, week)
	schedule.Sort(entries)
	return entries, nil
}
