// internal/handlers/schedule_handler.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bilart2005/mai-schedule-project/internal/dates"
	"github.com/bilart2005/mai-schedule-project/internal/schedule"
	"github.com/bilart2005/mai-schedule-project/models"
)

// RoomScheduleHandler показывает занятость аудитории на учебной неделе.
// Аудитория и неделя обязательны; при включённом флажке "свободна сейчас"
// над таблицей появляется баннер занятости на текущий момент.
func (h *Handlers) RoomScheduleHandler(c *gin.Context) {
	room := c.Query("room")
	week, weekOK := parseWeek(c.Query("week"))
	freeNow := c.Query("free_now") != ""

	if room == "" || !weekOK {
		h.renderIndex(c, viewState{Alert: "Укажите и кабинет, и неделю."})
		return
	}

	entries, err := h.loadRoomView(c.Request.Context(), room, week)
	if err != nil {
		h.renderIndex(c, viewState{
			Alert: userMessage(err, "Не удалось загрузить расписание кабинета"),
			Room:  room, Week: week, FreeNow: freeNow,
		})
		return
	}

	state := viewState{
		Room: room, Week: week, FreeNow: freeNow,
		Entries: entries,
	}
	if freeNow {
		state.FreeNowChecked = true
		state.RoomFree = schedule.RoomFreeAt(entries, h.now())
	}
	h.renderIndex(c, state)
}

// GroupScheduleHandler показывает расписание группы на учебной неделе.
func (h *Handlers) GroupScheduleHandler(c *gin.Context) {
	group := strings.TrimSpace(c.Query("group"))
	week, weekOK := parseWeek(c.Query("week"))

	if group == "" || !weekOK {
		h.renderIndex(c, viewState{Alert: "Укажите и группу, и неделю."})
		return
	}

	entries, err := h.api.Schedule(c.Request.Context(), group, week)
	if err != nil {
		h.renderIndex(c, viewState{
			Alert: userMessage(err, "Не удалось загрузить расписание группы"),
			Group: group, Week: week,
		})
		return
	}
	schedule.Sort(entries)

	h.renderIndex(c, viewState{Group: group, Week: week, Entries: entries})
}

// FreeRoomsHandler показывает свободные слоты аудиторий на неделе.
// Аудиторию можно не указывать — тогда перечисляются все.
func (h *Handlers) FreeRoomsHandler(c *gin.Context) {
	room := c.Query("room")
	week, weekOK := parseWeek(c.Query("week"))
	if !weekOK {
		h.renderIndex(c, viewState{Alert: "Укажите неделю."})
		return
	}

	slots, err := h.api.FreeRooms(c.Request.Context())
	if err != nil {
		h.renderIndex(c, viewState{
			Alert: userMessage(err, "Не удалось загрузить свободные аудитории"),
			Room:  room, Week: week,
		})
		return
	}

	h.renderIndex(c, viewState{
		Room: room, Week: week,
		FreeSlots: schedule.FilterFreeSlots(slots, room, week),
	})
}

// AddEntryHandler добавляет занятие. Перед отправкой расписание группы
// перечитывается и совпадение по дате, интервалу и аудитории отклоняется
// без POST. Проверка неатомарна (см. schedule.IsDuplicate).
func (h *Handlers) AddEntryHandler(c *gin.Context) {
	groupName := strings.TrimSpace(c.PostForm("group_name"))
	subject := strings.TrimSpace(c.PostForm("subject"))
	teacher := strings.TrimSpace(c.PostForm("teacher"))
	rawDate := strings.TrimSpace(c.PostForm("date"))
	startTime := c.PostForm("start_time")
	endTime := c.PostForm("end_time")
	room := c.PostForm("room")
	week, weekOK := parseWeek(c.PostForm("week"))
	eventType := c.PostForm("event_type")
	recurrence := c.PostForm("recurrence_pattern")

	if groupName == "" || subject == "" || teacher == "" || rawDate == "" ||
		startTime == "" || endTime == "" || room == "" || !weekOK {
		h.renderIndex(c, viewState{Alert: "Пожалуйста, заполните все поля формы добавления."})
		return
	}

	// Дата из формы приходит как "ДД.ММ.ГГГГ" и превращается в "Пн, 19 мая";
	// уже локализованная строка проходит как есть.
	day := rawDate
	if picked, err := dates.ParsePickerDate(rawDate); err == nil {
		day = dates.FormatDay(picked)
	}
	if eventType == "" {
		eventType = "разовое"
	}

	entry := models.ScheduleEntry{
		Week:              week,
		GroupName:         groupName,
		Subject:           subject,
		Teacher:           teacher,
		Room:              room,
		Day:               day,
		StartTime:         startTime,
		EndTime:           endTime,
		EventType:         eventType,
		RecurrencePattern: recurrence,
	}

	ctx := c.Request.Context()
	existing, err := h.api.Schedule(ctx, groupName, week)
	if err != nil {
		h.renderIndex(c, viewState{
			Alert: "Не удалось проверить дубли", Room: room, Week: week,
		})
		return
	}
	if schedule.IsDuplicate(existing, entry) {
		h.renderIndex(c, viewState{
			Alert: "Такая пара уже существует в расписании!", Room: room, Week: week,
		})
		return
	}

	if err := h.api.CreateSchedule(ctx, entry); err != nil {
		h.renderIndex(c, viewState{
			Alert: "Ошибка добавления: " + userMessage(err, "сервер недоступен"),
			Room:  room, Week: week,
		})
		return
	}

	h.reloadRoomView(c, room, week, "Пара добавлена")
}

// EditEntryHandler обновляет поля занятия; пустые поля формы не отправляются.
func (h *Handlers) EditEntryHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.renderIndex(c, viewState{Alert: "Некорректный идентификатор занятия."})
		return
	}
	room := c.PostForm("view_room")
	week, _ := parseWeek(c.PostForm("view_week"))

	fields := map[string]any{}
	for _, key := range []string{"subject", "teacher", "room", "day", "start_time", "end_time", "event_type", "recurrence_pattern"} {
		if v := strings.TrimSpace(c.PostForm(key)); v != "" {
			fields[key] = v
		}
	}
	if len(fields) == 0 {
		h.renderIndex(c, viewState{Alert: "Нет данных для обновления", Room: room, Week: week})
		return
	}

	if err := h.api.UpdateSchedule(c.Request.Context(), id, fields); err != nil {
		h.renderIndex(c, viewState{
			Alert: "Ошибка обновления: " + userMessage(err, "сервер недоступен"),
			Room:  room, Week: week,
		})
		return
	}
	h.reloadRoomView(c, room, week, "Занятие обновлено")
}

// DeleteEntryHandler удаляет занятие и перечитывает текущую таблицу.
// Подтверждение запрашивает форма в шаблоне; до успешного ответа бэкенда
// на фронтенде ничего не меняется, откатывать нечего.
func (h *Handlers) DeleteEntryHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.renderIndex(c, viewState{Alert: "Некорректный идентификатор занятия."})
		return
	}
	room := c.PostForm("view_room")
	week, _ := parseWeek(c.PostForm("view_week"))

	if err := h.api.DeleteSchedule(c.Request.Context(), id); err != nil {
		h.renderIndex(c, viewState{
			Alert: userMessage(err, "Ошибка при удалении"),
			Room:  room, Week: week,
		})
		return
	}
	h.reloadRoomView(c, room, week, "Запись удалена")
}

// reloadRoomView перечитывает таблицу аудитории после успешного изменения.
// Само изменение уже применилось, поэтому неудача перезагрузки показывается
// отдельным сообщением, а не как ошибка действия.
func (h *Handlers) reloadRoomView(c *gin.Context, room string, week int, notice string) {
	if room == "" || week == 0 {
		h.renderIndex(c, viewState{Notice: notice})
		return
	}
	entries, err := h.loadRoomView(c.Request.Context(), room, week)
	if err != nil {
		h.renderIndex(c, viewState{
			Notice: notice,
			Alert:  "Не удалось обновить таблицу: " + userMessage(err, "сервер недоступен"),
			Room:   room, Week: week,
		})
		return
	}
	h.renderIndex(c, viewState{Notice: notice, Room: room, Week: week, Entries: entries})
}

func parseWeek(s string) (int, bool) {
	week, err := strconv.Atoi(s)
	if err != nil || week < 1 || week > dates.TermWeeks {
		return 0, false
	}
	return week, true
}
