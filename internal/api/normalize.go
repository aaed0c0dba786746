package api

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bilart2005/mai-schedule-project/models"
)

// Бэкенд исторически отдаёт занятия в нескольких формах: day или date,
// start_time+end_time или объединённое time, teacher-строка или teachers-список,
// room или rooms, group_name или group, а week — то числом, то строкой.
// Все варианты сводятся к models.ScheduleEntry здесь и только здесь.

const (
	// Значения по умолчанию бэкенда для незаполненных полей.
	teacherUnknown = "Не указан"
	roomUnknown    = "Не указана"
)

// flexInt принимает JSON-число и JSON-строку с числом.
// Разнобой типов поля week в бэкенде зафиксирован в DESIGN.md.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// flexStrings принимает одиночную строку и массив строк.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*f = nil
		return nil
	}
	*f = []string{s}
	return nil
}

// wireEntry — занятие в том виде, в котором его может прислать бэкенд.
type wireEntry struct {
	ID                int         `json:"id"`
	Week              flexInt     `json:"week"`
	GroupName         string      `json:"group_name"`
	Group             string      `json:"group"`
	Subject           string      `json:"subject"`
	Teacher           string      `json:"teacher"`
	Teachers          flexStrings `json:"teachers"`
	Room              string      `json:"room"`
	Rooms             flexStrings `json:"rooms"`
	Day               string      `json:"day"`
	Date              string      `json:"date"`
	Time              string      `json:"time"`
	StartTime         string      `json:"start_time"`
	EndTime           string      `json:"end_time"`
	EventType         string      `json:"event_type"`
	RecurrencePattern string      `json:"recurrence_pattern"`
	IsCustom          bool        `json:"is_custom"`
}

func (w wireEntry) normalize() models.ScheduleEntry {
	e := models.ScheduleEntry{
		ID:                w.ID,
		Week:              int(w.Week),
		GroupName:         firstNonEmpty(w.GroupName, w.Group),
		Subject:           w.Subject,
		Teacher:           firstNonEmpty(w.Teacher, strings.Join(w.Teachers, ", "), teacherUnknown),
		Room:              firstNonEmpty(w.Room, strings.Join(w.Rooms, ", "), roomUnknown),
		Day:               firstNonEmpty(w.Day, w.Date),
		StartTime:         w.StartTime,
		EndTime:           w.EndTime,
		EventType:         w.EventType,
		RecurrencePattern: w.RecurrencePattern,
		IsCustom:          w.IsCustom,
	}
	if e.StartTime == "" && w.Time != "" {
		e.StartTime, e.EndTime = splitTimeRange(w.Time)
	}
	return e
}

// wireFreeSlot — свободный слот из /free_rooms; week там страдает тем же
// разнобоем числа и строки, что и в занятиях.
type wireFreeSlot struct {
	Week      flexInt `json:"week"`
	Day       string  `json:"day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Room      string  `json:"room"`
}

func normalizeFreeSlots(wire []wireFreeSlot) []models.FreeSlot {
	slots := make([]models.FreeSlot, 0, len(wire))
	for _, w := range wire {
		slots = append(slots, models.FreeSlot{
			Week:      int(w.Week),
			Day:       w.Day,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Room:      w.Room,
		})
	}
	return slots
}

func normalizeEntries(wire []wireEntry) []models.ScheduleEntry {
	entries := make([]models.ScheduleEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, w.normalize())
	}
	return entries
}

// splitTimeRange разбирает "09:00 - 10:30" (разделитель бывает дефисом
// и обоими видами тире).
func splitTimeRange(s string) (start, end string) {
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	start, end, found := strings.Cut(s, "-")
	if !found {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(start), strings.TrimSpace(end)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
