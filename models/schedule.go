package models

import (
	"fmt"
	"time"
)

// ScheduleEntry — каноническое представление занятия в расписании.
// Бэкенд отдаёт записи в нескольких вариантах (day/date, start_time+end_time
// или объединённое time, teacher-строка или teachers-список); все варианты
// приводятся к этой форме на границе API-клиента и дальше по коду не расходятся.
type ScheduleEntry struct {
	ID                int    `json:"id,omitempty"`
	Week              int    `json:"week"`
	GroupName         string `json:"group_name"`
	Subject           string `json:"subject"`
	Teacher           string `json:"teacher"`
	Room              string `json:"room"`
	Day               string `json:"day"`        // локализованная дата, например "Пн, 19 мая"
	StartTime         string `json:"start_time"` // "HH:MM"
	EndTime           string `json:"end_time"`   // "HH:MM"
	EventType         string `json:"event_type,omitempty"`
	RecurrencePattern string `json:"recurrence_pattern,omitempty"`
	IsCustom          bool   `json:"is_custom,omitempty"`
}

// TimeRange возвращает интервал занятия в виде "09:00 - 10:30" —
// в том же формате, в котором бэкенд принимает объединённое поле time.
func (e ScheduleEntry) TimeRange() string {
	return e.StartTime + " - " + e.EndTime
}

// FreeSlot — свободный интервал аудитории из /free_rooms.
type FreeSlot struct {
	Week      int    `json:"week"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
}

// WeekOption — учебная неделя с границами дат для выпадающего списка недель.
type WeekOption struct {
	Number int
	Start  time.Time
	End    time.Time
}

// Label — подпись варианта в списке недель, например "3 (24.02 – 02.03)".
func (w WeekOption) Label() string {
	return fmt.Sprintf("%d (%s – %s)", w.Number, w.Start.Format("02.01"), w.End.Format("02.01"))
}
