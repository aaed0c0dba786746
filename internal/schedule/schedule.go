// internal/schedule/schedule.go
package schedule

import (
	"sort"
	"time"

	"github.com/bilart2005/mai-schedule-project/internal/dates"
	"github.com/bilart2005/mai-schedule-project/models"
)

// Чистая логика представлений расписания: фильтрация, сортировка, проверка
// "аудитория свободна сейчас" и поиск дублей. Ничего не знает ни о Gin,
// ни о HTTP — проверяется обычными unit-тестами.

// FilterRoomWeek оставляет из общего списка занятых слотов только записи
// выбранной аудитории и учебной недели.
func FilterRoomWeek(entries []models.ScheduleEntry, room string, week int) []models.ScheduleEntry {
	var out []models.ScheduleEntry
	for _, e := range entries {
		if e.Week == week && e.Room == room {
			out = append(out, e)
		}
	}
	return out
}

// Sort упорядочивает занятия по дате и времени начала. Сортировка устойчивая,
// записи с нечитаемой датой остаются в конце в исходном порядке.
func Sort(entries []models.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return dates.CompareEntries(entries[i], entries[j]) < 0
	})
}

// RoomFreeAt сообщает, свободна ли аудитория в момент now, по уже
// отфильтрованным занятиям этой аудитории. Интервал занятия полуоткрытый:
// ровно в end_time аудитория считается свободной. Записи с нечитаемой датой
// или временем пропускаются.
func RoomFreeAt(entries []models.ScheduleEntry, now time.Time) bool {
	nowMin := now.Hour()*60 + now.Minute()
	for _, e := range entries {
		day, err := dates.ParseDay(e.Day)
		if err != nil {
			continue
		}
		if day.Day() != now.Day() || day.Month() != now.Month() || day.Year() != now.Year() {
			continue
		}
		start, err := dates.MinutesOfDay(e.StartTime)
		if err != nil {
			continue
		}
		end, err := dates.MinutesOfDay(e.EndTime)
		if err != nil {
			continue
		}
		if nowMin >= start && nowMin < end {
			return false
		}
	}
	return true
}

// IsDuplicate проверяет, есть ли в расписании группы занятие с той же датой,
// тем же интервалом времени и той же аудиторией, что и candidate.
// Проверка неатомарна: между ней и POST другое подключение может вставить
// такую же запись. Для одного администратора за раз этого достаточно.
func IsDuplicate(existing []models.ScheduleEntry, candidate models.ScheduleEntry) bool {
	for _, e := range existing {
		if e.Day == candidate.Day &&
			e.TimeRange() == candidate.TimeRange() &&
			e.Room == candidate.Room {
			return true
		}
	}
	return false
}

// FilterFreeSlots оставляет свободные слоты выбранной недели, при непустом
// room — только этой аудитории, и упорядочивает их по дате и времени начала.
func FilterFreeSlots(slots []models.FreeSlot, room string, week int) []models.FreeSlot {
	var out []models.FreeSlot
	for _, s := range slots {
		if s.Week != week {
			continue
		}
		if room != "" && s.Room != room {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a := models.ScheduleEntry{Day: out[i].Day, StartTime: out[i].StartTime}
		b := models.ScheduleEntry{Day: out[j].Day, StartTime: out[j].StartTime}
		return dates.CompareEntries(a, b) < 0
	})
	return out
}
