// internal/dates/dates.go
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bilart2005/mai-schedule-project/models"
)

// AcademicWeekOffset — смещение учебных недель относительно ISO-нумерации:
// 1-я учебная неделя соответствует 7-й ISO-неделе года.
const AcademicWeekOffset = 6

// TermWeeks — количество учебных недель в семестре.
const TermWeeks = 19

// genitiveMonths — названия месяцев в родительном падеже, как их отдаёт бэкенд
// в поле day ("Пн, 19 мая").
var genitiveMonths = [13]string{
	"", "января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// weekdayAbbrevs — сокращения дней недели, индекс совпадает с time.Weekday (Вс=0).
var weekdayAbbrevs = [7]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

var monthByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for i := 1; i <= 12; i++ {
		m[genitiveMonths[i]] = time.Month(i)
	}
	return m
}()

// RangeOfISOWeek возвращает понедельник и воскресенье заданной ISO-недели.
// Неделя 1 — та, что содержит первый четверг года (и всегда 4 января).
func RangeOfISOWeek(week, year int) (time.Time, time.Time) {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)
	dow := int(jan4.Weekday())
	if dow == 0 {
		dow = 7
	}
	monday := jan4.AddDate(0, 0, 1-dow+(week-1)*7)
	return monday, monday.AddDate(0, 0, 6)
}

// RangeOfAcademicWeek возвращает границы учебной недели (понедельник..воскресенье),
// учитывая фиксированное смещение относительно ISO-нумерации.
func RangeOfAcademicWeek(week, year int) (time.Time, time.Time) {
	return RangeOfISOWeek(week+AcademicWeekOffset, year)
}

// WeekOptions строит список учебных недель 1..TermWeeks с диапазонами дат
// для выпадающего списка выбора недели.
func WeekOptions(year int) []models.WeekOption {
	opts := make([]models.WeekOption, 0, TermWeeks)
	for w := 1; w <= TermWeeks; w++ {
		start, end := RangeOfAcademicWeek(w, year)
		opts = append(opts, models.WeekOption{Number: w, Start: start, End: end})
	}
	return opts
}

// ParseDay разбирает локализованную дату вида "Пн, 19 мая".
// Год не передаётся бэкендом и берётся текущий системный.
func ParseDay(s string) (time.Time, error) {
	return ParseDayInYear(s, time.Now().Year())
}

// ParseDayInYear — то же, что ParseDay, но с явным годом.
func ParseDayInYear(s string, year int) (time.Time, error) {
	_, rest, found := strings.Cut(s, ",")
	if !found {
		return time.Time{}, fmt.Errorf("некорректная дата %q: нет запятой после дня недели", s)
	}
	parts := strings.Fields(rest)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("некорректная дата %q", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("некорректный день в дате %q", s)
	}
	month, ok := monthByName[parts[1]]
	if !ok {
		return time.Time{}, fmt.Errorf("неизвестный месяц %q в дате %q", parts[1], s)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), nil
}

// FormatDay форматирует дату обратно в вид "Пн, 19 мая".
func FormatDay(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", weekdayAbbrevs[int(t.Weekday())], t.Day(), genitiveMonths[int(t.Month())])
}

// ParsePickerDate разбирает значение формы выбора даты в формате "ДД.ММ.ГГГГ".
func ParsePickerDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("02.01.2006", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректная дата %q: ожидается ДД.ММ.ГГГГ", s)
	}
	return t, nil
}

// MinutesOfDay переводит "HH:MM" в минуты с начала суток.
func MinutesOfDay(hhmm string) (int, error) {
	h, m, found := strings.Cut(hhmm, ":")
	if !found {
		return 0, fmt.Errorf("некорректное время %q", hhmm)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("некорректное время %q", hhmm)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("некорректное время %q", hhmm)
	}
	return hours*60 + minutes, nil
}

// CompareEntries задаёт полный порядок занятий: сначала по дате, затем по
// времени начала. Записи с нечитаемой датой или временем уходят в конец,
// чтобы не пропадать из таблицы.
func CompareEntries(a, b models.ScheduleEntry) int {
	da, errA := ParseDay(a.Day)
	db, errB := ParseDay(b.Day)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	if !da.Equal(db) {
		if da.Before(db) {
			return -1
		}
		return 1
	}
	ma, errA := MinutesOfDay(a.StartTime)
	mb, errB := MinutesOfDay(b.StartTime)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	switch {
	case ma < mb:
		return -1
	case ma > mb:
		return 1
	}
	return 0
}
