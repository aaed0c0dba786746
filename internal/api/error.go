package api

import "fmt"

// Error — не-2xx ответ бэкенда. Message берётся из поля msg (или error)
// тела ответа; если бэкенд не прислал текста — остаётся общая формулировка.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("сервер вернул статус %d", e.Status)
}
