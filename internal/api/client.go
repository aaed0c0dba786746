// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bilart2005/mai-schedule-project/internal/session"
	"github.com/bilart2005/mai-schedule-project/models"
)

// Client — тонкий клиент REST-бэкенда расписания. Авторизация сводится к
// заголовку Authorization: Bearer <token>, который подставляется из сессии,
// когда пользователь вошёл. Повторов и особой обработки таймаутов нет:
// приложение интерактивное, неудачный запрос пользователь повторяет сам.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
}

func New(baseURL string, timeout time.Duration, sess *session.Session) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		session: sess,
	}
}

// LoginResponse — ответ POST /login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	IsAdmin     bool   `json:"is_admin"`
}

// Login проверяет учётные данные на бэкенде. Сессию метод не трогает —
// этим занимается обработчик входа, и только при успехе.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	return resp, err
}

// Register регистрирует нового пользователя.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/register", nil, map[string]string{
		"email":    email,
		"password": password,
	}, nil)
}

// Groups возвращает список названий групп.
func (c *Client) Groups(ctx context.Context) ([]string, error) {
	var groups []string
	if err := c.do(ctx, http.MethodGet, "/groups", nil, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AllowedRooms возвращает список отслеживаемых аудиторий.
func (c *Client) AllowedRooms(ctx context.Context) ([]string, error) {
	var rooms []string
	if err := c.do(ctx, http.MethodGet, "/allowed_rooms", nil, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// OccupiedRooms возвращает все занятые слоты по всем аудиториям и неделям;
// фильтрация по аудитории и неделе выполняется на стороне фронтенда.
func (c *Client) OccupiedRooms(ctx context.Context) ([]models.ScheduleEntry, error) {
	var wire []wireEntry
	if err := c.do(ctx, http.MethodGet, "/occupied_rooms", nil, nil, &wire); err != nil {
		return nil, err
	}
	return normalizeEntries(wire), nil
}

// FreeRooms возвращает свободные слоты аудиторий.
func (c *Client) FreeRooms(ctx context.Context) ([]models.FreeSlot, error) {
	var wire []wireFreeSlot
	if err := c.do(ctx, http.MethodGet, "/free_rooms", nil, nil, &wire); err != nil {
		return nil, err
	}
	return normalizeFreeSlots(wire), nil
}

// Schedule возвращает расписание группы на учебную неделю.
func (c *Client) Schedule(ctx context.Context, group string, week int) ([]models.ScheduleEntry, error) {
	query := url.Values{}
	query.Set("group", group)
	query.Set("week", strconv.Itoa(week))
	var wire []wireEntry
	if err := c.do(ctx, http.MethodGet, "/schedule", query, nil, &wire); err != nil {
		return nil, err
	}
	return normalizeEntries(wire), nil
}

// CreateSchedule добавляет занятие. Тело отправляется в канонической
// разложенной форме (day + start_time + end_time), которую читает бэкенд.
func (c *Client) CreateSchedule(ctx context.Context, entry models.ScheduleEntry) error {
	return c.do(ctx, http.MethodPost, "/schedule", nil, map[string]any{
		"group_name":         entry.GroupName,
		"week":               entry.Week,
		"day":                entry.Day,
		"start_time":         entry.StartTime,
		"end_time":           entry.EndTime,
		"subject":            entry.Subject,
		"teacher":            entry.Teacher,
		"room":               entry.Room,
		"event_type":         entry.EventType,
		"recurrence_pattern": entry.RecurrencePattern,
	}, nil)
}

// UpdateSchedule обновляет отдельные поля занятия.
func (c *Client) UpdateSchedule(ctx context.Context, id int, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, "/schedule/"+strconv.Itoa(id), nil, fields, nil)
}

// DeleteSchedule удаляет занятие по идентификатору.
func (c *Client) DeleteSchedule(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/schedule/"+strconv.Itoa(id), nil, nil, nil)
}

// Users возвращает список пользователей (доступно администратору).
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// PromoteUser назначает пользователя администратором.
func (c *Client) PromoteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, "/users/"+strconv.Itoa(id)+"/promote", nil, nil, nil)
}

// SyncCalendar запускает синхронизацию расписания группы с Google Calendar.
func (c *Client) SyncCalendar(ctx context.Context, group string) error {
	return c.do(ctx, http.MethodPost, "/calendar/sync_group", nil, map[string]string{
		"group": group,
	}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("кодирование тела запроса: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("запрос %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: backendMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("разбор ответа %s %s: %w", method, path, err)
	}
	return nil
}

// backendMessage достаёт текст ошибки из тела ответа: бэкенд отвечает
// {"msg": ...}, кое-где {"error": ...}. Пустая строка — текста нет.
func backendMessage(r io.Reader) string {
	var envelope struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Msg != "" {
		return envelope.Msg
	}
	return envelope.Error
}
