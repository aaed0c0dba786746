package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bilart2005/mai-schedule-project/internal/api"
	"github.com/bilart2005/mai-schedule-project/internal/handlers"
	"github.com/bilart2005/mai-schedule-project/internal/refdata"
	"github.com/bilart2005/mai-schedule-project/internal/routes"
	"github.com/bilart2005/mai-schedule-project/internal/session"
)

// fakeBackend имитирует REST-бэкенд расписания ровно в той мере,
// в какой его видит фронтенд.
type fakeBackend struct {
	*httptest.Server

	loginStatus   int
	updateStatus  int // ненулевой код делает PUT /schedule/1 неуспешным
	occupiedCalls atomic.Int64
	createCalls   atomic.Int64
	updateCalls   atomic.Int64
	usersCalls    atomic.Int64
	usersFailFrom int64 // с какого по счёту вызова /users отвечать 500; 0 — никогда

	mu         sync.Mutex
	lastCreate map[string]any
	lastUpdate map[string]any
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{loginStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /groups", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]string{"М8О-101А-24"})
	})
	mux.HandleFunc("GET /allowed_rooms", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]string{"101", "102"})
	})
	mux.HandleFunc("GET /occupied_rooms", func(w http.ResponseWriter, r *http.Request) {
		f.occupiedCalls.Add(1)
		_, _ = w.Write([]byte(`[
			{"id": 1, "week": 5, "day": "Пн, 19 мая", "start_time": "09:00", "end_time": "10:30",
			 "subject": "Матанализ", "teacher": "Иванов", "room": "101", "group": "М8О-101А-24"}
		]`))
	})
	mux.HandleFunc("GET /schedule", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "week": 5, "day": "Пн, 19 мая", "start_time": "09:00", "end_time": "10:30",
			 "subject": "Матанализ", "teacher": "Иванов", "room": "101", "group_name": "М8О-101А-24"}
		]`))
	})
	mux.HandleFunc("POST /schedule", func(w http.ResponseWriter, r *http.Request) {
		f.createCalls.Add(1)
		var fields map[string]any
		_ = json.NewDecoder(r.Body).Decode(&fields)
		f.mu.Lock()
		f.lastCreate = fields
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("PUT /schedule/1", func(w http.ResponseWriter, r *http.Request) {
		f.updateCalls.Add(1)
		if f.updateStatus != 0 {
			w.WriteHeader(f.updateStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Занятие не найдено"})
			return
		}
		var fields map[string]any
		_ = json.NewDecoder(r.Body).Decode(&fields)
		f.mu.Lock()
		f.lastUpdate = fields
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "ok"})
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		if f.loginStatus != http.StatusOK {
			w.WriteHeader(f.loginStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Неверный логин или пароль"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "is_admin": true})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		n := f.usersCalls.Add(1)
		if f.usersFailFrom > 0 && n >= f.usersFailFrom {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 7, "email": "user@mai.ru", "role": "student"},
		})
	})
	mux.HandleFunc("POST /users/7/promote", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "ok"})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func newFrontend(t *testing.T, backend *fakeBackend) (*gin.Engine, *session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sess := session.New()
	client := api.New(backend.URL, 5*time.Second, sess)
	ref := refdata.New(client, nil, time.Minute)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	routes.Setup(r, handlers.New(client, sess, ref), sess)
	return r, sess
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAffordancesFollowSession(t *testing.T) {
	backend := newFakeBackend(t)
	r, sess := newFrontend(t, backend)

	w := postForm(r, "/login", url.Values{"email": {"admin@mai.ru"}, "password": {"pw"}})
	if w.Code != http.StatusOK {
		t.Fatalf("login render failed with status %d", w.Code)
	}
	if !sess.IsAdmin() {
		t.Fatal("expected admin session after login")
	}

	w = get(r, "/rooms?room=101&week=5")
	body := w.Body.String()
	if !strings.Contains(body, "delete-btn") {
		t.Fatal("admin view must render delete buttons")
	}
	if !strings.Contains(body, "edit-btn") || !strings.Contains(body, "/schedule/1/edit") {
		t.Fatal("admin view must render per-row edit forms")
	}
	if !strings.Contains(body, "manageUsersNav") {
		t.Fatal("admin view must render the users nav entry")
	}

	get(r, "/logout")
	if sess.LoggedIn() {
		t.Fatal("logout must clear the session")
	}

	w = get(r, "/rooms?room=101&week=5")
	body = w.Body.String()
	if strings.Contains(body, "delete-btn") {
		t.Fatal("delete buttons must disappear after logout")
	}
	if strings.Contains(body, "manageUsersNav") {
		t.Fatal("users nav entry must disappear after logout")
	}
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	backend := newFakeBackend(t)
	backend.loginStatus = http.StatusUnauthorized
	r, sess := newFrontend(t, backend)

	w := postForm(r, "/login", url.Values{"email": {"a@mai.ru"}, "password": {"bad"}})
	if sess.Token() != "" || sess.IsAdmin() {
		t.Fatal("failed login must not mutate the session")
	}
	if !strings.Contains(w.Body.String(), "Неверный логин или пароль") {
		t.Fatal("backend message must be surfaced to the user")
	}
}

func TestRoomViewValidation(t *testing.T) {
	backend := newFakeBackend(t)
	r, _ := newFrontend(t, backend)

	w := get(r, "/rooms?room=101")
	if !strings.Contains(w.Body.String(), "Укажите и кабинет, и неделю.") {
		t.Fatal("expected validation message")
	}
	if backend.occupiedCalls.Load() != 0 {
		t.Fatal("validation failure must not hit the backend")
	}
}

func TestDuplicateAddIsRejectedWithoutPost(t *testing.T) {
	backend := newFakeBackend(t)
	r, sess := newFrontend(t, backend)
	sess.SetFromLogin("admin@mai.ru", "tok", true)

	w := postForm(r, "/schedule", url.Values{
		"group_name": {"М8О-101А-24"},
		"subject":    {"Матанализ"},
		"teacher":    {"Иванов"},
		"date":       {"19.05.2025"},
		"start_time": {"09:00"},
		"end_time":   {"10:30"},
		"room":       {"101"},
		"week":       {"5"},
	})

	if !strings.Contains(w.Body.String(), "уже существует") {
		t.Fatal("duplicate must be reported to the user")
	}
	if backend.createCalls.Load() != 0 {
		t.Fatal("duplicate must be rejected before any POST to the backend")
	}
}

func TestAddEntryValidation(t *testing.T) {
	backend := newFakeBackend(t)
	r, sess := newFrontend(t, backend)
	sess.SetFromLogin("admin@mai.ru", "tok", true)

	w := postForm(r, "/schedule", url.Values{"group_name": {"М8О-101А-24"}})
	if !strings.Contains(w.Body.String(), "заполните все поля") {
		t.Fatal("expected validation message for missing fields")
	}
	if backend.createCalls.Load() != 0 {
		t.Fatal("validation failure must not hit the backend")
	}
}

func TestAddEntryCarriesRecurrencePattern(t *testing.T) {
	backend := newFakeBackend(t)
	r, sess := newFrontend(t, backend)
	sess.SetFromLogin("admin@mai.ru", "tok", true)

	w := get(r, "/rooms?room=101&week=5")
	if !strings.Contains(w.Body.String(), `name="recurrence_pattern"`) {
		t.Fatal("add form must expose the recurrence input")
	}

	// Время отличается от занятого слота, чтобы пройти проверку дублей.
	postForm(r, "/schedule", url.Values{
		"group_name":         {"М8О-101А-24"},
		"subject":            {"Физика"},
		"teacher":            {"Петров"},
		"date":               {"19.05.2025"},
		"start_time":         {"13:00"},
		"end_time":           {"14:30"},
		"room":               {"102"},
		"week":               {"5"},
		"event_type":         {"повторяющееся"},
		"recurrence_pattern": {"еженедельно"},
	})
	if backend.createCalls.Load() != 1 {
		t.Fatalf("expected exactly one POST, got %d", backend.createCalls.Load())
	}

	backend.mu.Lock()
	fields := backend.lastCreate
	backend.mu.Unlock()
	if fields["recurrence_pattern"] != "еженедельно" || fields["event_type"] != "повторяющееся" {
		t.Fatalf("recurrence not carried to the backend: %v", fields)
	}
}

func TestEditEntrySendsOnlyFilledFields(t *testing.T) {
	backend := newFakeBackend(t)
	r, sess := newFrontend(t, backend)
	sess.SetFromLogin("admin@mai.ru", "tok", true)

	w := postForm(r, "/schedule/1/edit", url.Values{
		"subject":   {"Линейная алгебра"},
		"teacher":   {"Петров"},
		"view_room": {"101"},
		"view_week": {"5"},
	})
	if !strings.Contains(w.Body.String(), "Занятие обновлено") {
		t.Fatalf("expected success notice, got: %s", w.Body.String())
	}
	if backend.updateCalls.Load() != 1 {
		t.Fatalf("expected exactly one PUT, got %d", backend.updateCalls.Load())
	}

	backend.mu.Lock()
	fields := backend.lastUpdate
	backend.mu.Unlock()
	if fields["subject"] != "Линейная алгебра" || fields["teacher"] != "Петров" {
		t.Fatalf("unexpected update payload: %v", fields)
	}
	if _, ok := fields["room"]; ok {
		t.Fatal("empty form fields must not be sent to the backend")
	}
}

func TestEditEntryWithoutFieldsIsRejected(t *testing.T) {
	backend := newFakeBackend(t)
	r, sess := newFrontend(t, backend)
	sess.SetFromLogin("admin@mai.ru", "tok", true)

	w := postForm(r, "/schedule/1/edit", url.Values{
		"view_room": {"101"},
		"view_week": {"5"},
	})
	if !strings.Contains(w.Body.String(), "Нет данных для обновления") {
		t.Fatal("expected the empty-form message")
	}
	if backend.updateCalls.Load() != 0 {
		t.Fatal("empty form must not hit the backend")
	}
}

func TestEditEntryBackendFailureIsReported(t *testing.T) {
	backend := newFakeBackend(t)
	backend.updateStatus = http.StatusNotFound
	r, sess := newFrontend(t, backend)
	sess.SetFromLogin("admin@mai.ru", "tok", true)

	w := postForm(r, "/schedule/1/edit", url.Values{"subject": {"Физика"}})
	body := w.Body.String()
	if !strings.Contains(body, "Ошибка обновления") || !strings.Contains(body, "Занятие не найдено") {
		t.Fatalf("expected the backend message in the alert, got: %s", body)
	}
}

func TestPromoteReloadFailureIsReportedSeparately(t *testing.T) {
	backend := newFakeBackend(t)
	backend.usersFailFrom = 1 // список падает уже при перечитывании после promote
	r, sess := newFrontend(t, backend)
	sess.SetFromLogin("admin@mai.ru", "tok", true)

	w := postForm(r, "/users/7/promote", nil)
	if !strings.Contains(w.Body.String(), "Пользователь назначен, но не удалось обновить список") {
		t.Fatalf("expected the distinct partial-success message, got: %s", w.Body.String())
	}
}

func TestAdminRoutesRedirectForGuests(t *testing.T) {
	backend := newFakeBackend(t)
	r, _ := newFrontend(t, backend)

	w := postForm(r, "/schedule", url.Values{"subject": {"x"}})
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect for guest, got %d", w.Code)
	}
	w = get(r, "/users")
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect for guest, got %d", w.Code)
	}
	w = postForm(r, "/calendar/sync", url.Values{"group": {"М8О-101А-24"}})
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect for guest, got %d", w.Code)
	}
}
