// internal/session/session.go
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session — единственное на процесс состояние авторизации фронтенда.
// Передаётся явно в API-клиент и обработчики, а не лежит глобальной переменной,
// чтобы в тестах можно было подставить своё.
type Session struct {
	mu        sync.RWMutex
	token     string
	isAdmin   bool
	email     string
	expiresAt time.Time
}

func New() *Session {
	return &Session{}
}

// SetFromLogin атомарно запоминает результат успешного входа.
// Срок действия токена извлекается из exp-клейма без проверки подписи:
// ключа у фронтенда нет, подпись проверяет бэкенд на каждом запросе.
func (s *Session) SetFromLogin(email, token string, isAdmin bool) {
	var expiresAt time.Time
	if claims, err := decodeClaims(token); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			expiresAt = exp.Time
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.isAdmin = isAdmin
	s.email = email
	s.expiresAt = expiresAt
}

// Clear сбрасывает токен и флаг администратора одним захватом мьютекса:
// рендер, начавшийся после выхода, уже не увидит административных элементов.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.isAdmin = false
	s.email = ""
	s.expiresAt = time.Time{}
}

// Token возвращает текущий bearer-токен ("" — не авторизованы).
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAdmin сообщает, вошёл ли администратор.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}

// Email возвращает почту вошедшего пользователя.
func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// LoggedIn — true, если есть живой токен.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Expired — true, если токен был выдан с exp и этот срок уже прошёл.
func (s *Session) Expired(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && !s.expiresAt.IsZero() && now.After(s.expiresAt)
}

func decodeClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
