package models

// User — пользователь бэкенда в списке администрирования.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin сообщает, есть ли у пользователя административная роль.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}
