// internal/routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bilart2005/mai-schedule-project/internal/handlers"
	"github.com/bilart2005/mai-schedule-project/internal/middleware"
	"github.com/bilart2005/mai-schedule-project/internal/session"
)

// Setup регистрирует все маршруты фронтенда.
func Setup(r *gin.Engine, h *handlers.Handlers, sess *session.Session) {
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SessionGuard(sess))

	// --- Публичные маршруты ---
	// Просмотр расписания доступен без входа, как и у бэкенда.
	r.GET("/", h.ShowIndexPage)
	r.POST("/login", h.LoginHandler)
	r.POST("/register", h.RegisterHandler)
	r.GET("/logout", h.LogoutHandler)
	r.GET("/rooms", h.RoomScheduleHandler)
	r.GET("/group", h.GroupScheduleHandler)
	r.GET("/free-rooms", h.FreeRoomsHandler)

	// --- Маршруты, требующие входа ---
	authRequired := r.Group("/")
	authRequired.Use(middleware.RequireLogin(sess))
	{
		authRequired.POST("/calendar/sync", h.SyncCalendarHandler)
	}

	// --- Административные маршруты ---
	admin := r.Group("/")
	admin.Use(middleware.RequireAdmin(sess))
	{
		admin.POST("/schedule", h.AddEntryHandler)
		admin.POST("/schedule/:id/edit", h.EditEntryHandler)
		admin.POST("/schedule/:id/delete", h.DeleteEntryHandler)
		admin.GET("/users", h.ShowUsersPage)
		admin.POST("/users/:id/promote", h.PromoteUserHandler)
		admin.GET("/export/rooms", h.ExportRoomScheduleHandler)
	}
}
