// internal/handlers/export_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportRoomScheduleHandler выгружает занятость аудитории за неделю в Excel —
// ту же таблицу, что показывается на странице, в том же порядке строк.
func (h *Handlers) ExportRoomScheduleHandler(c *gin.Context) {
	room := c.Query("room")
	week, weekOK := parseWeek(c.Query("week"))
	if room == "" || !weekOK {
		h.renderIndex(c, viewState{Alert: "Укажите и кабинет, и неделю."})
		return
	}

	entries, err := h.loadRoomView(c.Request.Context(), room, week)
	if err != nil {
		h.renderIndex(c, viewState{
			Alert: userMessage(err, "Не удалось загрузить расписание кабинета"),
			Room:  room, Week: week,
		})
		return
	}

	f := excelize.NewFile()
	sheetName := "Расписание"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"День", "Время", "Предмет", "Преподаватель", "Группа"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Day)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.StartTime+" – "+e.EndTime)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Subject)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Teacher)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.GroupName)
	}

	fileName := fmt.Sprintf("room_%s_week_%d_%s.xlsx", room, week, time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
