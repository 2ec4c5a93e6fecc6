package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tcontrol/internal/services"
)

type AdminHandler struct {
	deadlines services.DeadlineService
}

func NewAdminHandler(deadlines services.DeadlineService) *AdminHandler {
	return &AdminHandler{deadlines: deadlines}
}

// @Summary      Запустить проверку дедлайнов вручную
// @Description  Синхронно прогоняет sweep-цикл и возвращает его итог
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  models.SweepSummary
// @Failure      500  {object}  map[string]string
// @Router       /admin/check-deadlines [post]
func (h *AdminHandler) CheckDeadlines(c *gin.Context) {
	summary, err := h.deadlines.CheckDeadlines(c.Request.Context())
	if err != nil {
		// Упавший цикл — явная ошибка, никогда не «успех с нулём».
		log.Printf("[admin][check-deadlines][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deadline sweep failed"})
		return
	}
	log.Printf("[admin][check-deadlines][ok] overdue_marked=%d", summary.OverdueMarked)
	c.JSON(http.StatusOK, summary)
}
