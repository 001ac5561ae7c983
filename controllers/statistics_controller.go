package controllers

import (
	"net/http"
	"time"

	"github.com/calo-work-stack/Calo-sub001/services"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	Svc *services.StatisticsService
}

func NewStatisticsController(svc *services.StatisticsService) *StatisticsController {
	return &StatisticsController{Svc: svc}
}

func (h *StatisticsController) GetSummary(c *gin.Context) {
	userID := c.GetUint("userID")

	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	fromStr := c.DefaultQuery("from", first.Format("2006-01-02"))
	toStr := c.DefaultQuery("to", last.Format("2006-01-02"))
	includeMissing := c.DefaultQuery("includeMissingDays", "false") == "true"

	from, err := time.ParseInLocation("2006-01-02", fromStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return
	}

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to, includeMissing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetCompletions returns the meal-completion calendar for one month
// (?month=YYYY-MM, defaults to the current month).
func (h *StatisticsController) GetCompletions(c *gin.Context) {
	userID := c.GetUint("userID")

	now := time.Now()
	month := c.DefaultQuery("month", now.Format("2006-01"))
	parsed, err := time.ParseInLocation("2006-01", month, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	out, err := h.Svc.MonthCompletions(c.Request.Context(), userID, parsed.Year(), parsed.Month())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
