package controllers

import (
	"net/http"
	"time"

	"github.com/calo-work-stack/Calo-sub001/services"

	"github.com/gin-gonic/gin"
)

func GetDailyGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	if v := c.Query("date"); v != "" {
		date, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		goals, progress, err := services.GetGoalsAndProgressByDate(uid, date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"goals": goals, "progress": progress})
		return
	}

	goals, progress, err := services.GetGoalsAndProgress(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals, "progress": progress})
}

type GoalsInput struct {
	Calories float64 `json:"calories" binding:"required,gt=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
	Sodium   float64 `json:"sodium" binding:"gte=0"`
	Sugar    float64 `json:"sugar" binding:"gte=0"`
}

func SetDailyGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	var input GoalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpsertGoals(uid, input.Calories, input.Protein, input.Carbs, input.Fat, input.Sodium, input.Sugar); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goals updated"})
}

func GetProgressHistory(c *gin.Context) {
	uid := c.GetUint("userID")

	history, err := services.GetAllDailyProgress(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}
