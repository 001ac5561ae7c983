package controllers

import (
	"errors"
	"net/http"

	"github.com/calo-work-stack/Calo-sub001/services"

	"github.com/gin-gonic/gin"
)

func CompleteMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	menuID, ok := idParam(c, "id")
	if !ok {
		return
	}
	mealID, ok := idParam(c, "mealId")
	if !ok {
		return
	}

	state, err := services.CompleteMeal(uid, menuID, mealID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCompleted) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

func UncompleteMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	mealID, ok := idParam(c, "mealId")
	if !ok {
		return
	}

	if err := services.UncompleteMeal(uid, mealID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "completion not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "completion removed"})
}

func GetGamification(c *gin.Context) {
	uid := c.GetUint("userID")

	state, badges, err := services.GetGamificationState(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"xp":             state.XP,
		"level":          state.Level,
		"next_level_xp":  services.NextLevelXP(state.XP),
		"current_streak": state.CurrentStreak,
		"best_streak":    state.BestStreak,
		"badges":         badges,
	})
}
