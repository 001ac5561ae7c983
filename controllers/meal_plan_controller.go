package controllers

import (
	"net/http"
	"time"

	"github.com/calo-work-stack/Calo-sub001/services"

	"github.com/gin-gonic/gin"
)

func CreateMealPlan(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.MealPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := services.CreateMealPlan(uid, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func ListMealPlans(c *gin.Context) {
	uid := c.GetUint("userID")

	plans, err := services.ListMealPlans(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

func ActivateMealPlan(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.ActivateMealPlan(uid, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan activated"})
}

func DeleteMealPlan(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteMealPlan(uid, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal plan deleted"})
}

func TodayMealPlan(c *gin.Context) {
	uid := c.GetUint("userID")

	entries, err := services.TodaySchedule(uid, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": entries})
}
