package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/calo-work-stack/Calo-sub001/models"
	"github.com/calo-work-stack/Calo-sub001/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Analysis *services.MealAnalysisService
}

func NewMealController(analysis *services.MealAnalysisService) *MealController {
	return &MealController{Analysis: analysis}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func (mc *MealController) LogMeal(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		Type  string                     `json:"type" binding:"required"`
		AteAt time.Time                  `json:"ate_at"`
		Items []services.MealItemRequest `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	meal, err := services.AddMeal(uid, body.Type, body.AteAt, models.MealSourceManual, body.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// LogMealFromText lets the user describe a meal in free text; the
// analysis service estimates items and macros before logging.
func (mc *MealController) LogMealFromText(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		Type        string    `json:"type" binding:"required"`
		AteAt       time.Time `json:"ate_at"`
		Description string    `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	analyzed, err := mc.Analysis.AnalyzeText(body.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	meal, err := services.AddMeal(uid, body.Type, body.AteAt, models.MealSourceAIText, services.ItemsFromAnalysis(analyzed))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (mc *MealController) LogMealFromPhoto(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		Type  string    `json:"type" binding:"required"`
		AteAt time.Time `json:"ate_at"`
		Image string    `json:"image" binding:"required"` // base64
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	analyzed, labels, err := mc.Analysis.AnalyzePhoto(body.Image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	meal, err := services.AddMeal(uid, body.Type, body.AteAt, models.MealSourceAIPhoto, services.ItemsFromAnalysis(analyzed))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal, "labels": labels})
}

func (mc *MealController) ListMeals(c *gin.Context) {
	uid := c.GetUint("userID")

	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		fromT, err1 := time.ParseInLocation("2006-01-02", from, time.Local)
		toT, err2 := time.ParseInLocation("2006-01-02", to, time.Local)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
			return
		}
		meals, err := services.ListMealsByDateRange(uid, fromT, toT)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, meals)
		return
	}

	meals, err := services.ListMeals(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (mc *MealController) GetMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	meal, err := services.GetMeal(uid, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) UpdateMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		Type  string                     `json:"type" binding:"required"`
		AteAt time.Time                  `json:"ate_at" binding:"required"`
		Items []services.MealItemRequest `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := services.UpdateMeal(uid, id, body.Type, body.AteAt, body.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) DeleteMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteMeal(uid, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

func (mc *MealController) RecentItems(c *gin.Context) {
	uid := c.GetUint("userID")

	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	items, err := services.ListRecentMealItems(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
