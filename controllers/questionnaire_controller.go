package controllers

import (
	"errors"
	"net/http"

	"github.com/calo-work-stack/Calo-sub001/services"

	"github.com/gin-gonic/gin"
)

type QuestionnaireController struct {
	AI *services.AIService
}

func NewQuestionnaireController(ai *services.AIService) *QuestionnaireController {
	return &QuestionnaireController{AI: ai}
}

func (qc *QuestionnaireController) Submit(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.QuestionnaireInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := services.SubmitQuestionnaire(qc.AI, uid, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAnswer) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, q)
}

func (qc *QuestionnaireController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	q, err := services.GetQuestionnaire(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not submitted"})
		return
	}
	c.JSON(http.StatusOK, q)
}
