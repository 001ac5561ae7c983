package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"
	"github.com/calo-work-stack/Calo-sub001/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type QuestionnaireInput struct {
	Goal              string   `json:"goal" binding:"required,oneof=lose maintain gain"`
	ActivityLevel     string   `json:"activity_level" binding:"required,oneof=sedentary light moderate active very_active"`
	DietaryPreference string   `json:"dietary_preference" binding:"omitempty,oneof=none vegetarian vegan keto paleo"`
	Allergies         []string `json:"allergies"`
	DislikedFoods     []string `json:"disliked_foods"`
	MealsPerDay       int      `json:"meals_per_day" binding:"required,min=2,max=5"`
	Lifestyle         string   `json:"lifestyle"`
}

var (
	urlPattern       = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)
	digitsOnly       = regexp.MustCompile(`^[\d\s\p{P}]+$`)
	repeatedChar     = regexp.MustCompile(`(.)\1{6,}`)
	ErrInvalidAnswer = errors.New("invalid free-text answer")
)

// ValidateFreeText rejects obvious junk before the answer reaches
// prompt construction: links, digit noise, keyboard mashing, extremes
// of length. Empty answers are allowed (the field is optional).
func ValidateFreeText(answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}
	if len(answer) < 3 {
		return fmt.Errorf("%w: too short", ErrInvalidAnswer)
	}
	if len(answer) > 500 {
		return fmt.Errorf("%w: too long", ErrInvalidAnswer)
	}
	if urlPattern.MatchString(answer) {
		return fmt.Errorf("%w: links are not allowed", ErrInvalidAnswer)
	}
	if digitsOnly.MatchString(answer) {
		return fmt.Errorf("%w: not descriptive text", ErrInvalidAnswer)
	}
	if repeatedChar.MatchString(answer) {
		return fmt.Errorf("%w: not descriptive text", ErrInvalidAnswer)
	}
	return nil
}

const relevancePrompt = `You screen free-text answers from a nutrition app onboarding survey.
Given an answer to "Describe your lifestyle and eating habits", respond with a JSON object
{"valid":bool,"reason":string}. valid is false only when the text is clearly unrelated to
lifestyle, diet or health. Respond with JSON only.`

// classifyRelevance is the second validation pass; failures of the AI
// call itself never block the user.
func classifyRelevance(ai *AIService, answer string) error {
	raw, err := ai.CompleteJSON(relevancePrompt, answer)
	if err != nil {
		log.WithError(err).Warn("relevance classification unavailable, accepting answer")
		return nil
	}
	var out struct {
		Valid  bool   `json:"valid"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.WithError(err).Warn("relevance classification unreadable, accepting answer")
		return nil
	}
	if !out.Valid {
		return fmt.Errorf("%w: %s", ErrInvalidAnswer, out.Reason)
	}
	return nil
}

// SubmitQuestionnaire validates, stores the survey, derives the user's
// daily targets and marks the user onboarded.
func SubmitQuestionnaire(ai *AIService, userID uint, input QuestionnaireInput) (*models.Questionnaire, error) {
	if err := ValidateFreeText(input.Lifestyle); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Lifestyle) != "" && ai != nil {
		if err := classifyRelevance(ai, input.Lifestyle); err != nil {
			return nil, err
		}
	}

	if input.DietaryPreference == "" {
		input.DietaryPreference = "none"
	}

	q := models.Questionnaire{
		UserID:            userID,
		Goal:              input.Goal,
		ActivityLevel:     input.ActivityLevel,
		DietaryPreference: input.DietaryPreference,
		Allergies:         strings.Join(input.Allergies, ","),
		DislikedFoods:     strings.Join(input.DislikedFoods, ","),
		MealsPerDay:       input.MealsPerDay,
		Lifestyle:         strings.TrimSpace(input.Lifestyle),
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Questionnaire
		if err := tx.Where("user_id = ?", userID).First(&existing).Error; err == nil {
			q.ID = existing.ID
			q.CreatedAt = existing.CreatedAt
			if err := tx.Save(&q).Error; err != nil {
				return err
			}
		} else if err := tx.Create(&q).Error; err != nil {
			return err
		}

		if err := recalcDailyGoal(tx, userID, &q); err != nil {
			return err
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("onboarded", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func GetQuestionnaire(userID uint) (*models.Questionnaire, error) {
	var q models.Questionnaire
	if err := config.DB.Where("user_id = ?", userID).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// recalcDailyGoal recomputes targets from profile + questionnaire
// unless the user has taken manual control of them.
func recalcDailyGoal(tx *gorm.DB, userID uint, q *models.Questionnaire) error {
	var goal models.DailyGoal
	err := tx.Where("user_id = ?", userID).First(&goal).Error
	if err == nil && goal.Manual {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}

	age := utils.CalculateAge(user.Birthday)
	calories, calcErr := utils.CalculateDailyCalories(user.Sex, age, user.Height, user.Weight, q.ActivityLevel, q.Goal)
	if calcErr != nil {
		// Profile incomplete; fall back to a neutral default target.
		calories = 2000
	}
	protein, carbs, fat := utils.MacroTargets(calories, q.DietaryPreference)

	goal.UserID = userID
	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fat = fat
	goal.Sodium = 2300
	goal.Sugar = 50

	if goal.ID == 0 {
		return tx.Create(&goal).Error
	}
	return tx.Save(&goal).Error
}
