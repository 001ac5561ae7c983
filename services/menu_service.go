package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/metrics"
	"github.com/calo-work-stack/Calo-sub001/models"
	"github.com/calo-work-stack/Calo-sub001/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	menuDays        = 7
	menuExpiryGrace = 48 * time.Hour
)

var (
	ErrGenerationInFlight = errors.New("a menu generation is already in progress")
	ErrGenerationLimited  = errors.New("menu generation limit reached, try again later")
)

// MenuService owns the recommended-menu lifecycle: a placeholder menu
// is created synchronously and enhanced by a background worker, so the
// client always has something to render.
type MenuService struct {
	ai      *AIService
	limiter *GenerationLimiter
}

func NewMenuService(ai *AIService, limiter *GenerationLimiter) *MenuService {
	return &MenuService{ai: ai, limiter: limiter}
}

// ---------- generation ----------

// Generate creates the placeholder and kicks off background
// enhancement. The returned menu has Status "pending".
func (s *MenuService) Generate(userID uint) (*models.RecommendedMenu, error) {
	var inflight int64
	if err := config.DB.Model(&models.RecommendedMenu{}).
		Where("user_id = ? AND status = ?", userID, models.MenuStatusPending).
		Count(&inflight).Error; err != nil {
		return nil, err
	}
	if inflight > 0 {
		return nil, ErrGenerationInFlight
	}
	if s.limiter != nil && !s.limiter.Allow(userID) {
		return nil, ErrGenerationLimited
	}

	q, goal := s.loadPersonalization(userID)
	mealsPerDay := 3
	if q != nil && q.MealsPerDay > 0 {
		mealsPerDay = q.MealsPerDay
	}
	calories := 2000.0
	if goal != nil && goal.Calories > 0 {
		calories = goal.Calories
	}

	menu := &models.RecommendedMenu{
		UserID:    userID,
		Title:     "Your weekly menu",
		Status:    models.MenuStatusPending,
		Days:      menuDays,
		ExpiresAt: time.Now().Add(menuDays*24*time.Hour + menuExpiryGrace),
		Meals:     placeholderMeals(menuDays, mealsPerDay, calories),
	}
	if err := config.DB.Create(menu).Error; err != nil {
		return nil, err
	}

	go s.enhance(menu.ID, userID, q, goal)

	return menu, nil
}

// enhance replaces the placeholder contents with the AI menu. Always
// resolves the menu out of "pending": active on success, fallback on
// any failure.
func (s *MenuService) enhance(menuID, userID uint, q *models.Questionnaire, goal *models.DailyGoal) {
	start := time.Now()
	outcome := models.MenuStatusFallback

	defer func() {
		if r := recover(); r != nil {
			log.WithField("menu_id", menuID).Errorf("menu enhancement panicked: %v", r)
		}
		if err := config.DB.Model(&models.RecommendedMenu{}).
			Where("id = ? AND status = ?", menuID, models.MenuStatusPending).
			Update("status", outcome).Error; err != nil {
			log.WithError(err).WithField("menu_id", menuID).Error("failed to resolve menu status")
		}
		metrics.ObserveMenuGeneration(outcome, time.Since(start).Seconds())
		event := "menu.ready"
		if outcome != models.MenuStatusActive {
			event = "menu.fallback"
		}
		EmitEvent(userID, event, map[string]any{"menu_id": menuID})
	}()

	raw, err := s.ai.CompleteJSON(menuSystemPrompt, BuildMenuPrompt(q, goal, menuDays))
	if err != nil {
		log.WithError(err).WithField("menu_id", menuID).Warn("menu generation failed, keeping placeholder")
		return
	}

	payload, err := ParseMenuJSON(raw, menuDays)
	if err != nil {
		log.WithError(err).WithField("menu_id", menuID).Warn("menu JSON rejected, keeping placeholder")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var menu models.RecommendedMenu
		if err := tx.First(&menu, menuID).Error; err != nil {
			return err
		}
		if menu.Status != models.MenuStatusPending {
			return fmt.Errorf("menu %d no longer pending", menuID)
		}

		// drop placeholder meals (+ their ingredients)
		var oldMealIDs []uint
		if err := tx.Model(&models.RecommendedMeal{}).
			Where("menu_id = ?", menuID).Pluck("id", &oldMealIDs).Error; err != nil {
			return err
		}
		if len(oldMealIDs) > 0 {
			if err := tx.Where("recommended_meal_id IN ?", oldMealIDs).
				Delete(&models.RecommendedIngredient{}).Error; err != nil {
				return err
			}
			if err := tx.Where("menu_id = ?", menuID).
				Delete(&models.RecommendedMeal{}).Error; err != nil {
				return err
			}
		}

		for _, m := range payload.flatten(menuID) {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}

		if payload.Title != "" {
			menu.Title = payload.Title
		}
		return tx.Save(&menu).Error
	})
	if err != nil {
		log.WithError(err).WithField("menu_id", menuID).Error("failed to apply generated menu")
		return
	}

	outcome = models.MenuStatusActive

	if os.Getenv("MENU_IMAGES_ENABLED") == "true" {
		s.attachImages(menuID)
	}
}

// attachImages is best-effort: a missing image never fails the menu.
func (s *MenuService) attachImages(menuID uint) {
	var meals []models.RecommendedMeal
	if err := config.DB.Where("menu_id = ? AND day = 1", menuID).Find(&meals).Error; err != nil {
		return
	}
	for _, m := range meals {
		img, err := s.ai.GenerateImage("Appetizing overhead food photo of " + m.Name)
		if err != nil {
			log.WithError(err).WithField("meal", m.Name).Debug("meal image generation skipped")
			continue
		}
		url, err := utils.UploadImageBytes(img, "image/png", "menu-images")
		if err != nil {
			log.WithError(err).Warn("meal image upload failed")
			continue
		}
		config.DB.Model(&models.RecommendedMeal{}).Where("id = ?", m.ID).
			Update("image_url", url)
	}
}

func (s *MenuService) loadPersonalization(userID uint) (*models.Questionnaire, *models.DailyGoal) {
	var q models.Questionnaire
	var goal models.DailyGoal
	var qp *models.Questionnaire
	var gp *models.DailyGoal
	if err := config.DB.Where("user_id = ?", userID).First(&q).Error; err == nil {
		qp = &q
	}
	if err := config.DB.Where("user_id = ?", userID).First(&goal).Error; err == nil {
		gp = &goal
	}
	return qp, gp
}

// ---------- reads / deletes ----------

func (s *MenuService) List(userID uint, includeExpired bool) ([]models.RecommendedMenu, error) {
	var menus []models.RecommendedMenu
	q := config.DB.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("day, id") }).
		Preload("Meals.Ingredients").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if !includeExpired {
		// expires_at guards the gap between expiry and the daily sweep
		q = q.Where("status <> ? AND expires_at > ?", models.MenuStatusExpired, time.Now())
	}
	err := q.Find(&menus).Error
	return menus, err
}

func (s *MenuService) Get(userID, menuID uint) (*models.RecommendedMenu, error) {
	var menu models.RecommendedMenu
	err := config.DB.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("day, id") }).
		Preload("Meals.Ingredients").
		Where("id = ? AND user_id = ? AND status <> ? AND expires_at > ?",
			menuID, userID, models.MenuStatusExpired, time.Now()).
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (s *MenuService) Delete(userID, menuID uint) error {
	var menu models.RecommendedMenu
	if err := config.DB.
		Where("id = ? AND user_id = ?", menuID, userID).
		First(&menu).Error; err != nil {
		return err
	}
	return deleteMenuCascade(config.DB, menu.ID, false)
}

// deleteMenuCascade removes a menu with its meals and ingredients.
// hard bypasses soft delete; the retention purge uses it so rows do
// not pile up forever.
func deleteMenuCascade(db *gorm.DB, menuID uint, hard bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if hard {
			tx = tx.Unscoped()
		}
		var mealIDs []uint
		if err := tx.Model(&models.RecommendedMeal{}).
			Where("menu_id = ?", menuID).Pluck("id", &mealIDs).Error; err != nil {
			return err
		}
		if len(mealIDs) > 0 {
			if err := tx.Where("recommended_meal_id IN ?", mealIDs).
				Delete(&models.RecommendedIngredient{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("menu_id = ?", menuID).
			Delete(&models.RecommendedMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RecommendedMenu{}, menuID).Error
	})
}

// ---------- single-meal regeneration ----------

// RegenerateMeal replaces one meal synchronously: single-meal prompts
// are fast enough not to need the placeholder dance.
func (s *MenuService) RegenerateMeal(userID, menuID, mealID uint) (*models.RecommendedMeal, error) {
	var meal models.RecommendedMeal
	err := config.DB.
		Joins("JOIN recommended_menus ON recommended_menus.id = recommended_meals.menu_id").
		Where("recommended_meals.id = ? AND recommended_meals.menu_id = ? AND recommended_menus.user_id = ?",
			mealID, menuID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err
	}

	q, goal := s.loadPersonalization(userID)
	raw, err := s.ai.CompleteJSON(mealSystemPrompt, BuildMealPrompt(q, goal, meal.Type))
	if err != nil {
		return nil, fmt.Errorf("meal regeneration failed: %w", err)
	}
	parsed, err := parseSingleMealJSON(raw, meal.Type)
	if err != nil {
		return nil, err
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recommended_meal_id = ?", meal.ID).
			Delete(&models.RecommendedIngredient{}).Error; err != nil {
			return err
		}
		meal.Name = parsed.Name
		meal.Description = parsed.Description
		meal.Calories = parsed.Calories
		meal.Protein = parsed.Protein
		meal.Carbs = parsed.Carbs
		meal.Fat = parsed.Fat
		meal.PrepMinutes = parsed.PrepMinutes
		meal.ImageURL = ""
		if err := tx.Save(&meal).Error; err != nil {
			return err
		}
		for _, ing := range parsed.Ingredients {
			rec := &models.RecommendedIngredient{
				RecommendedMealID: meal.ID,
				Name:              ing.Name,
				Quantity:          ing.Quantity,
				Unit:              ing.Unit,
			}
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated models.RecommendedMeal
	if err := config.DB.Preload("Ingredients").First(&updated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// ---------- shopping list ----------

type ShoppingListEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ShoppingList aggregates a menu's ingredients by (name, unit).
func (s *MenuService) ShoppingList(userID, menuID uint) ([]ShoppingListEntry, error) {
	menu, err := s.Get(userID, menuID)
	if err != nil {
		return nil, err
	}

	type key struct{ name, unit string }
	totals := map[key]float64{}
	order := []key{}
	for _, m := range menu.Meals {
		for _, ing := range m.Ingredients {
			k := key{strings.ToLower(strings.TrimSpace(ing.Name)), ing.Unit}
			if _, seen := totals[k]; !seen {
				order = append(order, k)
			}
			totals[k] += ing.Quantity
		}
	}

	out := make([]ShoppingListEntry, 0, len(order))
	for _, k := range order {
		out = append(out, ShoppingListEntry{Name: k.name, Quantity: totals[k], Unit: k.unit})
	}
	return out, nil
}

// ---------- prompt + payload ----------

const menuSystemPrompt = `You are a meal-planning assistant. Respond with a JSON object:
{"title":string,"days":[{"day":number,"meals":[{"type":"breakfast"|"lunch"|"dinner"|"snack",
"name":string,"description":string,"prep_minutes":number,"calories":number,"protein":number,
"carbs":number,"fat":number,"ingredients":[{"name":string,"quantity":number,"unit":string}]}]}]}.
Nutrients are per serving: calories in kcal, macros in grams. Respond with JSON only.`

const mealSystemPrompt = `You are a meal-planning assistant. Respond with a JSON object:
{"type":string,"name":string,"description":string,"prep_minutes":number,"calories":number,
"protein":number,"carbs":number,"fat":number,"ingredients":[{"name":string,"quantity":number,
"unit":string}]}. Nutrients are per serving: calories in kcal, macros in grams.
Respond with JSON only.`

// BuildMenuPrompt folds the questionnaire and targets into the user
// prompt. Both arguments may be nil for users who skipped onboarding.
func BuildMenuPrompt(q *models.Questionnaire, goal *models.DailyGoal, days int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a %d-day menu.\n", days)

	mealsPerDay := 3
	if q != nil {
		if q.MealsPerDay > 0 {
			mealsPerDay = q.MealsPerDay
		}
		if q.DietaryPreference != "" && q.DietaryPreference != "none" {
			fmt.Fprintf(&sb, "Dietary preference: %s.\n", q.DietaryPreference)
		}
		if q.Allergies != "" {
			fmt.Fprintf(&sb, "Strictly exclude these allergens: %s.\n", q.Allergies)
		}
		if q.DislikedFoods != "" {
			fmt.Fprintf(&sb, "Avoid: %s.\n", q.DislikedFoods)
		}
		if q.Goal != "" {
			fmt.Fprintf(&sb, "The user wants to %s weight.\n", q.Goal)
		}
		if q.Lifestyle != "" {
			fmt.Fprintf(&sb, "Lifestyle notes: %s\n", q.Lifestyle)
		}
	}
	fmt.Fprintf(&sb, "Each day has %d meals", mealsPerDay)
	if mealsPerDay >= 4 {
		sb.WriteString(" (include snacks)")
	}
	sb.WriteString(".\n")

	if goal != nil && goal.Calories > 0 {
		fmt.Fprintf(&sb, "Daily targets: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat.\n",
			goal.Calories, goal.Protein, goal.Carbs, goal.Fat)
	}
	sb.WriteString("Meals should be practical to cook at home with common ingredients.")
	return sb.String()
}

func BuildMealPrompt(q *models.Questionnaire, goal *models.DailyGoal, mealType string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create one %s recipe.\n", mealType)
	if q != nil {
		if q.DietaryPreference != "" && q.DietaryPreference != "none" {
			fmt.Fprintf(&sb, "Dietary preference: %s.\n", q.DietaryPreference)
		}
		if q.Allergies != "" {
			fmt.Fprintf(&sb, "Strictly exclude these allergens: %s.\n", q.Allergies)
		}
		if q.DislikedFoods != "" {
			fmt.Fprintf(&sb, "Avoid: %s.\n", q.DislikedFoods)
		}
	}
	if goal != nil && goal.Calories > 0 {
		fmt.Fprintf(&sb, "It should fit a %.0f kcal daily budget.\n", goal.Calories)
	}
	return sb.String()
}

type menuIngredientPayload struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type menuMealPayload struct {
	Type        string                  `json:"type"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	PrepMinutes int                     `json:"prep_minutes"`
	Calories    float64                 `json:"calories"`
	Protein     float64                 `json:"protein"`
	Carbs       float64                 `json:"carbs"`
	Fat         float64                 `json:"fat"`
	Ingredients []menuIngredientPayload `json:"ingredients"`
}

type menuDayPayload struct {
	Day   int               `json:"day"`
	Meals []menuMealPayload `json:"meals"`
}

type MenuPayload struct {
	Title string           `json:"title"`
	Days  []menuDayPayload `json:"days"`
}

// ParseMenuJSON validates the model output before anything touches the
// database. maxDays bounds runaway responses.
func ParseMenuJSON(raw string, maxDays int) (*MenuPayload, error) {
	var p MenuPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode menu JSON: %w", err)
	}
	if len(p.Days) == 0 {
		return nil, fmt.Errorf("menu has no days")
	}
	if len(p.Days) > maxDays {
		p.Days = p.Days[:maxDays]
	}
	for di, d := range p.Days {
		if d.Day <= 0 {
			p.Days[di].Day = di + 1
		}
		if len(d.Meals) == 0 {
			return nil, fmt.Errorf("day %d has no meals", di+1)
		}
		for mi, m := range d.Meals {
			if strings.TrimSpace(m.Name) == "" {
				return nil, fmt.Errorf("day %d meal %d has no name", di+1, mi+1)
			}
			if !validMealTypes[m.Type] {
				p.Days[di].Meals[mi].Type = "lunch"
			}
			if m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 {
				return nil, fmt.Errorf("day %d meal %q has negative nutrients", di+1, m.Name)
			}
		}
	}
	return &p, nil
}

func parseSingleMealJSON(raw, wantType string) (*menuMealPayload, error) {
	var m menuMealPayload
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("decode meal JSON: %w", err)
	}
	if strings.TrimSpace(m.Name) == "" {
		return nil, fmt.Errorf("meal has no name")
	}
	if m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 {
		return nil, fmt.Errorf("meal %q has negative nutrients", m.Name)
	}
	m.Type = wantType
	return &m, nil
}

func (p *MenuPayload) flatten(menuID uint) []*models.RecommendedMeal {
	var out []*models.RecommendedMeal
	for _, d := range p.Days {
		for _, m := range d.Meals {
			meal := &models.RecommendedMeal{
				MenuID:      menuID,
				Day:         d.Day,
				Type:        m.Type,
				Name:        m.Name,
				Description: m.Description,
				Calories:    m.Calories,
				Protein:     m.Protein,
				Carbs:       m.Carbs,
				Fat:         m.Fat,
				PrepMinutes: m.PrepMinutes,
			}
			for _, ing := range m.Ingredients {
				meal.Ingredients = append(meal.Ingredients, models.RecommendedIngredient{
					Name:     ing.Name,
					Quantity: ing.Quantity,
					Unit:     ing.Unit,
				})
			}
			out = append(out, meal)
		}
	}
	return out
}

// ---------- placeholder ----------

var placeholderByType = map[string]struct {
	name string
	desc string
}{
	"breakfast": {"Oatmeal with berries", "Rolled oats cooked with milk, topped with mixed berries."},
	"lunch":     {"Grilled chicken salad", "Mixed greens, grilled chicken breast, olive oil dressing."},
	"dinner":    {"Baked salmon with vegetables", "Oven-baked salmon fillet with roasted seasonal vegetables."},
	"snack":     {"Greek yogurt with nuts", "Plain Greek yogurt with a handful of almonds."},
}

var mealTypeOrder = []string{"breakfast", "lunch", "dinner", "snack", "snack"}

// placeholderMeals builds the static template the user sees while the
// AI pass runs, sized to their meals-per-day and calorie target.
func placeholderMeals(days, mealsPerDay int, dailyCalories float64) []models.RecommendedMeal {
	if mealsPerDay < 2 {
		mealsPerDay = 2
	}
	if mealsPerDay > len(mealTypeOrder) {
		mealsPerDay = len(mealTypeOrder)
	}
	perMeal := dailyCalories / float64(mealsPerDay)

	var out []models.RecommendedMeal
	for day := 1; day <= days; day++ {
		for i := 0; i < mealsPerDay; i++ {
			t := mealTypeOrder[i]
			tmpl := placeholderByType[t]
			out = append(out, models.RecommendedMeal{
				Day:         day,
				Type:        t,
				Name:        tmpl.name,
				Description: tmpl.desc,
				Calories:    perMeal,
				Protein:     perMeal * 0.30 / 4,
				Carbs:       perMeal * 0.40 / 4,
				Fat:         perMeal * 0.30 / 9,
				PrepMinutes: 20,
			})
		}
	}
	return out
}
