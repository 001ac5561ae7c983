package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MealAnalysisService turns free-text meal descriptions or food photos
// into structured items with estimated macros.
type MealAnalysisService struct {
	ai  *AIService
	rek *RekognitionService
}

func NewMealAnalysisService(ai *AIService, rek *RekognitionService) *MealAnalysisService {
	return &MealAnalysisService{ai: ai, rek: rek}
}

type AnalyzedItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sodium   float64 `json:"sodium"`
	Sugar    float64 `json:"sugar"`
}

const analysisSystemPrompt = `You are a nutrition assistant. Given a description of a meal,
respond with a JSON object of the form {"items":[{"name":string,"quantity":number,
"unit":string,"calories":number,"protein":number,"carbs":number,"fat":number,
"sodium":number,"sugar":number}]}. Quantities use grams where possible; sodium is in mg,
all other nutrients in grams, calories in kcal. Estimate conservatively. Respond with
JSON only.`

// AnalyzeText estimates macros for a described meal.
func (s *MealAnalysisService) AnalyzeText(description string) ([]AnalyzedItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("empty meal description")
	}

	raw, err := s.ai.CompleteJSON(analysisSystemPrompt, description)
	if err != nil {
		return nil, fmt.Errorf("meal analysis failed: %w", err)
	}
	return parseAnalyzedItems(raw)
}

// AnalyzePhoto detects food labels in the photo and feeds them through
// the same estimation path.
func (s *MealAnalysisService) AnalyzePhoto(base64Img string) ([]AnalyzedItem, []string, error) {
	labels, err := s.rek.RecognizeLabels(base64Img)
	if err != nil {
		return nil, nil, fmt.Errorf("photo recognition failed: %w", err)
	}
	if len(labels) == 0 {
		return nil, nil, fmt.Errorf("no food detected in photo")
	}

	items, err := s.AnalyzeText("A photo of a meal containing: " + strings.Join(labels, ", "))
	if err != nil {
		return nil, labels, err
	}
	return items, labels, nil
}

func parseAnalyzedItems(raw string) ([]AnalyzedItem, error) {
	var out struct {
		Items []AnalyzedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode analysis JSON: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("analysis returned no items")
	}
	for i := range out.Items {
		if strings.TrimSpace(out.Items[i].Name) == "" {
			return nil, fmt.Errorf("analysis item %d has no name", i)
		}
		if out.Items[i].Calories < 0 || out.Items[i].Protein < 0 ||
			out.Items[i].Carbs < 0 || out.Items[i].Fat < 0 {
			return nil, fmt.Errorf("analysis item %q has negative nutrients", out.Items[i].Name)
		}
	}
	return out.Items, nil
}
