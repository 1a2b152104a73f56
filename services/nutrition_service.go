package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

// nutritionBase mirrors the on-disk reference file layout.
type nutritionBase struct {
	PregnancyRequirements struct {
		Daily  map[string]float64 `json:"daily"`
		Weekly map[string]float64 `json:"weekly"`
	} `json:"pregnancy_requirements"`
	FoodNutrients map[string]map[string]float64 `json:"food_nutrients"`
}

// NutritionService serves the static food→nutrient reference and the
// pregnancy target tables. Loaded once at startup, read-only afterwards.
type NutritionService struct {
	daily  models.Targets
	weekly models.Targets
	foods  map[string]models.Nutrients // food key → per-100-unit values
	keys   []string                    // sorted food keys, for stable iteration
}

// Keyword fallbacks used when no reference key matches the model's food
// name directly.
var foodKeywords = map[string]string{
	"chicken": "chicken_breast_100g",
	"salmon":  "salmon_100g",
	"fish":    "salmon_100g",
	"spinach": "spinach_100g",
	"broccoli": "broccoli_100g",
	"egg":     "eggs_100g",
	"milk":    "milk_100ml",
	"yogurt":  "yogurt_100g",
	"bread":   "whole_grain_bread_100g",
	"rice":    "brown_rice_100g_cooked",
	"lentil":  "lentils_100g_cooked",
	"avocado": "avocado_100g",
	"banana":  "banana_100g",
	"orange":  "orange_100g",
	"almond":  "almonds_100g",
	"cheese":  "cheese_100g",
}

func NewNutritionService(path string) (*NutritionService, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nutrition base: %w", err)
	}

	var base nutritionBase
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, fmt.Errorf("parse nutrition base: %w", err)
	}
	if len(base.FoodNutrients) == 0 {
		return nil, fmt.Errorf("nutrition base %s has no foods", path)
	}
	if len(base.PregnancyRequirements.Daily) == 0 {
		return nil, fmt.Errorf("nutrition base %s has no daily requirements", path)
	}

	s := &NutritionService{
		daily:  models.Targets(base.PregnancyRequirements.Daily),
		weekly: models.Targets(base.PregnancyRequirements.Weekly),
		foods:  make(map[string]models.Nutrients, len(base.FoodNutrients)),
	}
	for key, per100 := range base.FoodNutrients {
		s.foods[key] = models.NutrientsFromMap(per100)
		s.keys = append(s.keys, key)
	}
	sort.Strings(s.keys)

	// The weekly table is optional in the file; derive it when absent.
	if len(s.weekly) == 0 {
		s.weekly = make(models.Targets, len(s.daily))
		for k, v := range s.daily {
			s.weekly[k] = v * 7
		}
	}
	return s, nil
}

// DailyRequirements returns a copy of the daily pregnancy targets.
func (s *NutritionService) DailyRequirements() models.Targets {
	return s.daily.Clone()
}

// WeeklyRequirements returns a copy of the weekly pregnancy targets.
func (s *NutritionService) WeeklyRequirements() models.Targets {
	return s.weekly.Clone()
}

// baseName strips the measure suffixes off a reference key.
func baseName(key string) string {
	for _, suffix := range []string{"_cooked", "_100g", "_100ml"} {
		key = strings.ReplaceAll(key, suffix, "")
	}
	return key
}

// Lookup fuzzy-matches a food name against the reference table: direct
// containment against the key base first, then the keyword fallbacks.
func (s *NutritionService) Lookup(foodName string) (models.NutritionFact, bool) {
	name := strings.ToLower(strings.TrimSpace(foodName))
	if name == "" {
		return models.NutritionFact{}, false
	}

	for _, key := range s.keys {
		kb := strings.ReplaceAll(baseName(key), "_", " ")
		if strings.Contains(name, kb) || strings.Contains(kb, name) {
			return models.NutritionFact{FoodKey: key, Per100: s.foods[key]}, true
		}
	}

	for keyword, key := range foodKeywords {
		if strings.Contains(name, keyword) {
			if per100, ok := s.foods[key]; ok {
				return models.NutritionFact{FoodKey: key, Per100: per100}, true
			}
		}
	}
	return models.NutritionFact{}, false
}

// Estimate derives a nutrient snapshot for quantity of the named food.
// Gram and milliliter quantities scale against the per-100 reference row;
// a "piece" counts as one reference unit. Unknown foods report false.
func (s *NutritionService) Estimate(foodName string, quantity float64, unit string) (models.Nutrients, bool) {
	fact, ok := s.Lookup(foodName)
	if !ok {
		return models.Nutrients{}, false
	}
	factor := quantity / 100.0
	if strings.HasPrefix(strings.ToLower(unit), "piece") {
		factor = quantity
	}
	return fact.Per100.Scale(factor), true
}

// FoodsRichIn lists reference foods by descending content of a nutrient.
func (s *NutritionService) FoodsRichIn(nutrient string) []string {
	type ranked struct {
		key    string
		amount float64
	}
	var rows []ranked
	for _, key := range s.keys {
		if v := s.foods[key].Value(nutrient); v > 0 {
			rows = append(rows, ranked{key, v})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].amount > rows[j].amount })

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, prettyFoodName(r.key))
	}
	return out
}

// Suggestions picks foods addressing the largest deficits: the top two
// foods for each of the top three missing nutrients, deduplicated.
func (s *NutritionService) Suggestions(missing map[string]float64) []string {
	type gap struct {
		nutrient string
		deficit  float64
	}
	var gaps []gap
	for n, d := range missing {
		if d > 0 {
			gaps = append(gaps, gap{n, d})
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].deficit != gaps[j].deficit {
			return gaps[i].deficit > gaps[j].deficit
		}
		return gaps[i].nutrient < gaps[j].nutrient
	})
	if len(gaps) > 3 {
		gaps = gaps[:3]
	}

	seen := map[string]bool{}
	var out []string
	for _, g := range gaps {
		foods := s.FoodsRichIn(g.nutrient)
		if len(foods) > 2 {
			foods = foods[:2]
		}
		for _, f := range foods {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

func prettyFoodName(key string) string {
	words := strings.Split(strings.ReplaceAll(baseName(key), "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
