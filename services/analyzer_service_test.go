package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

func entryWith(n models.Nutrients) models.FoodEntry {
	return models.FoodEntry{
		UserID:    1,
		Timestamp: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		FoodName:  "test food",
		Quantity:  100,
		Unit:      "g",
		Nutrients: n,
	}
}

func TestSummarize_DeficitClampedAtZero(t *testing.T) {
	a := NewAnalyzerService()
	targets := models.Targets{"protein_g": 71, "calories": 2200}

	entries := []models.FoodEntry{
		entryWith(models.Nutrients{ProteinG: 100, Calories: 500}), // protein over target
	}

	report := a.Summarize(1, models.PeriodDay, entries, targets)

	for key, gap := range report.Nutrients {
		assert.GreaterOrEqual(t, gap.Deficit, 0.0, "deficit for %s must never be negative", key)
	}
	assert.Equal(t, 0.0, report.Nutrients["protein_g"].Deficit, "surplus is not negative need")
	assert.InDelta(t, 1700, report.Nutrients["calories"].Deficit, 0.001)
}

func TestSummarize_SumsAcrossEntries(t *testing.T) {
	a := NewAnalyzerService()
	targets := models.Targets{"folate_mcg": 600}

	entries := []models.FoodEntry{
		entryWith(models.Nutrients{FolateMcg: 24}),
		entryWith(models.Nutrients{FolateMcg: 194}),
	}

	report := a.Summarize(1, models.PeriodDay, entries, targets)
	assert.InDelta(t, 218, report.Nutrients["folate_mcg"].Consumed, 0.001)
	assert.InDelta(t, 382, report.Nutrients["folate_mcg"].Deficit, 0.001)
	assert.Equal(t, 2, report.MealCount)
}

func TestSummarize_Deterministic(t *testing.T) {
	a := NewAnalyzerService()
	targets := models.Targets{"iron_mg": 27, "calories": 2200}
	entries := []models.FoodEntry{entryWith(models.Nutrients{IronMg: 5.55, Calories: 333.33})}

	first := a.Summarize(7, models.PeriodWeek, entries, targets)
	second := a.Summarize(7, models.PeriodWeek, entries, targets)
	assert.Equal(t, first, second)
}

func TestSummarize_RoundsToOneDecimal(t *testing.T) {
	a := NewAnalyzerService()
	targets := models.Targets{"iron_mg": 27}

	// 3 × 1.11 = 3.33…; displayed at one decimal.
	entries := []models.FoodEntry{
		entryWith(models.Nutrients{IronMg: 1.11}),
		entryWith(models.Nutrients{IronMg: 1.11}),
		entryWith(models.Nutrients{IronMg: 1.11}),
	}

	report := a.Summarize(1, models.PeriodDay, entries, targets)
	assert.Equal(t, 3.3, report.Nutrients["iron_mg"].Consumed)
	assert.Equal(t, 23.7, report.Nutrients["iron_mg"].Deficit)
}

func TestSummarize_EmptyEntries(t *testing.T) {
	a := NewAnalyzerService()
	targets := models.Targets{"calories": 2200}

	report := a.Summarize(1, models.PeriodDay, nil, targets)
	assert.Equal(t, 0, report.MealCount)
	assert.InDelta(t, 2200, report.Nutrients["calories"].Deficit, 0.001)
	assert.Zero(t, report.Nutrients["calories"].Percent)
}

func TestFormatSummary(t *testing.T) {
	a := NewAnalyzerService()

	t.Run("markers follow the thresholds", func(t *testing.T) {
		targets := models.Targets{"calories": 100, "protein_g": 100, "iron_mg": 100}
		entries := []models.FoodEntry{entryWith(models.Nutrients{Calories: 95, ProteinG: 75, IronMg: 10})}

		out := a.FormatSummary(a.Summarize(1, models.PeriodDay, entries, targets), "eat more lentils")
		assert.Contains(t, out, "✅ Calories")
		assert.Contains(t, out, "⚠️ Protein")
		assert.Contains(t, out, "❌ Iron")
		assert.Contains(t, out, "eat more lentils")
	})

	t.Run("all targets met congratulates", func(t *testing.T) {
		targets := models.Targets{"calories": 100}
		entries := []models.FoodEntry{entryWith(models.Nutrients{Calories: 150})}

		report := a.Summarize(1, models.PeriodDay, entries, targets)
		require.Empty(t, report.Missing())

		out := a.FormatSummary(report, "")
		assert.Contains(t, out, "🎉")
		assert.NotContains(t, out, "Recommendations")
	})

	t.Run("weekly title", func(t *testing.T) {
		out := a.FormatSummary(a.Summarize(1, models.PeriodWeek, nil, models.Targets{}), "")
		assert.True(t, strings.HasPrefix(out, "📊 Weekly"))
	})
}

func TestFallbackRecommendation(t *testing.T) {
	a := NewAnalyzerService()
	targets := models.Targets{"iron_mg": 27, "calcium_mg": 1000}
	report := a.Summarize(1, models.PeriodDay, nil, targets)

	out := FallbackRecommendation(report, []string{"Spinach", "Cheese"})
	assert.Contains(t, out, "Iron")
	assert.Contains(t, out, "Calcium")
	assert.Contains(t, out, "Spinach")

	met := a.Summarize(1, models.PeriodDay,
		[]models.FoodEntry{entryWith(models.Nutrients{IronMg: 30, CalciumMg: 1200})}, targets)
	assert.Contains(t, FallbackRecommendation(met, nil), "keep it up")
}
