package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

// AnalyzerService turns diary entries plus a target table into a gap
// report. Deterministic given its inputs: no clock, no hidden state.
type AnalyzerService struct{}

func NewAnalyzerService() *AnalyzerService {
	return &AnalyzerService{}
}

// round1 is the fixed display precision: one decimal, half away from zero.
// Intermediate sums stay unrounded; only report values are rounded.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Summarize sums nutrient snapshots across entries and compares the totals
// against the targets. Deficits are clamped at zero.
func (a *AnalyzerService) Summarize(userID int64, period models.Period, entries []models.FoodEntry, targets models.Targets) models.GapReport {
	var totals models.Nutrients
	for _, e := range entries {
		totals.Add(e.Nutrients)
	}
	consumedByKey := totals.ToMap()

	report := models.GapReport{
		UserID:    userID,
		Period:    period,
		Nutrients: make(map[string]models.NutrientGap, len(models.NutrientKeys)),
		MealCount: len(entries),
	}
	for _, key := range models.NutrientKeys {
		consumed := consumedByKey[key]
		target := targets[key]

		gap := models.NutrientGap{
			Consumed: round1(consumed),
			Target:   round1(target),
			Deficit:  round1(math.Max(0, target-consumed)),
		}
		if target > 0 {
			gap.Percent = round1(consumed / target * 100)
		}
		report.Nutrients[key] = gap
	}
	return report
}

// The six nutrients called out in every summary reply.
var headlineNutrients = []struct {
	key, label, unit string
}{
	{"calories", "Calories", ""},
	{"protein_g", "Protein", "g"},
	{"iron_mg", "Iron", "mg"},
	{"folate_mcg", "Folate", "mcg"},
	{"calcium_mg", "Calcium", "mg"},
	{"vitamin_c_mg", "Vitamin C", "mg"},
}

// FormatSummary renders a report the way the bot replies to /diary and
// /weekly: one status line per headline nutrient, then either the
// recommendations or a congratulation when every target is met.
func (a *AnalyzerService) FormatSummary(report models.GapReport, recommendations string) string {
	var sb strings.Builder

	title := "Daily"
	if report.Period == models.PeriodWeek {
		title = "Weekly"
	}
	fmt.Fprintf(&sb, "📊 %s Nutrition Summary (%d items logged)\n\n", title, report.MealCount)

	for _, n := range headlineNutrients {
		gap := report.Nutrients[n.key]

		marker := "❌"
		switch {
		case gap.Percent >= 90:
			marker = "✅"
		case gap.Percent >= 70:
			marker = "⚠️"
		}
		fmt.Fprintf(&sb, "%s %s: %.1f%s / %.1f%s (%.0f%%)\n",
			marker, n.label, gap.Consumed, n.unit, gap.Target, n.unit, gap.Percent)
	}
	sb.WriteString("\n")

	if len(report.Missing()) > 0 {
		sb.WriteString("💡 Recommendations:\n")
		sb.WriteString(recommendations)
	} else {
		sb.WriteString("🎉 Great job! You're meeting all your nutritional targets!")
	}
	return sb.String()
}

// FallbackRecommendation builds the non-AI recommendation string used when
// the text API call fails, so the bot never goes silent.
func FallbackRecommendation(report models.GapReport, suggestions []string) string {
	missing := report.Missing()
	if len(missing) == 0 {
		return "You're meeting all your targets — keep it up!"
	}

	var names []string
	for _, n := range headlineNutrients {
		if _, ok := missing[n.key]; ok {
			names = append(names, n.label)
		}
	}
	line := "Some nutrients are below target."
	if len(names) > 0 {
		line = fmt.Sprintf("You're below target on: %s.", strings.Join(names, ", "))
	}
	if len(suggestions) > 0 {
		line += fmt.Sprintf(" Consider adding: %s.", strings.Join(suggestions, ", "))
	}
	return line
}
