package services

import (
	"fmt"
	"time"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

// ProfileService derives the pregnancy stage from the configured start
// date and adjusts the base daily targets by trimester.
type ProfileService struct {
	start time.Time
	now   func() time.Time
}

func NewProfileService(start time.Time) *ProfileService {
	return &ProfileService{start: start, now: time.Now}
}

// CurrentWeek is the pregnancy week, clamped to 1..42.
func (s *ProfileService) CurrentWeek() int {
	days := int(s.now().Sub(s.start).Hours() / 24)
	week := days / 7
	if week < 1 {
		return 1
	}
	if week > 42 {
		return 42
	}
	return week
}

// Trimester is 1 through week 12, 2 through week 27, 3 after.
func (s *ProfileService) Trimester() int {
	week := s.CurrentWeek()
	switch {
	case week <= 12:
		return 1
	case week <= 27:
		return 2
	default:
		return 3
	}
}

func (s *ProfileService) TrimesterName() string {
	return [...]string{"First", "Second", "Third"}[s.Trimester()-1]
}

// trimesterOverrides is the per-trimester daily amounts that replace the
// base table values.
func (s *ProfileService) trimesterOverrides() map[string]float64 {
	switch s.Trimester() {
	case 1:
		// Lower calorie needs (nausea), folate critical.
		return map[string]float64{"calories": 1800}
	case 2:
		return map[string]float64{"calories": 2200, "protein_g": 75, "calcium_mg": 1000}
	default:
		// Highest needs: final growth spurt, increased blood volume.
		return map[string]float64{"calories": 2400, "protein_g": 80, "iron_mg": 30, "calcium_mg": 1200}
	}
}

// AdjustedDailyTargets applies the trimester adjustments on top of the
// daily table from the reference file.
func (s *ProfileService) AdjustedDailyTargets(base models.Targets) models.Targets {
	t := base.Clone()
	for k, v := range s.trimesterOverrides() {
		t[k] = v
	}
	return t
}

// AdjustedWeeklyTargets applies the trimester adjustments, scaled to seven
// days, on top of the weekly table from the reference file.
func (s *ProfileService) AdjustedWeeklyTargets(weekly models.Targets) models.Targets {
	t := weekly.Clone()
	for k, v := range s.trimesterOverrides() {
		t[k] = v * 7
	}
	return t
}

// ContextString summarizes the pregnancy stage for recommendation prompts.
func (s *ProfileService) ContextString() string {
	return fmt.Sprintf("PREGNANCY PROFILE:\n- Current pregnancy week: %d\n- Trimester: %s trimester (trimester %d)",
		s.CurrentWeek(), s.TrimesterName(), s.Trimester())
}

// FocusNutrients is the per-trimester blurb shown by /start.
func (s *ProfileService) FocusNutrients() string {
	switch s.Trimester() {
	case 1:
		return `Key nutrients for the First Trimester:
• Folate (600mcg): critical for neural tube development
• Iron: building blood supply
• Zinc: cell development
• Small, frequent meals may help with nausea`
	case 2:
		return `Key nutrients for the Second Trimester:
• Calcium (1000mg): bones are developing
• Vitamin D: helps calcium absorption
• Protein (75g+): rapid growth
• Omega-3: brain development`
	default:
		return `Key nutrients for the Third Trimester:
• Iron (30mg): preparing for delivery, preventing anemia
• Protein (80g+): final growth spurt
• Calcium (1200mg): baby storing calcium for bones
• Fiber: helps with common constipation`
	}
}
