package models

// Period selects the aggregation window of a gap report.
type Period string

const (
	PeriodDay  Period = "day"
	PeriodWeek Period = "week"
)

// NutrientGap compares consumed intake against the target for one nutrient.
// Deficit is clamped at zero: a surplus is not reported as negative need.
type NutrientGap struct {
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Deficit  float64 `json:"deficit"`
	Percent  float64 `json:"percent"` // consumed/target*100, 0 when target is 0
}

// GapReport is the computed shortfall between consumed and target nutrients
// over a period. Ephemeral: computed on demand, never persisted.
type GapReport struct {
	UserID    int64                  `json:"user_id"`
	Period    Period                 `json:"period"`
	Nutrients map[string]NutrientGap `json:"nutrients"`
	MealCount int                    `json:"meal_count"`
}

// Missing returns the nutrients with a positive deficit.
func (r *GapReport) Missing() map[string]float64 {
	out := map[string]float64{}
	for key, g := range r.Nutrients {
		if g.Deficit > 0 {
			out[key] = g.Deficit
		}
	}
	return out
}
