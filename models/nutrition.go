package models

// NutritionFact is reference nutrient density for one food: amounts per 100
// reference units (grams or milliliters, depending on the food key).
type NutritionFact struct {
	FoodKey string
	Per100  Nutrients
}

// Targets maps a nutrient key to its recommended amount for a period.
// The daily table comes from the pregnancy requirements in the reference
// file; the profile service adjusts it by trimester.
type Targets map[string]float64

// Clone returns an independent copy, so callers can adjust without
// touching the shared read-only table.
func (t Targets) Clone() Targets {
	out := make(Targets, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
