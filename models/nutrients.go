package models

// Nutrient keys track the pregnancy-relevant set from the reference base.
// The order here is the display order in reports.
var NutrientKeys = []string{
	"calories",
	"protein_g",
	"carbohydrates_g",
	"fiber_g",
	"fat_g",
	"folate_mcg",
	"iron_mg",
	"calcium_mg",
	"vitamin_d_iu",
	"vitamin_c_mg",
	"vitamin_a_mcg",
	"vitamin_b12_mcg",
	"zinc_mg",
	"omega3_g",
}

// Nutrients is one nutrient snapshot. Stored as columns on a FoodEntry
// (embedded) and reused for totals and per-100g reference values.
type Nutrients struct {
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbohydratesG float64 `json:"carbohydrates_g"`
	FiberG         float64 `json:"fiber_g"`
	FatG           float64 `json:"fat_g"`
	FolateMcg      float64 `json:"folate_mcg"`
	IronMg         float64 `json:"iron_mg"`
	CalciumMg      float64 `json:"calcium_mg"`
	VitaminDIU     float64 `json:"vitamin_d_iu"`
	VitaminCMg     float64 `json:"vitamin_c_mg"`
	VitaminAMcg    float64 `json:"vitamin_a_mcg"`
	VitaminB12Mcg  float64 `json:"vitamin_b12_mcg"`
	ZincMg         float64 `json:"zinc_mg"`
	Omega3G        float64 `json:"omega3_g"`
}

func (n *Nutrients) fields() map[string]*float64 {
	return map[string]*float64{
		"calories":        &n.Calories,
		"protein_g":       &n.ProteinG,
		"carbohydrates_g": &n.CarbohydratesG,
		"fiber_g":         &n.FiberG,
		"fat_g":           &n.FatG,
		"folate_mcg":      &n.FolateMcg,
		"iron_mg":         &n.IronMg,
		"calcium_mg":      &n.CalciumMg,
		"vitamin_d_iu":    &n.VitaminDIU,
		"vitamin_c_mg":    &n.VitaminCMg,
		"vitamin_a_mcg":   &n.VitaminAMcg,
		"vitamin_b12_mcg": &n.VitaminB12Mcg,
		"zinc_mg":         &n.ZincMg,
		"omega3_g":        &n.Omega3G,
	}
}

// Value returns the amount for a nutrient key, 0 for unknown keys.
func (n Nutrients) Value(key string) float64 {
	if p, ok := n.fields()[key]; ok {
		return *p
	}
	return 0
}

// Add accumulates another snapshot into n.
func (n *Nutrients) Add(o Nutrients) {
	f := n.fields()
	for key, v := range o.fields() {
		*f[key] += *v
	}
}

// Scale returns a copy of n with every amount multiplied by factor.
func (n Nutrients) Scale(factor float64) Nutrients {
	var out Nutrients
	of := out.fields()
	for key, v := range n.fields() {
		*of[key] = *v * factor
	}
	return out
}

// NutrientsFromMap builds a snapshot from a key→amount map, ignoring
// keys outside the tracked set.
func NutrientsFromMap(m map[string]float64) Nutrients {
	var n Nutrients
	f := n.fields()
	for key, v := range m {
		if p, ok := f[key]; ok {
			*p = v
		}
	}
	return n
}

// ToMap flattens the snapshot into a key→amount map.
func (n Nutrients) ToMap() map[string]float64 {
	out := make(map[string]float64, len(NutrientKeys))
	for key, v := range n.fields() {
		out[key] = *v
	}
	return out
}
