package utils

import "strings"

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding attached to a logged food entry.
type Warning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
}

type safetyRule struct {
	keywords []string
	warning  Warning
}

// Static screen of foods commonly flagged during pregnancy. Matching is
// by name keyword; the screen is advisory, not a medical device.
var safetyRules = []safetyRule{
	{
		keywords: []string{"sushi", "sashimi", "raw fish", "raw salmon", "raw tuna", "ceviche", "tartare"},
		warning:  Warning{Code: "raw_fish", Severity: High, Message: "Raw fish can carry listeria and parasites; choose fully cooked fish instead."},
	},
	{
		keywords: []string{"swordfish", "king mackerel", "shark", "tilefish", "bigeye tuna"},
		warning:  Warning{Code: "high_mercury", Severity: High, Message: "High-mercury fish should be avoided during pregnancy."},
	},
	{
		keywords: []string{"alcohol", "wine", "beer", "cocktail", "liquor"},
		warning:  Warning{Code: "alcohol", Severity: High, Message: "No amount of alcohol is considered safe during pregnancy."},
	},
	{
		keywords: []string{"brie", "camembert", "blue cheese", "gorgonzola", "roquefort", "unpasteurized"},
		warning:  Warning{Code: "soft_cheese", Severity: Caution, Message: "Soft or unpasteurized cheeses carry a listeria risk; pasteurized hard cheeses are safer."},
	},
	{
		keywords: []string{"raw egg", "tiramisu", "homemade mayonnaise", "cookie dough"},
		warning:  Warning{Code: "raw_egg", Severity: Caution, Message: "Raw or undercooked egg carries a salmonella risk."},
	},
	{
		keywords: []string{"deli meat", "salami", "prosciutto", "hot dog", "cold cuts", "pate"},
		warning:  Warning{Code: "deli_meat", Severity: Caution, Message: "Cured and deli meats should be heated until steaming to reduce listeria risk."},
	},
	{
		keywords: []string{"coffee", "espresso", "energy drink"},
		warning:  Warning{Code: "caffeine", Severity: Info, Message: "Keep caffeine under ~200mg per day during pregnancy."},
	},
	{
		keywords: []string{"liver"},
		warning:  Warning{Code: "vitamin_a", Severity: Caution, Message: "Liver is very high in retinol (vitamin A); limit during pregnancy."},
	},
}

// AssessFoodSafety screens one food name against the pregnancy rules.
// An empty result means no flag was raised.
func AssessFoodSafety(foodName string) []Warning {
	name := strings.ToLower(foodName)

	var warnings []Warning
	for _, rule := range safetyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				warnings = append(warnings, rule.warning)
				break
			}
		}
	}
	return warnings
}

// WarningMessages flattens warnings into the strings stored on an entry.
func WarningMessages(warnings []Warning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Message)
	}
	return out
}
