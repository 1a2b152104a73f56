package services

import (
	"strings"
	"time"
)

// Meal-slot clock times used when a message names the meal but not the time.
var mealSlots = []struct {
	keywords []string
	hour     int
}{
	{[]string{"breakfast", "this morning"}, 8},
	{[]string{"lunch", "at noon", "midday"}, 13},
	{[]string{"dinner", "last night", "this evening", "tonight"}, 19},
}

// ParseTimeContext extracts a time reference from a meal description so the
// entry can be back-dated ("I had salmon yesterday", photo captioned
// "breakfast"). The second return is false when the text carries no
// reference and the entry should use the current time. A slot that would
// land in the future rolls back one day: "dinner" sent at 10am means
// yesterday's dinner.
func ParseTimeContext(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	dayShift := 0
	if strings.Contains(lower, "yesterday") || strings.Contains(lower, "last night") {
		dayShift = -1
	}

	hour := -1
	for _, slot := range mealSlots {
		for _, kw := range slot.keywords {
			if strings.Contains(lower, kw) {
				hour = slot.hour
				break
			}
		}
		if hour >= 0 {
			break
		}
	}

	if dayShift == 0 && hour < 0 {
		return now, false
	}

	at := now.AddDate(0, 0, dayShift)
	if hour >= 0 {
		at = time.Date(at.Year(), at.Month(), at.Day(), hour, 0, 0, 0, at.Location())
	}
	if at.After(now) {
		at = at.AddDate(0, 0, -1)
	}
	return at, true
}
