package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessFoodSafety(t *testing.T) {
	tests := []struct {
		name     string
		food     string
		wantCode string
	}{
		{"raw fish", "salmon sashimi", "raw_fish"},
		{"high mercury", "grilled swordfish steak", "high_mercury"},
		{"alcohol", "a glass of red wine", "alcohol"},
		{"soft cheese", "brie with crackers", "soft_cheese"},
		{"deli meat", "prosciutto panini", "deli_meat"},
		{"caffeine", "espresso", "caffeine"},
		{"case insensitive", "Beef LIVER", "vitamin_a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := AssessFoodSafety(tt.food)
			require.NotEmpty(t, warnings)
			assert.Equal(t, tt.wantCode, warnings[0].Code)
		})
	}
}

func TestAssessFoodSafety_CleanFood(t *testing.T) {
	assert.Empty(t, AssessFoodSafety("steamed broccoli"))
	assert.Empty(t, AssessFoodSafety("banana"))
}

func TestAssessFoodSafety_MultipleFlags(t *testing.T) {
	warnings := AssessFoodSafety("sushi with raw egg")
	require.Len(t, warnings, 2)

	codes := []string{warnings[0].Code, warnings[1].Code}
	assert.Contains(t, codes, "raw_fish")
	assert.Contains(t, codes, "raw_egg")
}

func TestWarningMessages(t *testing.T) {
	warnings := AssessFoodSafety("espresso")
	require.Len(t, warnings, 1)

	msgs := WarningMessages(warnings)
	require.Len(t, msgs, 1)
	assert.Equal(t, warnings[0].Message, msgs[0])
}
