package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

func profileAtWeek(week int) *ProfileService {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewProfileService(start)
	s.now = func() time.Time { return start.AddDate(0, 0, week*7) }
	return s
}

func TestCurrentWeek(t *testing.T) {
	assert.Equal(t, 5, profileAtWeek(5).CurrentWeek())

	t.Run("clamped to 1..42", func(t *testing.T) {
		assert.Equal(t, 1, profileAtWeek(0).CurrentWeek())
		assert.Equal(t, 42, profileAtWeek(60).CurrentWeek())
	})
}

func TestTrimesterBoundaries(t *testing.T) {
	tests := []struct {
		week int
		want int
	}{
		{1, 1}, {12, 1}, {13, 2}, {27, 2}, {28, 3}, {42, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, profileAtWeek(tt.week).Trimester(), "week %d", tt.week)
	}
}

func TestAdjustedDailyTargets(t *testing.T) {
	base := models.Targets{"calories": 2200, "protein_g": 71, "iron_mg": 27, "calcium_mg": 1000, "folate_mcg": 600}

	t.Run("first trimester lowers calories", func(t *testing.T) {
		got := profileAtWeek(8).AdjustedDailyTargets(base)
		assert.Equal(t, 1800.0, got["calories"])
		assert.Equal(t, 600.0, got["folate_mcg"])
	})

	t.Run("third trimester raises iron and calcium", func(t *testing.T) {
		got := profileAtWeek(35).AdjustedDailyTargets(base)
		assert.Equal(t, 2400.0, got["calories"])
		assert.Equal(t, 30.0, got["iron_mg"])
		assert.Equal(t, 1200.0, got["calcium_mg"])
	})

	t.Run("base table is not mutated", func(t *testing.T) {
		_ = profileAtWeek(35).AdjustedDailyTargets(base)
		assert.Equal(t, 2200.0, base["calories"])
	})
}

func TestAdjustedWeeklyTargets(t *testing.T) {
	weekly := models.Targets{"calories": 2200 * 7, "protein_g": 71 * 7, "folate_mcg": 600 * 7}
	got := profileAtWeek(20).AdjustedWeeklyTargets(weekly)
	assert.Equal(t, 2200.0*7, got["calories"])
	assert.Equal(t, 75.0*7, got["protein_g"])
	// Non-adjusted nutrients keep the reference weekly value.
	assert.Equal(t, 600.0*7, got["folate_mcg"])
}
