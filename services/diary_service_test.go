package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

func newTestDiary(t *testing.T) *DiaryService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FoodEntry{}))
	return NewDiaryService(db)
}

func TestInsertAndQueryRoundTrip(t *testing.T) {
	diary := newTestDiary(t)
	ts := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

	entry := &models.FoodEntry{
		UserID:    42,
		Timestamp: ts,
		FoodName:  "banana",
		Quantity:  1,
		Unit:      "piece",
		Nutrients: models.Nutrients{Calories: 89, FolateMcg: 24, VitaminCMg: 8.7},
		Safe:      true,
	}
	require.NoError(t, diary.Insert(entry))

	got, err := diary.QueryByUserAndRange(42, ts, ts.Add(time.Second))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "banana", got[0].FoodName)
	assert.Equal(t, 1.0, got[0].Quantity)
	assert.Equal(t, "piece", got[0].Unit)
	// Nutrient snapshot comes back unchanged.
	assert.InDelta(t, 89, got[0].Nutrients.Calories, 0.001)
	assert.InDelta(t, 24, got[0].Nutrients.FolateMcg, 0.001)
	assert.InDelta(t, 8.7, got[0].Nutrients.VitaminCMg, 0.001)
}

func TestQueryByUserAndRange(t *testing.T) {
	diary := newTestDiary(t)
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	insert := func(userID int64, ts time.Time, name string) {
		t.Helper()
		require.NoError(t, diary.Insert(&models.FoodEntry{
			UserID: userID, Timestamp: ts, FoodName: name, Quantity: 100, Unit: "g",
		}))
	}
	insert(1, base.Add(8*time.Hour), "breakfast egg")
	insert(1, base.Add(13*time.Hour), "lunch rice")
	insert(1, base.Add(36*time.Hour), "next day soup")
	insert(2, base.Add(9*time.Hour), "other user toast")

	t.Run("filters by user and window, oldest first", func(t *testing.T) {
		got, err := diary.QueryByUserAndRange(1, base, base.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "breakfast egg", got[0].FoodName)
		assert.Equal(t, "lunch rice", got[1].FoodName)
	})

	t.Run("end bound is exclusive", func(t *testing.T) {
		got, err := diary.QueryByUserAndRange(1, base, base.Add(13*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "breakfast egg", got[0].FoodName)
	})

	t.Run("repeat query yields identical results", func(t *testing.T) {
		first, err := diary.QueryByUserAndRange(1, base, base.Add(24*time.Hour))
		require.NoError(t, err)
		second, err := diary.QueryByUserAndRange(1, base, base.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty range", func(t *testing.T) {
		got, err := diary.QueryByUserAndRange(1, base.Add(-48*time.Hour), base.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestInsertAll(t *testing.T) {
	diary := newTestDiary(t)
	ts := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)

	entries := []*models.FoodEntry{
		{UserID: 1, Timestamp: ts, FoodName: "salmon", Quantity: 150, Unit: "g"},
		{UserID: 1, Timestamp: ts, FoodName: "rice", Quantity: 100, Unit: "g"},
	}
	require.NoError(t, diary.InsertAll(entries))

	got, err := diary.QueryByUserAndRange(1, ts, ts.Add(time.Second))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	assert.NoError(t, diary.InsertAll(nil), "empty meal writes nothing")
}

func TestInsertRejectsBadEntries(t *testing.T) {
	diary := newTestDiary(t)
	ts := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)

	bad := []*models.FoodEntry{
		nil,
		{UserID: 0, Timestamp: ts, FoodName: "toast"},
		{UserID: 1, Timestamp: ts, FoodName: ""},
		{UserID: 1, FoodName: "toast"},
	}
	for _, entry := range bad {
		err := diary.Insert(entry)
		assert.ErrorIs(t, err, ErrValidation)
	}

	err := diary.InsertAll([]*models.FoodEntry{
		{UserID: 1, Timestamp: ts, FoodName: "toast", Quantity: 50, Unit: "g"},
		{UserID: 0, Timestamp: ts, FoodName: "jam"},
	})
	assert.ErrorIs(t, err, ErrValidation)

	got, qerr := diary.QueryByUserAndRange(1, ts, ts.Add(time.Second))
	require.NoError(t, qerr)
	assert.Empty(t, got, "rejected batch must not be partially written")
}

func TestDayRange(t *testing.T) {
	at := time.Date(2026, 3, 10, 15, 42, 7, 0, time.UTC)
	start, end := DayRange(at)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekRange(t *testing.T) {
	at := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	start, end := WeekRange(at)
	assert.Equal(t, at, end)
	assert.Equal(t, at.AddDate(0, 0, -7), start)
}
