package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

// DiaryService owns the food_entries table. Entries are append-only:
// inserted on successful analysis and never mutated afterwards.
type DiaryService struct {
	db *gorm.DB
}

func NewDiaryService(db *gorm.DB) *DiaryService {
	return &DiaryService{db: db}
}

func validateEntry(entry *models.FoodEntry) error {
	switch {
	case entry == nil:
		return fmt.Errorf("%w: nil entry", ErrValidation)
	case entry.UserID <= 0:
		return fmt.Errorf("%w: missing user id", ErrValidation)
	case entry.FoodName == "":
		return fmt.Errorf("%w: missing food name", ErrValidation)
	case entry.Timestamp.IsZero():
		return fmt.Errorf("%w: missing timestamp", ErrValidation)
	}
	return nil
}

// Insert writes one entry.
func (s *DiaryService) Insert(entry *models.FoodEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("%w: insert entry: %v", ErrStore, err)
	}
	return nil
}

// InsertAll writes all entries of one analyzed meal in a single
// transaction, so a failed photo never leaves a partial meal behind.
func (s *DiaryService) InsertAll(entries []*models.FoodEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return err
		}
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if err := tx.Create(e).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: insert entries: %v", ErrStore, err)
	}
	return nil
}

// QueryByUserAndRange returns the user's entries with start <= timestamp < end,
// oldest first. Backed by the (user_id, timestamp) index.
func (s *DiaryService) QueryByUserAndRange(userID int64, start, end time.Time) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: query entries: %v", ErrStore, err)
	}
	return entries, nil
}

// DayRange is the midnight-to-midnight window containing t, in t's location.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// WeekRange is the trailing seven days ending at t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	return t.AddDate(0, 0, -7), t
}
