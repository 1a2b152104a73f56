package models

import (
	"time"

	"gorm.io/gorm"
)

// FoodEntry is one logged food item tied to a Telegram user and timestamp.
// The nutrient snapshot is derived from the reference table at insertion
// time and never recomputed, so history stays stable even if the reference
// file changes later.
type FoodEntry struct {
	gorm.Model
	UserID    int64     `gorm:"index:idx_entries_user_time,priority:1;not null" json:"user_id"`
	Timestamp time.Time `gorm:"index:idx_entries_user_time,priority:2;not null" json:"timestamp"`

	FoodName string  `gorm:"not null" json:"food_name"`
	Quantity float64 `json:"quantity"` // in Unit, e.g. 150
	Unit     string  `json:"unit"`     // "g", "ml" or "piece"

	Nutrients Nutrients `gorm:"embedded" json:"nutrients"`

	Safe     bool   `json:"safe"`               // pregnancy safety screen result
	Warnings string `json:"warnings,omitempty"` // semicolon-separated warnings
}
