package repository

import (
	"github.com/MEKSAAA/Anti-Fake/internal/model"
)

// CreateTitleRecord inserts a generated headline.
func CreateTitleRecord(record *model.TitleRecord) error {
	return db.Create(record).Error
}

// CreateSummaryRecord inserts a generated summary.
func CreateSummaryRecord(record *model.SummaryRecord) error {
	return db.Create(record).Error
}

// CreateOptimizationRecord inserts a rewritten text.
func CreateOptimizationRecord(record *model.OptimizationRecord) error {
	return db.Create(record).Error
}

// GetTitleHistory returns a user's headlines, newest first.
func GetTitleHistory(userID uint) ([]model.TitleRecord, error) {
	var records []model.TitleRecord
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}

// GetSummaryHistory returns a user's summaries, newest first.
func GetSummaryHistory(userID uint) ([]model.SummaryRecord, error) {
	var records []model.SummaryRecord
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}

// GetOptimizationHistory returns a user's rewrites, newest first.
func GetOptimizationHistory(userID uint) ([]model.OptimizationRecord, error) {
	var records []model.OptimizationRecord
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}
