package repository

import (
	"github.com/MEKSAAA/Anti-Fake/internal/model"
)

// GetDetectionHistory returns a user's detection records, newest first.
// detectionType filters on image/text when non-empty.
func GetDetectionHistory(userID uint, detectionType string) ([]model.DetectionRecord, error) {
	query := db.Where("user_id = ?", userID)

	switch detectionType {
	case model.DetectionTypeImage:
		query = query.Where("image_path IS NOT NULL AND image_path <> ''")
	case model.DetectionTypeText:
		query = query.Where("image_path IS NULL OR image_path = ''")
	}

	var records []model.DetectionRecord
	err := query.Order("created_at DESC").Find(&records).Error
	return records, err
}

// GetRecentDetections returns the newest records across all users.
func GetRecentDetections(limit int) ([]model.DetectionRecord, error) {
	var records []model.DetectionRecord
	err := db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}
