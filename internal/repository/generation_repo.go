package repository

import (
	"github.com/MEKSAAA/Anti-Fake/internal/model"
)

// CreateGenerationRecord inserts a generation record right after task
// submission, before polling starts.
func CreateGenerationRecord(record *model.GenerationRecord) error {
	return db.Create(record).Error
}

// SetGenerationImagePaths stores the saved image paths for a task. The
// column only moves from empty to populated; a second write for the same
// task is a no-op.
func SetGenerationImagePaths(taskID string, paths []string) error {
	return db.Model(&model.GenerationRecord{}).
		Where("task_id = ? AND (image_paths IS NULL OR image_paths = '')", taskID).
		Update("image_paths", model.EncodePaths(paths)).Error
}

// GetGenerationHistory returns a user's generation records, newest first.
func GetGenerationHistory(userID uint) ([]model.GenerationRecord, error) {
	var records []model.GenerationRecord
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}
