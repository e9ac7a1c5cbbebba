package service

import (
	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/repository"
)

// DetectionHistory returns a user's decorated detection history,
// optionally filtered by detection type ("image" or "text").
func DetectionHistory(userID uint, detectionType string) ([]model.DetectionHistoryItem, error) {
	records, err := repository.GetDetectionHistory(userID, detectionType)
	if err != nil {
		return nil, err
	}
	items := make([]model.DetectionHistoryItem, 0, len(records))
	for i := range records {
		items = append(items, model.NewDetectionHistoryItem(&records[i]))
	}
	return items, nil
}

// TitleHistory returns a user's generated headlines, newest first.
func TitleHistory(userID uint) ([]model.TitleRecord, error) {
	return repository.GetTitleHistory(userID)
}

// SummaryHistory returns a user's generated summaries, newest first.
func SummaryHistory(userID uint) ([]model.SummaryRecord, error) {
	return repository.GetSummaryHistory(userID)
}

// OptimizationHistory returns a user's rewritten texts, newest first.
func OptimizationHistory(userID uint) ([]model.OptimizationRecord, error) {
	return repository.GetOptimizationHistory(userID)
}

// GenerationHistory returns a user's decorated generation records.
func GenerationHistory(userID uint) ([]model.GenerationHistoryItem, error) {
	records, err := repository.GetGenerationHistory(userID)
	if err != nil {
		return nil, err
	}
	items := make([]model.GenerationHistoryItem, 0, len(records))
	for i := range records {
		items = append(items, model.NewGenerationHistoryItem(&records[i]))
	}
	return items, nil
}
