package service

import (
	"strings"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/repository"
)

// GlobalStatistics returns the platform-wide counters.
func GlobalStatistics() (*model.GlobalStatistics, error) {
	return repository.GetGlobalStatistics()
}

// UserStatistics returns a user's counters, or nil when the user has no
// detections yet. Callers translate nil into a 404.
func UserStatistics(userID uint) (*model.UserStatistics, error) {
	return repository.GetUserStatistics(userID)
}

// DetectionTrend returns the per-day volume for the last `days` days.
func DetectionTrend(days int) ([]model.TrendPoint, error) {
	points, err := repository.GetDetectionTrend(days)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []model.TrendPoint{}
	}
	return points, nil
}

// DetectionTypeStats returns the image/text by fake/real breakdown.
func DetectionTypeStats() (*model.DetectionTypeStats, error) {
	return repository.GetDetectionTypeStats()
}

// RecentDetections returns the newest detections across all users,
// decorated with the verdict derived from the stored reason. The same
// keyword rule the aggregate queries use applies here.
func RecentDetections(limit int) ([]model.RecentDetection, error) {
	records, err := repository.GetRecentDetections(limit)
	if err != nil {
		return nil, err
	}

	items := make([]model.RecentDetection, 0, len(records))
	for i := range records {
		items = append(items, model.RecentDetection{
			DetectionHistoryItem: model.NewDetectionHistoryItem(&records[i]),
			IsFake:               strings.Contains(records[i].DetectionReason, "虚假"),
		})
	}
	return items, nil
}
