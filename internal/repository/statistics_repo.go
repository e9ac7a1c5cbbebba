package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
)

// fakeReasonPattern matches reasons whose opening verdict was fake. The
// verdict keyword lives inside the reason text rather than a dedicated
// column, so aggregate queries filter on it directly.
const fakeReasonPattern = "%虚假%"

// BumpStatistics increments the global and per-user counters for one
// detection inside the caller's transaction. Total always moves with
// exactly one of fake/real, which keeps total == fake + real.
func BumpStatistics(tx *gorm.DB, userID uint, isFake bool) error {
	now := time.Now()

	var global model.GlobalStatistics
	if err := tx.FirstOrCreate(&global, model.GlobalStatistics{ID: 1}).Error; err != nil {
		return err
	}
	if err := applyBump(tx.Model(&model.GlobalStatistics{}).Where("id = ?", global.ID), isFake, now); err != nil {
		return err
	}

	var user model.UserStatistics
	if err := tx.FirstOrCreate(&user, model.UserStatistics{UserID: userID}).Error; err != nil {
		return err
	}
	return applyBump(tx.Model(&model.UserStatistics{}).Where("user_id = ?", userID), isFake, now)
}

func applyBump(query *gorm.DB, isFake bool, now time.Time) error {
	updates := map[string]interface{}{
		"total_count":  gorm.Expr("total_count + 1"),
		"last_updated": now,
	}
	if isFake {
		updates["fake_count"] = gorm.Expr("fake_count + 1")
	} else {
		updates["real_count"] = gorm.Expr("real_count + 1")
	}
	return query.Updates(updates).Error
}

// GetGlobalStatistics returns the global counters, creating the row on
// first read.
func GetGlobalStatistics() (*model.GlobalStatistics, error) {
	var stats model.GlobalStatistics
	err := db.FirstOrCreate(&stats, model.GlobalStatistics{ID: 1}).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetUserStatistics returns a user's counters, or nil when the user has
// no detections yet.
func GetUserStatistics(userID uint) (*model.UserStatistics, error) {
	var stats model.UserStatistics
	err := db.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetDetectionTrend aggregates per-day detection volume for the last
// `days` days.
func GetDetectionTrend(days int) ([]model.TrendPoint, error) {
	start := time.Now().UTC().AddDate(0, 0, -days)

	var points []model.TrendPoint
	err := db.Model(&model.DetectionRecord{}).
		Select(
			"DATE(created_at) AS date, "+
				"COUNT(*) AS total_count, "+
				"SUM(CASE WHEN detection_reason LIKE ? THEN 1 ELSE 0 END) AS fake_count, "+
				"SUM(CASE WHEN detection_reason LIKE ? THEN 0 ELSE 1 END) AS real_count",
			fakeReasonPattern, fakeReasonPattern).
		Where("created_at >= ?", start).
		Group("DATE(created_at)").
		Order("DATE(created_at)").
		Scan(&points).Error
	return points, err
}

const (
	imageRecordCond = "image_path IS NOT NULL AND image_path <> ''"
	textRecordCond  = "image_path IS NULL OR image_path = ''"
)

// GetDetectionTypeStats builds the image/text by fake/real breakdown.
func GetDetectionTypeStats() (*model.DetectionTypeStats, error) {
	stats := &model.DetectionTypeStats{}

	var err error
	if stats.ImageDetection.TotalCount, err = countDetections(imageRecordCond, false); err != nil {
		return nil, err
	}
	if stats.TextDetection.TotalCount, err = countDetections(textRecordCond, false); err != nil {
		return nil, err
	}
	if stats.ImageDetection.FakeCount, err = countDetections(imageRecordCond, true); err != nil {
		return nil, err
	}
	if stats.TextDetection.FakeCount, err = countDetections(textRecordCond, true); err != nil {
		return nil, err
	}

	stats.Total.TotalCount = stats.ImageDetection.TotalCount + stats.TextDetection.TotalCount
	stats.Total.FakeCount = stats.ImageDetection.FakeCount + stats.TextDetection.FakeCount
	stats.Total.RealCount = stats.Total.TotalCount - stats.Total.FakeCount
	stats.ImageDetection.RealCount = stats.ImageDetection.TotalCount - stats.ImageDetection.FakeCount
	stats.TextDetection.RealCount = stats.TextDetection.TotalCount - stats.TextDetection.FakeCount
	return stats, nil
}

func countDetections(typeCond string, fakeOnly bool) (int64, error) {
	query := db.Model(&model.DetectionRecord{}).Where(typeCond)
	if fakeOnly {
		query = query.Where("detection_reason LIKE ?", fakeReasonPattern)
	}
	var n int64
	err := query.Count(&n).Error
	return n, err
}
