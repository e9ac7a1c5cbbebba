package model

import "time"

// GlobalStatistics is the single global counter row. Counters are
// increment-only; TotalCount always equals FakeCount plus RealCount.
type GlobalStatistics struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	TotalCount  int64     `gorm:"default:0" json:"total_news_count"`
	FakeCount   int64     `gorm:"default:0" json:"total_fake_count"`
	RealCount   int64     `gorm:"default:0" json:"total_real_count"`
	LastUpdated time.Time `json:"last_updated"`
}

// UserStatistics is one per-user counter row with the same invariants.
type UserStatistics struct {
	UserID      uint      `gorm:"primaryKey" json:"user_id"`
	TotalCount  int64     `gorm:"default:0" json:"total_news_count"`
	FakeCount   int64     `gorm:"default:0" json:"total_fake_count"`
	RealCount   int64     `gorm:"default:0" json:"total_real_count"`
	LastUpdated time.Time `json:"last_updated"`
}

// TrendPoint is one day of detection volume.
type TrendPoint struct {
	Date       string `json:"date"`
	TotalCount int64  `json:"total_count"`
	FakeCount  int64  `json:"fake_count"`
	RealCount  int64  `json:"real_count"`
}

// TypeCounts is a fake/real breakdown for one detection type.
type TypeCounts struct {
	TotalCount int64 `json:"total_count"`
	FakeCount  int64 `json:"fake_count"`
	RealCount  int64 `json:"real_count"`
}

// DetectionTypeStats is the image/text breakdown matrix.
type DetectionTypeStats struct {
	Total          TypeCounts `json:"total"`
	ImageDetection TypeCounts `json:"image_detection"`
	TextDetection  TypeCounts `json:"text_detection"`
}

// RecentDetection is one entry of the recent-detections feed.
type RecentDetection struct {
	DetectionHistoryItem
	IsFake bool `json:"is_fake"`
}
