package model

import "time"

// TitleRecord is one generated headline.
type TitleRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	Style     string    `gorm:"size:50" json:"style"`
	Title     string    `gorm:"type:text" json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// SummaryRecord is one generated summary.
type SummaryRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Content     string    `gorm:"type:text" json:"content"`
	SummaryType string    `gorm:"size:50" json:"summary_type"`
	Summary     string    `gorm:"type:text" json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// OptimizationRecord is one rewritten text.
type OptimizationRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index" json:"user_id"`
	OriginalText  string    `gorm:"type:text" json:"original_text"`
	Style         string    `gorm:"size:50" json:"style"`
	OptimizedText string    `gorm:"type:text" json:"optimized_text"`
	CreatedAt     time.Time `json:"created_at"`
}
