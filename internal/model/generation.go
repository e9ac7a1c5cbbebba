package model

import (
	"encoding/json"
	"time"
)

// GenerationRecord is one image-generation request. ImagePaths starts
// empty and is populated exactly once when the task succeeds; it is never
// partially overwritten.
type GenerationRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	PromptText string    `gorm:"type:text" json:"prompt_text"`
	Style      string    `gorm:"size:50" json:"style"`
	Size       string    `gorm:"size:50" json:"size"`
	NumImages  int       `json:"num_images"`
	TaskID     string    `gorm:"size:255;uniqueIndex" json:"task_id"`
	ImagePaths string    `gorm:"type:text" json:"-"` // JSON array of paths
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// Paths decodes the stored image path list.
func (r *GenerationRecord) Paths() []string {
	if r.ImagePaths == "" {
		return []string{}
	}
	var paths []string
	if err := json.Unmarshal([]byte(r.ImagePaths), &paths); err != nil {
		return []string{}
	}
	return paths
}

// EncodePaths serializes a path list for storage.
func EncodePaths(paths []string) string {
	data, err := json.Marshal(paths)
	if err != nil {
		return ""
	}
	return string(data)
}

// GenerationHistoryItem is the history representation with decoded paths.
type GenerationHistoryItem struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	PromptText string    `json:"prompt_text"`
	Style      string    `json:"style"`
	Size       string    `json:"size"`
	NumImages  int       `json:"num_images"`
	TaskID     string    `json:"task_id"`
	ImagePaths []string  `json:"image_paths"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewGenerationHistoryItem decorates a record for history responses.
func NewGenerationHistoryItem(r *GenerationRecord) GenerationHistoryItem {
	return GenerationHistoryItem{
		ID:         r.ID,
		UserID:     r.UserID,
		PromptText: r.PromptText,
		Style:      r.Style,
		Size:       r.Size,
		NumImages:  r.NumImages,
		TaskID:     r.TaskID,
		ImagePaths: r.Paths(),
		CreatedAt:  r.CreatedAt,
	}
}

// GeneratedImage is one saved image returned by the generate endpoint.
type GeneratedImage struct {
	URL       string `json:"url"`
	LocalPath string `json:"local_path"`
}
