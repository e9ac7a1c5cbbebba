package model

import (
	"strings"
	"time"
)

// Detection record types used in history filtering.
const (
	DetectionTypeText  = "text"
	DetectionTypeImage = "image"
)

// DetectionRecord is one completed detection. Records are append-only;
// nothing updates them after creation.
type DetectionRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index" json:"user_id"`
	Source          string    `gorm:"size:255" json:"source"`
	Content         string    `gorm:"type:text" json:"content"`
	DetectionReason string    `gorm:"type:text" json:"detection_reason"`
	RelatedLinks    string    `gorm:"type:text" json:"-"` // comma-joined URLs
	ImagePath       *string   `gorm:"size:512" json:"image_path,omitempty"`
	DetectImagePath *string   `gorm:"size:512" json:"detect_image_path,omitempty"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// SetLinks stores the related links as comma-joined text.
func (r *DetectionRecord) SetLinks(links []string) {
	r.RelatedLinks = strings.Join(links, ", ")
}

// Links splits the stored link text back into a slice.
func (r *DetectionRecord) Links() []string {
	if r.RelatedLinks == "" {
		return []string{}
	}
	parts := strings.Split(r.RelatedLinks, ",")
	links := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			links = append(links, trimmed)
		}
	}
	return links
}

// Type reports whether this is an image or a text detection.
func (r *DetectionRecord) Type() string {
	if r.ImagePath != nil && *r.ImagePath != "" {
		return DetectionTypeImage
	}
	return DetectionTypeText
}

// DetectionHistoryItem is the decorated history representation.
type DetectionHistoryItem struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"user_id"`
	Source             string    `json:"source"`
	Content            string    `json:"content"`
	DetectionReason    string    `json:"detection_reason"`
	RelatedLinks       []string  `json:"related_news_links"`
	ImagePath          *string   `json:"image_path,omitempty"`
	DetectImagePath    *string   `json:"detect_image_path,omitempty"`
	DetectionType      string    `json:"detection_type"`
	HasDetectionResult *bool     `json:"has_detection_result,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewDetectionHistoryItem decorates a record for history responses.
func NewDetectionHistoryItem(r *DetectionRecord) DetectionHistoryItem {
	item := DetectionHistoryItem{
		ID:              r.ID,
		UserID:          r.UserID,
		Source:          r.Source,
		Content:         r.Content,
		DetectionReason: r.DetectionReason,
		RelatedLinks:    r.Links(),
		ImagePath:       r.ImagePath,
		DetectImagePath: r.DetectImagePath,
		DetectionType:   r.Type(),
		CreatedAt:       r.CreatedAt,
	}
	if item.DetectionType == DetectionTypeImage {
		has := r.DetectImagePath != nil && *r.DetectImagePath != ""
		item.HasDetectionResult = &has
	}
	return item
}
