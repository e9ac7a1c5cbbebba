package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/dashscope"
	"github.com/MEKSAAA/Anti-Fake/internal/repository"
)

// TaskRunner is the asynchronous text-to-image dependency of the
// generator.
type TaskRunner interface {
	CreateTask(ctx context.Context, prompt, size string, n int) (string, error)
	WaitForTask(ctx context.Context, taskID string) (*dashscope.TaskOutput, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// GenerationOutcome is a finished generation: the task identifier plus
// the images saved under the static directory.
type GenerationOutcome struct {
	TaskID string                 `json:"task_id"`
	Images []model.GeneratedImage `json:"images"`
}

// ImageGenerator turns news text into illustrative images via the async
// task API, saving results under staticDir/image_generation/<user>/.
type ImageGenerator struct {
	tasks     TaskRunner
	staticDir string
}

func NewImageGenerator(tasks TaskRunner, staticDir string) *ImageGenerator {
	return &ImageGenerator{tasks: tasks, staticDir: staticDir}
}

// Generate submits a generation task, records it, waits for completion
// and saves the resulting images. The record write is best effort: a
// failure there must not discard an already-submitted task.
func (g *ImageGenerator) Generate(ctx context.Context, userID uint, content string, style model.Style, size string, n int) (*GenerationOutcome, error) {
	prompt := fmt.Sprintf("%s。图片的风格为：%s", content, style.Description)

	taskID, err := g.tasks.CreateTask(ctx, prompt, size, n)
	if err != nil {
		return nil, err
	}

	record := &model.GenerationRecord{
		UserID:     userID,
		PromptText: content,
		Style:      style.Value,
		Size:       size,
		NumImages:  n,
		TaskID:     taskID,
	}
	if err := repository.CreateGenerationRecord(record); err != nil {
		zap.L().Warn("failed to record generation task",
			zap.String("task_id", taskID), zap.Error(err))
	}

	output, err := g.tasks.WaitForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	images := make([]model.GeneratedImage, 0, len(output.Results))
	paths := make([]string, 0, len(output.Results))
	for _, result := range output.Results {
		localPath, err := g.saveImage(ctx, userID, result.URL)
		if err != nil {
			zap.L().Warn("failed to save generated image",
				zap.String("task_id", taskID), zap.String("url", result.URL), zap.Error(err))
			continue
		}
		images = append(images, model.GeneratedImage{URL: result.URL, LocalPath: localPath})
		paths = append(paths, localPath)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("task %s succeeded but no image could be saved", taskID)
	}

	if err := repository.SetGenerationImagePaths(taskID, paths); err != nil {
		zap.L().Warn("failed to store generated image paths",
			zap.String("task_id", taskID), zap.Error(err))
	}

	return &GenerationOutcome{TaskID: taskID, Images: images}, nil
}

// saveImage downloads one result into the per-user generation directory.
func (g *ImageGenerator) saveImage(ctx context.Context, userID uint, imageURL string) (string, error) {
	data, err := g.tasks.Download(ctx, imageURL)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(g.staticDir, "image_generation", fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		imageExt(imageURL))
	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return fullPath, nil
}

// imageExt guesses the file extension from the download URL, defaulting
// to png.
func imageExt(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ".png"
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return ext
	default:
		return ".png"
	}
}
