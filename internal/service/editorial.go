package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/llm"
	"github.com/MEKSAAA/Anti-Fake/internal/repository"
)

// Editor wraps the headline, summary and rewrite assistants. Persistence
// of results is best effort; the generated text is returned regardless.
type Editor struct {
	llm llm.Chatter
}

func NewEditor(chatter llm.Chatter) *Editor {
	return &Editor{llm: chatter}
}

// GenerateTitle produces a headline in the requested style.
func (e *Editor) GenerateTitle(ctx context.Context, userID uint, content string, style model.Style) (string, PersistenceOutcome, error) {
	title, err := e.llm.Chat(ctx, llm.EditorSystemPrompt, llm.TitlePrompt(style.Description, content))
	if err != nil {
		return "", PersistenceOutcome{}, fmt.Errorf("title generation failed: %w", err)
	}

	record := &model.TitleRecord{UserID: userID, Content: content, Style: style.Value, Title: title}
	outcome := persist("title", repository.CreateTitleRecord(record))
	return title, outcome, nil
}

// Summarize produces a summary of the requested type.
func (e *Editor) Summarize(ctx context.Context, userID uint, content string, summaryType model.Style) (string, PersistenceOutcome, error) {
	summary, err := e.llm.Chat(ctx, llm.EditorSystemPrompt, llm.SummaryPrompt(summaryType.Description, content))
	if err != nil {
		return "", PersistenceOutcome{}, fmt.Errorf("summary generation failed: %w", err)
	}

	record := &model.SummaryRecord{UserID: userID, Content: content, SummaryType: summaryType.Value, Summary: summary}
	outcome := persist("summary", repository.CreateSummaryRecord(record))
	return summary, outcome, nil
}

// Optimize rewrites text into the requested style.
func (e *Editor) Optimize(ctx context.Context, userID uint, text string, style model.Style) (string, PersistenceOutcome, error) {
	optimized, err := e.llm.Chat(ctx, llm.EditorSystemPrompt, llm.OptimizePrompt(style.Description, text))
	if err != nil {
		return "", PersistenceOutcome{}, fmt.Errorf("text optimization failed: %w", err)
	}

	record := &model.OptimizationRecord{UserID: userID, OriginalText: text, Style: style.Value, OptimizedText: optimized}
	outcome := persist("optimization", repository.CreateOptimizationRecord(record))
	return optimized, outcome, nil
}

func persist(kind string, err error) PersistenceOutcome {
	if err != nil {
		zap.L().Warn("failed to persist editorial record",
			zap.String("kind", kind), zap.Error(err))
		return PersistenceOutcome{Saved: false, Err: err}
	}
	return PersistenceOutcome{Saved: true}
}
