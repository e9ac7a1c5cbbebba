package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/forensics"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/llm"
)

// AnalysisResult is the outcome of a fact-check, independent of whether
// it could be persisted.
type AnalysisResult struct {
	IsFake       bool     `json:"is_fake"`
	Reason       string   `json:"detection_reason"`
	RelatedLinks []string `json:"related_news_links"`
}

// DetectionOutcome bundles the analysis with its persistence status and
// the stored record (ID and timestamp are only meaningful when saved).
type DetectionOutcome struct {
	Analysis    AnalysisResult
	Forensics   *forensics.Result // image detections only
	Record      *model.DetectionRecord
	Persistence PersistenceOutcome
}

// ForensicsDetector is the image-forensics dependency of the detector.
type ForensicsDetector interface {
	Detect(ctx context.Context, imagePath, text string) (*forensics.Result, error)
}

// EvidenceSource gathers supporting material for a claim. Both methods
// are best effort and never fail.
type EvidenceSource interface {
	Fetch(text string) (string, []string)
	Gather(text string) []string
}

// Detector orchestrates text and image detections: evidence, model
// calls, forensics, and recording.
type Detector struct {
	llm       llm.Chatter
	forensics ForensicsDetector
	evidence  EvidenceSource
	recorder  OutcomeRecorder
}

func NewDetector(chatter llm.Chatter, fd ForensicsDetector, ev EvidenceSource, rec OutcomeRecorder) *Detector {
	return &Detector{llm: chatter, forensics: fd, evidence: ev, recorder: rec}
}

// verdictFromReason derives the binary verdict from the reason text: the
// analysis prompt demands the verdict in the first sentence, so only the
// opening 50 characters are inspected for the fake keywords.
func verdictFromReason(reason string) bool {
	runes := []rune(reason)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	head := string(runes)
	return strings.Contains(head, "虚假") || strings.Contains(head, "假")
}

// DetectText runs a fact-check over a piece of news text.
func (d *Detector) DetectText(ctx context.Context, userID uint, source, content string) (*DetectionOutcome, error) {
	summary, links := d.evidence.Fetch(content)

	reason, err := d.llm.Chat(ctx, llm.DetectionSystemPrompt, llm.DetectionPrompt(content, summary))
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}

	record := &model.DetectionRecord{
		UserID:          userID,
		Source:          source,
		Content:         content,
		DetectionReason: reason,
	}
	record.SetLinks(links)

	isFake := verdictFromReason(reason)
	return &DetectionOutcome{
		Analysis:    AnalysisResult{IsFake: isFake, Reason: reason, RelatedLinks: links},
		Record:      record,
		Persistence: d.recorder.RecordDetection(record, isFake),
	}, nil
}

// DetectImage runs an image+text pair through the forensics service and,
// for fakes, asks the model for a readable explanation. Translation of
// the accompanying text is advisory: on failure the original text is
// sent as-is.
func (d *Detector) DetectImage(ctx context.Context, userID uint, source, content, imagePath string) (*DetectionOutcome, error) {
	text := content
	if translated, err := d.llm.Chat(ctx, llm.TranslateSystemPrompt, llm.TranslatePrompt(content)); err != nil {
		zap.L().Warn("translation failed, sending original text to forensics", zap.Error(err))
	} else if strings.TrimSpace(translated) != "" {
		text = strings.TrimSpace(translated)
	}

	result, err := d.forensics.Detect(ctx, imagePath, text)
	if err != nil {
		return nil, err
	}

	reason := "图像检测未发现明显的伪造痕迹。"
	if result.IsFake {
		// The explanation is for the user, so it is prompted with the
		// untranslated content rather than the forensics input.
		reason, err = d.llm.ChatTuned(ctx,
			llm.ForgerySystemPrompt,
			llm.ForgeryReasonPrompt(result.ManipulationTypes, result.FakeWords, content, result.FakeProbability),
			0.3, 1000)
		if err != nil {
			zap.L().Warn("forgery explanation failed, using fallback reason", zap.Error(err))
			reason = fallbackForgeryReason(result)
		}
	}

	links := d.evidence.Gather(content)

	record := &model.DetectionRecord{
		UserID:          userID,
		Source:          source,
		Content:         content,
		DetectionReason: reason,
		ImagePath:       &imagePath,
	}
	if result.DetectImagePath != "" {
		detectPath := result.DetectImagePath
		record.DetectImagePath = &detectPath
	}
	record.SetLinks(links)

	return &DetectionOutcome{
		Analysis:    AnalysisResult{IsFake: result.IsFake, Reason: reason, RelatedLinks: links},
		Forensics:   result,
		Record:      record,
		Persistence: d.recorder.RecordDetection(record, result.IsFake),
	}, nil
}

// fallbackForgeryReason covers the case where the explanation model is
// down but the forensics verdict stands.
func fallbackForgeryReason(result *forensics.Result) string {
	var sb strings.Builder
	sb.WriteString("图像检测判定该图片为虚假图片")
	if result.FakeProbability > 0 {
		fmt.Fprintf(&sb, "，伪造可能性为%.2f%%", result.FakeProbability*100)
	}
	if len(result.ManipulationTypes) > 0 {
		fmt.Fprintf(&sb, "，检测到的操纵类型：%s", strings.Join(result.ManipulationTypes, "、"))
	}
	sb.WriteString("。")
	return sb.String()
}
