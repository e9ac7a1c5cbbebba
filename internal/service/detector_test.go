package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/forensics"
)

type fakeChatter struct {
	answers map[string]string // keyed by system prompt
	errs    map[string]error
	calls   []string
	prompts map[string]string // last user prompt per system prompt
}

func (f *fakeChatter) Chat(_ context.Context, system, user string) (string, error) {
	f.calls = append(f.calls, system)
	if f.prompts == nil {
		f.prompts = make(map[string]string)
	}
	f.prompts[system] = user
	if err := f.errs[system]; err != nil {
		return "", err
	}
	return f.answers[system], nil
}

func (f *fakeChatter) ChatTuned(ctx context.Context, system, user string, _ float32, _ int) (string, error) {
	return f.Chat(ctx, system, user)
}

type fakeEvidence struct {
	summary string
	links   []string
}

func (f *fakeEvidence) Fetch(string) (string, []string) { return f.summary, f.links }
func (f *fakeEvidence) Gather(string) []string          { return f.links }

type fakeForensics struct {
	result *forensics.Result
	err    error
}

func (f *fakeForensics) Detect(context.Context, string, string) (*forensics.Result, error) {
	return f.result, f.err
}

type fakeRecorder struct {
	outcome  PersistenceOutcome
	record   *model.DetectionRecord
	isFake   bool
	recorded int
}

func (f *fakeRecorder) RecordDetection(record *model.DetectionRecord, isFake bool) PersistenceOutcome {
	f.record = record
	f.isFake = isFake
	f.recorded++
	return f.outcome
}

const detectionSystem = "你是一个专业的假新闻检测专家"

func TestDetectTextFakeVerdict(t *testing.T) {
	chatter := &fakeChatter{answers: map[string]string{
		detectionSystem: "虚假。该消息与权威报道不符。",
	}}
	evidence := &fakeEvidence{summary: "相关报道", links: []string{"https://news.example.com/a"}}
	recorder := &fakeRecorder{outcome: PersistenceOutcome{Saved: true}}
	d := NewDetector(chatter, nil, evidence, recorder)

	outcome, err := d.DetectText(context.Background(), 7, "微博", "某地发生某事")
	require.NoError(t, err)

	assert.True(t, outcome.Analysis.IsFake)
	assert.Equal(t, "虚假。该消息与权威报道不符。", outcome.Analysis.Reason)
	assert.Equal(t, []string{"https://news.example.com/a"}, outcome.Analysis.RelatedLinks)
	assert.True(t, outcome.Persistence.Saved)

	require.Equal(t, 1, recorder.recorded)
	assert.True(t, recorder.isFake)
	assert.EqualValues(t, 7, recorder.record.UserID)
	assert.Equal(t, "微博", recorder.record.Source)
	assert.Equal(t, []string{"https://news.example.com/a"}, recorder.record.Links())
}

func TestDetectTextRealVerdict(t *testing.T) {
	chatter := &fakeChatter{answers: map[string]string{
		detectionSystem: "真实。多家权威媒体均有报道。",
	}}
	recorder := &fakeRecorder{outcome: PersistenceOutcome{Saved: true}}
	d := NewDetector(chatter, nil, &fakeEvidence{}, recorder)

	outcome, err := d.DetectText(context.Background(), 1, "", "某地发生某事")
	require.NoError(t, err)
	assert.False(t, outcome.Analysis.IsFake)
	assert.False(t, recorder.isFake)
}

func TestDetectTextLLMFailure(t *testing.T) {
	chatter := &fakeChatter{errs: map[string]error{
		detectionSystem: errors.New("upstream down"),
	}}
	recorder := &fakeRecorder{}
	d := NewDetector(chatter, nil, &fakeEvidence{}, recorder)

	_, err := d.DetectText(context.Background(), 1, "", "某地发生某事")
	assert.Error(t, err)
	assert.Zero(t, recorder.recorded, "nothing is recorded when analysis fails")
}

func TestDetectTextReturnsAnalysisWhenSaveFails(t *testing.T) {
	chatter := &fakeChatter{answers: map[string]string{
		detectionSystem: "虚假。理由。",
	}}
	recorder := &fakeRecorder{outcome: PersistenceOutcome{Saved: false, Err: errors.New("db down")}}
	d := NewDetector(chatter, nil, &fakeEvidence{}, recorder)

	outcome, err := d.DetectText(context.Background(), 1, "", "某地发生某事")
	require.NoError(t, err, "a failed save must not discard the analysis")
	assert.True(t, outcome.Analysis.IsFake)
	assert.False(t, outcome.Persistence.Saved)
}

func TestVerdictFromReason(t *testing.T) {
	assert.True(t, verdictFromReason("虚假。理由如下。"))
	assert.True(t, verdictFromReason("这是一条假新闻。"))
	assert.False(t, verdictFromReason("真实。多方证实。"))

	// The verdict keyword only counts inside the opening 50 characters.
	padded := strings.Repeat("经过分析，", 11) + "虚假"
	assert.False(t, verdictFromReason(padded))
}

func TestDetectImageFake(t *testing.T) {
	chatter := &fakeChatter{answers: map[string]string{
		"You are a helpful assistant specialized in translation.":                 "A big event happened",
		"You are a professional expert in image authentication and forgery detection.": "图像存在face_swap痕迹，判定为虚假图片。",
	}}
	forensicsClient := &fakeForensics{result: &forensics.Result{
		IsFake:            true,
		FakeProbability:   0.93,
		ManipulationTypes: []string{"face_swap"},
		DetectImagePath:   "/static/detect/out.png",
	}}
	recorder := &fakeRecorder{outcome: PersistenceOutcome{Saved: true}}
	d := NewDetector(chatter, forensicsClient, &fakeEvidence{links: []string{"https://news.example.com/a"}}, recorder)

	outcome, err := d.DetectImage(context.Background(), 3, "微博", "某大事发生", "/static/uploads/3/x.png")
	require.NoError(t, err)

	assert.True(t, outcome.Analysis.IsFake)
	assert.Contains(t, outcome.Analysis.Reason, "face_swap")
	require.NotNil(t, outcome.Forensics)
	assert.InDelta(t, 0.93, outcome.Forensics.FakeProbability, 0.001)

	require.NotNil(t, recorder.record.ImagePath)
	assert.Equal(t, "/static/uploads/3/x.png", *recorder.record.ImagePath)
	require.NotNil(t, recorder.record.DetectImagePath)
	assert.Equal(t, "/static/detect/out.png", *recorder.record.DetectImagePath)
}

func TestDetectImageExplanationUsesOriginalText(t *testing.T) {
	translateSystem := "You are a helpful assistant specialized in translation."
	forgerySystem := "You are a professional expert in image authentication and forgery detection."
	chatter := &fakeChatter{answers: map[string]string{
		translateSystem: "A big event happened somewhere",
		forgerySystem:   "该图片为虚假图片。",
	}}
	forensicsClient := &fakeForensics{result: &forensics.Result{
		IsFake:            true,
		FakeProbability:   0.9,
		ManipulationTypes: []string{"face_swap"},
	}}
	recorder := &fakeRecorder{outcome: PersistenceOutcome{Saved: true}}
	d := NewDetector(chatter, forensicsClient, &fakeEvidence{}, recorder)

	_, err := d.DetectImage(context.Background(), 1, "", "某大事发生", "/static/uploads/1/x.png")
	require.NoError(t, err)

	// The explanation prompt carries the submitted text, not the
	// translation that was fed to forensics.
	prompt := chatter.prompts[forgerySystem]
	assert.Contains(t, prompt, "某大事发生")
	assert.NotContains(t, prompt, "A big event happened")
}

func TestDetectImageRealSkipsExplanation(t *testing.T) {
	chatter := &fakeChatter{answers: map[string]string{}}
	forensicsClient := &fakeForensics{result: &forensics.Result{IsFake: false}}
	recorder := &fakeRecorder{outcome: PersistenceOutcome{Saved: true}}
	d := NewDetector(chatter, forensicsClient, &fakeEvidence{}, recorder)

	outcome, err := d.DetectImage(context.Background(), 1, "", "内容", "/static/uploads/1/x.png")
	require.NoError(t, err)
	assert.False(t, outcome.Analysis.IsFake)
	assert.False(t, recorder.isFake)

	for _, system := range chatter.calls {
		assert.NotContains(t, system, "forgery detection", "no explanation call for a real image")
	}
}

func TestDetectImageTranslationFailureIsTolerated(t *testing.T) {
	chatter := &fakeChatter{
		answers: map[string]string{},
		errs: map[string]error{
			"You are a helpful assistant specialized in translation.": errors.New("upstream down"),
		},
	}
	forensicsClient := &fakeForensics{result: &forensics.Result{IsFake: false}}
	recorder := &fakeRecorder{outcome: PersistenceOutcome{Saved: true}}
	d := NewDetector(chatter, forensicsClient, &fakeEvidence{}, recorder)

	_, err := d.DetectImage(context.Background(), 1, "", "内容", "/static/uploads/1/x.png")
	assert.NoError(t, err)
	assert.Equal(t, 1, recorder.recorded)
}

func TestDetectImageForensicsFailure(t *testing.T) {
	chatter := &fakeChatter{answers: map[string]string{}}
	forensicsClient := &fakeForensics{err: &forensics.ConnectivityError{Err: errors.New("refused")}}
	recorder := &fakeRecorder{}
	d := NewDetector(chatter, forensicsClient, &fakeEvidence{}, recorder)

	_, err := d.DetectImage(context.Background(), 1, "", "内容", "/static/uploads/1/x.png")
	assert.Error(t, err)
	assert.Zero(t, recorder.recorded)
}

func TestDetectImageExplanationFailureUsesFallback(t *testing.T) {
	chatter := &fakeChatter{
		answers: map[string]string{
			"You are a helpful assistant specialized in translation.": "translated",
		},
		errs: map[string]error{
			"You are a professional expert in image authentication and forgery detection.": errors.New("upstream down"),
		},
	}
	forensicsClient := &fakeForensics{result: &forensics.Result{
		IsFake:            true,
		FakeProbability:   0.8,
		ManipulationTypes: []string{"text_swap"},
	}}
	recorder := &fakeRecorder{outcome: PersistenceOutcome{Saved: true}}
	d := NewDetector(chatter, forensicsClient, &fakeEvidence{}, recorder)

	outcome, err := d.DetectImage(context.Background(), 1, "", "内容", "/static/uploads/1/x.png")
	require.NoError(t, err)
	assert.Contains(t, outcome.Analysis.Reason, "虚假")
	assert.Contains(t, outcome.Analysis.Reason, "text_swap")
}
