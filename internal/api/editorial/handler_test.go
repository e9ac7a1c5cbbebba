package editorial

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MEKSAAA/Anti-Fake/internal/api/response"
	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/repository"
	"github.com/MEKSAAA/Anti-Fake/internal/service"
)

type stubChatter struct {
	answer string
	prompt string
}

func (s *stubChatter) Chat(_ context.Context, _ string, user string) (string, error) {
	s.prompt = user
	return s.answer, nil
}

func (s *stubChatter) ChatTuned(ctx context.Context, system, user string, _ float32, _ int) (string, error) {
	return s.Chat(ctx, system, user)
}

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&model.TitleRecord{},
		&model.SummaryRecord{},
		&model.OptimizationRecord{},
	))

	repository.SetDB(conn)
	t.Cleanup(func() { repository.SetDB(nil) })
}

func newTestRouter(t *testing.T, chatter *stubChatter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(service.NewEditor(chatter))
	r := gin.New()
	r.GET("/api/title/styles", h.TitleStyles)
	r.POST("/api/title/generate", h.GenerateTitle)
	r.GET("/api/title/history/:user_id", h.TitleHistory)
	r.GET("/api/summary/types", h.SummaryTypes)
	r.POST("/api/summary/summarize", h.Summarize)
	r.GET("/api/summary/history/:user_id", h.SummaryHistory)
	r.GET("/api/optimization/styles", h.TextStyles)
	r.POST("/api/optimization/optimize", h.Optimize)
	r.GET("/api/optimization/history/:user_id", h.OptimizationHistory)
	return r
}

func post(r *gin.Engine, path string, fields url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestGenerateTitle(t *testing.T) {
	setupTestDB(t)
	chatter := &stubChatter{answer: "震撼标题"}
	r := newTestRouter(t, chatter)

	rec := post(r, "/api/title/generate", url.Values{
		"user_id": {"1"},
		"content": {"一篇长新闻"},
		"style":   {"dramatic"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "震撼标题", data["title"])
	assert.Equal(t, "dramatic", data["style"])
	assert.Equal(t, true, data["saved"])

	// The prompt carried the style description, not the raw value.
	style, _ := model.TitleStyles.Lookup("dramatic")
	assert.Contains(t, chatter.prompt, style.Description)

	items, err := repository.GetTitleHistory(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "震撼标题", items[0].Title)
}

func TestGenerateTitleDefaultsStyle(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t, &stubChatter{answer: "标题"})

	rec := post(r, "/api/title/generate", url.Values{
		"user_id": {"1"},
		"content": {"内容"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "informative", data["style"])
}

func TestGenerateTitleValidation(t *testing.T) {
	r := newTestRouter(t, &stubChatter{})

	rec := post(r, "/api/title/generate", url.Values{"content": {"内容"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(r, "/api/title/generate", url.Values{"user_id": {"1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(r, "/api/title/generate", url.Values{
		"user_id": {"1"}, "content": {"内容"}, "style": {"nope"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummarize(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t, &stubChatter{answer: "一句话摘要"})

	rec := post(r, "/api/summary/summarize", url.Values{
		"user_id":      {"2"},
		"content":      {"很长的新闻"},
		"summary_type": {"news_flash"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "一句话摘要", data["summary"])
	assert.Equal(t, "news_flash", data["summary_type"])

	items, err := repository.GetSummaryHistory(2)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestOptimize(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t, &stubChatter{answer: "优化后的文本"})

	rec := post(r, "/api/optimization/optimize", url.Values{
		"user_id": {"3"},
		"content": {"原始文本"},
		"style":   {"formal"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "优化后的文本", data["optimized_text"])

	items, err := repository.GetOptimizationHistory(3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "原始文本", items[0].OriginalText)
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTitleHistory(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t, &stubChatter{answer: "标题"})

	// No records yet.
	rec := get(r, "/api/title/history/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)

	post(r, "/api/title/generate", url.Values{
		"user_id": {"1"},
		"content": {"一篇新闻"},
	})

	rec = get(r, "/api/title/history/1")
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := decodeEnvelope(t, rec).Data.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	entry := items[0].(map[string]interface{})
	assert.Equal(t, "标题", entry["title"])

	// History is per user.
	rec = get(r, "/api/title/history/2")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(r, "/api/title/history/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryHistory(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t, &stubChatter{answer: "摘要"})

	rec := get(r, "/api/summary/history/2")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	post(r, "/api/summary/summarize", url.Values{
		"user_id": {"2"},
		"content": {"很长的新闻"},
	})

	rec = get(r, "/api/summary/history/2")
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := decodeEnvelope(t, rec).Data.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	entry := items[0].(map[string]interface{})
	assert.Equal(t, "摘要", entry["summary"])
}

func TestOptimizationHistory(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t, &stubChatter{answer: "优化后的文本"})

	rec := get(r, "/api/optimization/history/3")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	post(r, "/api/optimization/optimize", url.Values{
		"user_id": {"3"},
		"content": {"原始文本"},
	})

	rec = get(r, "/api/optimization/history/3")
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := decodeEnvelope(t, rec).Data.([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	entry := items[0].(map[string]interface{})
	assert.Equal(t, "原始文本", entry["original_text"])
}

func TestStyleListings(t *testing.T) {
	r := newTestRouter(t, &stubChatter{})

	cases := []struct {
		path string
		size int
	}{
		{"/api/title/styles", 7},
		{"/api/summary/types", 5},
		{"/api/optimization/styles", 9},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, tc.path)
		list, ok := decodeEnvelope(t, rec).Data.([]interface{})
		require.True(t, ok, tc.path)
		assert.Len(t, list, tc.size, tc.path)
	}
}
