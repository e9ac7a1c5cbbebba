package statistics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
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
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&model.DetectionRecord{},
		&model.GlobalStatistics{},
		&model.UserStatistics{},
	))

	repository.SetDB(conn)
	t.Cleanup(func() { repository.SetDB(nil) })
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/statistics/global", Global)
	r.GET("/api/statistics/user/:user_id", User)
	r.GET("/api/statistics/trend", Trend)
	r.GET("/api/statistics/detection-types", DetectionTypes)
	r.GET("/api/statistics/recent-detections", RecentDetections)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
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

func TestGlobalCreatesRowOnFirstRead(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t)

	rec := get(r, "/api/statistics/global")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.EqualValues(t, 0, data["total_news_count"])
}

func TestUserStatisticsNotFound(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t)

	rec := get(r, "/api/statistics/user/42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestUserStatisticsBadID(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t)

	rec := get(r, "/api/statistics/user/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrendRejectsBadDays(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t)

	for _, q := range []string{"days=0", "days=-1", "days=abc", "days=365"} {
		rec := get(r, "/api/statistics/trend?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec := get(r, "/api/statistics/trend")
	assert.Equal(t, http.StatusOK, rec.Code, "days defaults when omitted")
}

func TestRecentDetectionsLimit(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t)

	rec := get(r, "/api/statistics/recent-detections?limit=500")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(r, "/api/statistics/recent-detections")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	list, ok := env.Data.([]interface{})
	require.True(t, ok)
	assert.Empty(t, list)
}

func TestDetectionTypesEmptyDatabase(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(t)

	rec := get(r, "/api/statistics/detection-types")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	total := data["total"].(map[string]interface{})
	assert.EqualValues(t, 0, total["total_count"])
}
