// Package detection exposes the text and image fact-check endpoints.
package detection

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MEKSAAA/Anti-Fake/internal/api/form"
	"github.com/MEKSAAA/Anti-Fake/internal/api/response"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/forensics"
	"github.com/MEKSAAA/Anti-Fake/internal/service"
)

// savedNotice is appended to the response message when the analysis
// succeeded but could not be persisted.
const savedNotice = " (warning: result could not be saved to history)"

// Handler carries the detection dependencies.
type Handler struct {
	detector  *service.Detector
	staticDir string
}

func NewHandler(detector *service.Detector, staticDir string) *Handler {
	return &Handler{detector: detector, staticDir: staticDir}
}

// formUserID pulls user_id out of the form. A missing or malformed value
// is an authentication problem, not a validation one.
func formUserID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.PostForm("user_id"))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// TextDetection fact-checks news text supplied inline or as an uploaded
// txt/pdf/docx file.
func (h *Handler) TextDetection(c *gin.Context) {
	userID, ok := formUserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	content, source, err := form.Content(c, "文本检测")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if content == "" {
		response.Fail(c, http.StatusBadRequest, "text content is required")
		return
	}

	outcome, err := h.detector.DetectText(c.Request.Context(), userID, source, content)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "detection failed")
		return
	}
	respondWithOutcome(c, outcome)
}

// ImageDetection runs an uploaded image and its accompanying text
// through the forensics service. The text may arrive inline or as an
// uploaded document, same as TextDetection.
func (h *Handler) ImageDetection(c *gin.Context) {
	userID, ok := formUserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	content, source, err := form.Content(c, "图片检测")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if content == "" {
		response.Fail(c, http.StatusBadRequest, "text content is required")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "image file is required")
		return
	}

	imagePath, err := h.saveUpload(c, userID, file)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to save uploaded image")
		return
	}

	outcome, err := h.detector.DetectImage(c.Request.Context(), userID, source, content, imagePath)
	if err != nil {
		var upstream *forensics.UpstreamError
		if errors.As(err, &upstream) {
			response.Fail(c, http.StatusInternalServerError,
				fmt.Sprintf("image detection service error (status %d)", upstream.StatusCode))
			return
		}
		response.Fail(c, http.StatusInternalServerError, "image detection service unavailable")
		return
	}
	respondWithOutcome(c, outcome)
}

// History returns a user's detection records, newest first, optionally
// filtered with ?type=image|text.
func (h *Handler) History(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	items, err := service.DetectionHistory(uint(userID), c.Query("type"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load detection history")
		return
	}
	response.OK(c, "detection history", items)
}

func respondWithOutcome(c *gin.Context, outcome *service.DetectionOutcome) {
	message := "detection completed"
	if !outcome.Persistence.Saved {
		message += savedNotice
	}

	data := gin.H{
		"is_fake":            outcome.Analysis.IsFake,
		"detection_reason":   outcome.Analysis.Reason,
		"related_news_links": outcome.Analysis.RelatedLinks,
		"saved":              outcome.Persistence.Saved,
	}
	if outcome.Forensics != nil {
		data["fake_probability"] = outcome.Forensics.FakeProbability
		data["manipulation_types"] = outcome.Forensics.ManipulationTypes
		data["fake_words"] = outcome.Forensics.FakeWords
		if outcome.Forensics.DetectImagePath != "" {
			data["detect_image_path"] = outcome.Forensics.DetectImagePath
		}
	}
	response.OK(c, message, data)
}

// saveUpload stores the uploaded image under the per-user uploads
// directory with a collision-proof name.
func (h *Handler) saveUpload(c *gin.Context, userID uint, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(h.staticDir, "uploads", fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".png"
	}
	dst := filepath.Join(dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}
