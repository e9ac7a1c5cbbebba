// Package generation exposes the text-to-image endpoints.
package generation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MEKSAAA/Anti-Fake/internal/api/form"
	"github.com/MEKSAAA/Anti-Fake/internal/api/response"
	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/dashscope"
	"github.com/MEKSAAA/Anti-Fake/internal/service"
)

const (
	defaultSize      = "1024*1024"
	defaultNumImages = 1
	maxNumImages     = 4
)

// Handler carries the image-generation dependencies.
type Handler struct {
	generator *service.ImageGenerator
}

func NewHandler(generator *service.ImageGenerator) *Handler {
	return &Handler{generator: generator}
}

// Styles lists the selectable image styles.
func (h *Handler) Styles(c *gin.Context) {
	response.OK(c, "available image styles", model.ImageStyles.List())
}

// Generate submits a generation task and blocks until the images are
// ready or the poll budget runs out.
func (h *Handler) Generate(c *gin.Context) {
	raw := strings.TrimSpace(c.PostForm("user_id"))
	userID, err := strconv.ParseUint(raw, 10, 32)
	if raw == "" || err != nil || userID == 0 {
		response.Fail(c, http.StatusUnauthorized, "user_id is required")
		return
	}

	content, _, err := form.Content(c, "")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if content == "" {
		response.Fail(c, http.StatusBadRequest, "text content is required")
		return
	}

	style := model.ImageStyles.Default()
	if raw := c.PostForm("style"); raw != "" {
		var ok bool
		if style, ok = model.ImageStyles.Lookup(raw); !ok {
			response.Fail(c, http.StatusBadRequest,
				"invalid style, valid values: "+strings.Join(model.ImageStyles.Values(), ", "))
			return
		}
	}

	size := c.DefaultPostForm("size", defaultSize)
	n := defaultNumImages
	if raw := c.PostForm("num_images"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxNumImages {
			response.Fail(c, http.StatusBadRequest, "num_images must be between 1 and 4")
			return
		}
		n = parsed
	}

	outcome, err := h.generator.Generate(c.Request.Context(), uint(userID), content, style, size, n)
	if err != nil {
		if errors.Is(err, dashscope.ErrPollTimeout) {
			response.Fail(c, http.StatusRequestTimeout, "image generation timed out, please try again")
			return
		}
		var failed *dashscope.TaskFailedError
		if errors.As(err, &failed) {
			response.Fail(c, http.StatusInternalServerError, "image generation task failed")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "image generation failed")
		return
	}
	response.OK(c, "images generated", outcome)
}

// History returns a user's generation records, newest first.
func (h *Handler) History(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	items, err := service.GenerationHistory(uint(userID))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load generation history")
		return
	}
	response.OK(c, "generation history", items)
}
