// Package editorial exposes the headline, summary and rewrite helpers.
package editorial

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MEKSAAA/Anti-Fake/internal/api/response"
	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/service"
)

const savedNotice = " (warning: result could not be saved to history)"

// Handler carries the editorial dependencies.
type Handler struct {
	editor *service.Editor
}

func NewHandler(editor *service.Editor) *Handler {
	return &Handler{editor: editor}
}

// editorialInput is the common form shape of the three generate
// endpoints: user_id, content and an optional style value.
func editorialInput(c *gin.Context, set *model.StyleSet, styleField string) (uint, string, model.Style, bool) {
	raw := strings.TrimSpace(c.PostForm("user_id"))
	userID, err := strconv.ParseUint(raw, 10, 32)
	if raw == "" || err != nil || userID == 0 {
		response.Fail(c, http.StatusUnauthorized, "user_id is required")
		return 0, "", model.Style{}, false
	}

	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		response.Fail(c, http.StatusBadRequest, "content is required")
		return 0, "", model.Style{}, false
	}

	style := set.Default()
	if raw := c.PostForm(styleField); raw != "" {
		var ok bool
		if style, ok = set.Lookup(raw); !ok {
			response.Fail(c, http.StatusBadRequest,
				"invalid "+styleField+", valid values: "+strings.Join(set.Values(), ", "))
			return 0, "", model.Style{}, false
		}
	}
	return uint(userID), content, style, true
}

// historyUserID parses the user_id path parameter of the history
// endpoints.
func historyUserID(c *gin.Context) (uint, bool) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid user_id")
		return 0, false
	}
	return uint(userID), true
}

// TitleStyles lists the headline styles.
func (h *Handler) TitleStyles(c *gin.Context) {
	response.OK(c, "available title styles", model.TitleStyles.List())
}

// GenerateTitle produces a headline for the given content.
func (h *Handler) GenerateTitle(c *gin.Context) {
	userID, content, style, ok := editorialInput(c, model.TitleStyles, "style")
	if !ok {
		return
	}

	title, outcome, err := h.editor.GenerateTitle(c.Request.Context(), userID, content, style)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "title generation failed")
		return
	}
	message := "title generated"
	if !outcome.Saved {
		message += savedNotice
	}
	response.OK(c, message, gin.H{"title": title, "style": style.Value, "saved": outcome.Saved})
}

// TitleHistory returns a user's headlines, newest first. An empty
// history is reported as 404 rather than an empty list.
func (h *Handler) TitleHistory(c *gin.Context) {
	userID, ok := historyUserID(c)
	if !ok {
		return
	}
	items, err := service.TitleHistory(userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load title history")
		return
	}
	if len(items) == 0 {
		response.Fail(c, http.StatusNotFound, "no title history for this user")
		return
	}
	response.OK(c, "title history", items)
}

// SummaryTypes lists the summarization variants.
func (h *Handler) SummaryTypes(c *gin.Context) {
	response.OK(c, "available summary types", model.SummaryTypes.List())
}

// Summarize produces a summary of the given content.
func (h *Handler) Summarize(c *gin.Context) {
	userID, content, summaryType, ok := editorialInput(c, model.SummaryTypes, "summary_type")
	if !ok {
		return
	}

	summary, outcome, err := h.editor.Summarize(c.Request.Context(), userID, content, summaryType)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "summary generation failed")
		return
	}
	message := "summary generated"
	if !outcome.Saved {
		message += savedNotice
	}
	response.OK(c, message, gin.H{"summary": summary, "summary_type": summaryType.Value, "saved": outcome.Saved})
}

// SummaryHistory returns a user's summaries, newest first.
func (h *Handler) SummaryHistory(c *gin.Context) {
	userID, ok := historyUserID(c)
	if !ok {
		return
	}
	items, err := service.SummaryHistory(userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load summary history")
		return
	}
	if len(items) == 0 {
		response.Fail(c, http.StatusNotFound, "no summary history for this user")
		return
	}
	response.OK(c, "summary history", items)
}

// TextStyles lists the rewrite styles.
func (h *Handler) TextStyles(c *gin.Context) {
	response.OK(c, "available text styles", model.TextStyles.List())
}

// Optimize rewrites the given text into the requested style.
func (h *Handler) Optimize(c *gin.Context) {
	userID, content, style, ok := editorialInput(c, model.TextStyles, "style")
	if !ok {
		return
	}

	optimized, outcome, err := h.editor.Optimize(c.Request.Context(), userID, content, style)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "text optimization failed")
		return
	}
	message := "text optimized"
	if !outcome.Saved {
		message += savedNotice
	}
	response.OK(c, message, gin.H{"optimized_text": optimized, "style": style.Value, "saved": outcome.Saved})
}

// OptimizationHistory returns a user's rewrites, newest first.
func (h *Handler) OptimizationHistory(c *gin.Context) {
	userID, ok := historyUserID(c)
	if !ok {
		return
	}
	items, err := service.OptimizationHistory(userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load optimization history")
		return
	}
	if len(items) == 0 {
		response.Fail(c, http.StatusNotFound, "no optimization history for this user")
		return
	}
	response.OK(c, "optimization history", items)
}
