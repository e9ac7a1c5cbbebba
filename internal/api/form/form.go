// Package form holds helpers shared by the multipart endpoints.
package form

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MEKSAAA/Anti-Fake/internal/service"
)

// Content resolves the text payload of a request. An uploaded txt, pdf or
// docx file takes precedence over the inline content field and its
// filename becomes the source; inline content keeps the fallback label.
func Content(c *gin.Context, fallback string) (content, source string, err error) {
	file, err := c.FormFile("file")
	if err == nil && file != nil && file.Filename != "" {
		f, err := file.Open()
		if err != nil {
			return "", "", errors.New("failed to read uploaded file")
		}
		defer f.Close()

		text, err := service.ExtractText(file.Filename, f)
		if err != nil {
			return "", "", err
		}
		return strings.TrimSpace(text), filepath.Base(file.Filename), nil
	}
	return strings.TrimSpace(c.PostForm("content")), fallback, nil
}
