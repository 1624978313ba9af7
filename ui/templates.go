package ui

import (
	"bytes"

	"mbtidash/internal/errors"
	"mbtidash/internal/logging"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes a template into a buffer first so a failing
// template never leaves a half-written response.
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		logging.Errorf("[Render] %s failed (request %s): %v", templateName, requestIDFrom(c), err)
		c.AbortWithStatusJSON(500, gin.H{"error": gin.H{"code": errors.CodeRenderFailed, "message": "template rendering failed"}})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		logging.Warnf("[Render] writing %s response: %v", templateName, err)
	}
}
