package ui

import (
	"bytes"
	"net/http"
	"strings"

	"mbtidash/domain/mbti"
	"mbtidash/internal/dashboard"
	"mbtidash/internal/errors"
	"mbtidash/internal/logging"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// selectionFrom reads the country and type query parameters.
func selectionFrom(c *gin.Context) mbti.Selection {
	return mbti.Selection{
		Country: strings.TrimSpace(c.Query("country")),
		Type:    mbti.Type(c.Query("type")),
	}
}

// handleIndex renders the full dashboard for the selection in the query string.
func (s *Server) handleIndex(c *gin.Context) {
	page := s.builder.Build(c.Request.Context(), selectionFrom(c))

	status := http.StatusOK
	if page.Fatal != "" {
		status = http.StatusServiceUnavailable
	}
	s.renderTemplate(c, status, "index.html", page)
}

// exportLink is the download link for the current selection. OOB marks it
// for an htmx out-of-band swap when it rides along with a fragment.
type exportLink struct {
	Selection mbti.Selection
	OOB       bool
}

// fragment is one re-rendered panel plus the refreshed export link.
type fragment struct {
	Panel  *dashboard.Panel
	Export *exportLink
}

// handleCountryFragment re-renders only the country distribution panel.
// Fragments always answer 200 so htmx swaps error panels in as well.
func (s *Server) handleCountryFragment(c *gin.Context) {
	table, err := s.source.Table(c.Request.Context())
	if err != nil {
		s.renderTemplate(c, http.StatusOK, "fragment", fragment{Panel: s.unavailablePanel("country", err)})
		return
	}
	sel := dashboard.ResolveSelection(table, selectionFrom(c))
	s.renderTemplate(c, http.StatusOK, "fragment", fragment{
		Panel:  s.builder.CountryPanel(table, sel.Country),
		Export: &exportLink{Selection: sel, OOB: true},
	})
}

// handleTopFragment re-renders only the ranking panel.
func (s *Server) handleTopFragment(c *gin.Context) {
	table, err := s.source.Table(c.Request.Context())
	if err != nil {
		s.renderTemplate(c, http.StatusOK, "fragment", fragment{Panel: s.unavailablePanel("top", err)})
		return
	}
	sel := dashboard.ResolveSelection(table, selectionFrom(c))
	s.renderTemplate(c, http.StatusOK, "fragment", fragment{
		Panel:  s.builder.TopPanel(table, sel.Type),
		Export: &exportLink{Selection: sel, OOB: true},
	})
}

func (s *Server) unavailablePanel(id string, err error) *dashboard.Panel {
	logging.Warnf("[Fragment:%s] table unavailable: %v", id, err)
	return &dashboard.Panel{
		ID:        id,
		Error:     s.builder.FatalMessage(err),
		ErrorCode: errors.GetCode(err),
	}
}

// handleExport downloads the three derived views as a workbook.
func (s *Server) handleExport(c *gin.Context) {
	page := s.builder.Build(c.Request.Context(), selectionFrom(c))

	var buf bytes.Buffer
	if err := dashboard.WriteWorkbook(&buf, page); err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="mbti-dashboard.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
