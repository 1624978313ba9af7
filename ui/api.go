package ui

import (
	"net/http"

	"mbtidash/domain/mbti"
	"mbtidash/internal/dashboard"
	"mbtidash/internal/dataset"
	"mbtidash/internal/errors"
	"mbtidash/internal/logging"

	"github.com/gin-gonic/gin"
)

// statusFor maps an error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case errors.CodeInputMissing:
		return http.StatusServiceUnavailable
	case errors.CodeTypeNotFound, errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		logging.Errorf("[API] %s %s (request %s): %v", c.Request.Method, c.Request.URL.Path, requestIDFrom(c), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": err.Error()}})
}

// table loads the current table or writes the error response.
func (s *Server) table(c *gin.Context) (*dataset.Table, bool) {
	table, err := s.source.Table(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return table, true
}

func (s *Server) handleCountries(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"countries": table.Countries(),
		"warnings":  table.Warnings(),
	})
}

func (s *Server) handleTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": mbti.Types()})
}

func (s *Server) handleCountry(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}
	sel := dashboard.ResolveSelection(table, selectionFrom(c))

	values, err := dataset.CountryDistribution(table, sel.Country)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"country": sel.Country, "values": values})
}

func (s *Server) handleAverage(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}
	values, err := dataset.GlobalAverage(table)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": values})
}

func (s *Server) handleTop(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}
	sel := dashboard.ResolveSelection(table, selectionFrom(c))

	values, err := dataset.TopWithReference(table, sel.Type, s.builder.TopN(), s.builder.Reference())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":      sel.Type,
		"reference": s.builder.Reference(),
		"top_n":     s.builder.TopN(),
		"countries": values,
	})
}
