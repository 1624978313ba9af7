package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"mbtidash/domain/mbti"
	"mbtidash/internal/dashboard"
	"mbtidash/internal/logging"

	"github.com/gin-gonic/gin"
)

// Server is the dashboard web server.
type Server struct {
	router    *gin.Engine
	builder   *dashboard.Builder
	source    dashboard.TableSource
	templates *template.Template
	files     fs.FS
}

// NewServer creates a server. files holds the templates/ and static/ trees.
func NewServer(files fs.FS, builder *dashboard.Builder) (*Server, error) {
	s := &Server{
		router:  gin.New(),
		builder: builder,
		source:  builder.Source(),
		files:   files,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"isTop": func(p *dashboard.Panel) bool { return p != nil && p.ID == "top" },
		"exportLink": func(sel mbti.Selection, oob bool) *exportLink {
			return &exportLink{Selection: sel, OOB: oob}
		},
	}

	files, err := fs.Glob(s.files, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}
	fragments, err := fs.Glob(s.files, "templates/fragments/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob fragments: %w", err)
	}
	files = append(files, fragments...)
	if len(files) == 0 {
		return fmt.Errorf("no templates found")
	}

	s.templates, err = template.New("").Funcs(funcMap).ParseFS(s.files, files...)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	logging.Debugf("[TemplateInit] parsed %d template files: %v", len(files), files)
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/export.xlsx", s.handleExport)

	// HTMX fragments re-render a single panel when its selector changes
	s.router.GET("/fragments/country", s.handleCountryFragment)
	s.router.GET("/fragments/top", s.handleTopFragment)

	api := s.router.Group("/api")
	api.GET("/countries", s.handleCountries)
	api.GET("/types", s.handleTypes)
	api.GET("/country", s.handleCountry)
	api.GET("/average", s.handleAverage)
	api.GET("/top", s.handleTop)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	logging.Infof("[Server] MBTI dashboard listening on http://%s", addr)
	return s.router.Run(addr)
}
