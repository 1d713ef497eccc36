// Package server exposes the import pipeline over HTTP for the dashboard
// front end.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/Bernix01/restos/internal/aggregate"
	"github.com/Bernix01/restos/internal/batch"
	"github.com/Bernix01/restos/internal/model"
	"github.com/Bernix01/restos/internal/parser"
	"github.com/Bernix01/restos/internal/validate"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	processor *batch.Processor
	logger    *log.Logger
}

// NewServer creates a new API server
func NewServer(config *Config, logger *log.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:    config,
		router:    router,
		processor: batch.New(logger),
		logger:    logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/import", s.handleImport)
		v1.POST("/summary", s.handleSummary)
		v1.POST("/parse", s.handleParse)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleImport accepts a multipart form with one or more "files" parts and
// returns the partitioned documents plus the dashboard summary. A file that
// fails to parse lands in the errors list; it never fails the request.
func (s *Server) handleImport(c *gin.Context) {
	files, ok := s.readFiles(c)
	if !ok {
		return
	}

	result := s.processor.Process(c.Request.Context(), files)
	summary := aggregate.Build(s.logger, result.Invoices, result.CreditNotes)

	c.JSON(http.StatusOK, ImportResponse{
		Invoices:    result.Invoices,
		CreditNotes: result.CreditNotes,
		Errors:      result.Errors,
		Summary:     summary,
	})
}

// handleSummary is handleImport without the document payloads.
func (s *Server) handleSummary(c *gin.Context) {
	files, ok := s.readFiles(c)
	if !ok {
		return
	}

	result := s.processor.Process(c.Request.Context(), files)

	c.JSON(http.StatusOK, SummaryResponse{
		Summary: aggregate.Build(s.logger, result.Invoices, result.CreditNotes),
		Errors:  result.Errors,
	})
}

// handleParse parses a single authorization envelope from the request body.
// The X-File-Name header supplies the file name for the month check.
func (s *Server) handleParse(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	fileName := c.GetHeader("X-File-Name")

	inv, cn, perr := parser.Parse(fileName, body)
	if perr == nil && inv != nil && fileName != "" {
		perr = validate.InvoiceMonth(inv)
	}
	if perr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": model.AsParseError(fileName, perr)})
		return
	}

	c.JSON(http.StatusOK, ParseResponse{
		Invoice:    inv,
		CreditNote: cn,
	})
}

func (s *Server) readFiles(c *gin.Context) ([]model.RawDocument, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form upload"})
		return nil, false
	}

	parts := form.File["files"]
	if len(parts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return nil, false
	}

	files := make([]model.RawDocument, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file " + part.Filename})
			return nil, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file " + part.Filename})
			return nil, false
		}
		files = append(files, model.RawDocument{FileName: part.Filename, Bytes: data})
	}
	return files, true
}
