// Package server exposes the analyzer over HTTP for browser or scripted
// front-ends: upload a CSV/XLSX file, pick columns, get the report back.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KaramelBytes/biasscan-cli/internal/bias"
	"github.com/KaramelBytes/biasscan-cli/internal/dataset"
	"github.com/KaramelBytes/biasscan-cli/internal/logging"
	"github.com/KaramelBytes/biasscan-cli/internal/report"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config controls the HTTP server.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	Load           dataset.Options
	Report         report.Options
}

// Server serves the analysis API.
type Server struct {
	cfg    Config
	engine *gin.Engine
	log    *zap.Logger
}

// New builds a server with its routes registered.
func New(cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 32 << 20
	}
	s := &Server{cfg: cfg, engine: gin.New(), log: logging.Get().Named("server")}
	s.engine.MaxMultipartMemory = cfg.MaxUploadBytes
	s.engine.Use(gin.Recovery(), s.requestLogger(), s.limitBody())

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := s.engine.Group("/api/v1")
	api.POST("/columns", s.handleColumns)
	api.POST("/analyze", s.handleAnalyze)
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)
		c.Next()
	}
}

// loadUpload reads the multipart "file" field into a table.
func (s *Server) loadUpload(c *gin.Context) (*dataset.Table, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds size limit"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return nil, false
	}
	if !dataset.Supported(fh.Filename) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": fmt.Sprintf("unsupported file type: %s", fh.Filename)})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	defer f.Close()
	opt := s.cfg.Load
	if sheet := c.PostForm("sheet"); sheet != "" {
		opt.SheetName = sheet
	}
	tab, err := dataset.Read(f, fh.Filename, opt)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return tab, true
}

func (s *Server) handleColumns(c *gin.Context) {
	tab, ok := s.loadUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":   tab.Name,
		"rows":     tab.Rows,
		"columns":  tab.Describe(),
		"warnings": tab.Warnings,
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	tab, ok := s.loadUpload(c)
	if !ok {
		return
	}
	var cols []*bias.Column
	if c.PostForm("all") == "true" {
		cols = tab.Columns
	} else {
		sel, err := tab.Select(splitNames(c.PostFormArray("columns")))
		if err != nil {
			s.fail(c, err)
			return
		}
		cols = sel
	}
	rep, err := report.Build(c.Request.Context(), tab.Name, cols, s.cfg.Report)
	if err != nil {
		s.fail(c, err)
		return
	}
	rep.Warnings = tab.Warnings
	if strings.EqualFold(c.PostForm("format"), "text") {
		c.String(http.StatusOK, rep.Text())
		return
	}
	b, err := rep.JSON()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dataset.ErrInvalidSelection):
		status = http.StatusBadRequest
	case errors.Is(err, dataset.ErrLoad):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		status = http.StatusRequestTimeout
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// splitNames accepts both repeated fields and comma-separated values.
func splitNames(in []string) []string {
	var out []string
	for _, v := range in {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}
