package main

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// server wires the façade's dependencies into the HTTP routes. Components
// are passed in at construction; there is no process-wide state.
type server struct {
	cfg   *Config
	store *Store
	gen   VideoGenerator
	log   zerolog.Logger
}

func newServer(cfg *Config, store *Store, gen VideoGenerator, log zerolog.Logger) *server {
	return &server{cfg: cfg, store: store, gen: gen, log: log}
}

func (s *server) routes(r *gin.Engine) {
	r.Use(cors.Default())

	r.GET("/health", s.handleHealth)
	r.GET("/", s.handleIndex)
	r.GET("/files", s.handleListFiles)
	r.GET("/download/:filename", s.handleDownload)
	r.POST("/inference", s.handleInference)
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Ditto TalkingHead API",
	})
}

func (s *server) handleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, indexHTML)
}

func (s *server) handleListFiles(c *gin.Context) {
	files, err := s.store.List()
	if err != nil {
		s.log.Error().Err(err).Msg("file listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to list files: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (s *server) handleDownload(c *gin.Context) {
	filename := c.Param("filename")

	path, err := s.store.Open(filename)
	switch {
	case errors.Is(err, ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
		return
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to open file: %v", err)})
		return
	}

	s.serveVideo(c, path, filename)
}

// handleInference is the synchronous path: validate both uploads, copy them
// into a scratch workspace, run the external process, stream the result.
// The workspace is removed on every exit path.
func (s *server) handleInference(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	imageHeader, err := c.FormFile("source_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source_image file is required"})
		return
	}
	audioHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}

	if !allowedFileType(imageHeader.Filename, allowedImageExtensions) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid image format. Allowed: %s", extList(allowedImageExtensions)),
		})
		return
	}
	if !allowedFileType(audioHeader.Filename, allowedAudioExtensions) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid audio format. Allowed: %s", extList(allowedAudioExtensions)),
		})
		return
	}

	ws, err := newWorkspace(s.log)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Processing failed: %v", err)})
		return
	}
	defer ws.remove()

	imagePath, err := s.saveUpload(ws, imageHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Processing failed: %v", err)})
		return
	}
	audioPath, err := s.saveUpload(ws, audioHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Processing failed: %v", err)})
		return
	}

	ctx := c.Request.Context()
	if timeout := s.cfg.InferenceTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resultPath, err := s.gen.Run(ctx, imagePath, audioPath)
	if err != nil {
		s.log.Error().Err(err).Msg("inference request failed")
		if errors.Is(err, ErrInferenceFailed) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Inference failed: %v", err)})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Processing failed: %v", err)})
		}
		return
	}

	if _, err := os.Stat(resultPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Processing failed: %v", err)})
		return
	}

	s.serveVideo(c, resultPath, "talking_head_"+newID()+".mp4")
}

func (s *server) saveUpload(ws *workspace, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer src.Close()

	started := time.Now()
	path, err := ws.materialize(header.Filename, src)
	if err != nil {
		return "", err
	}

	s.log.Debug().
		Str("upload", header.Filename).
		Str("path", path).
		Dur("took", time.Since(started)).
		Msg("stored upload")

	return path, nil
}

func (s *server) serveVideo(c *gin.Context, path, downloadName string) {
	c.Header("Content-Type", "video/mp4")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	c.File(path)
}
