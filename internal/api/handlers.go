package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"speechcoach/internal/analysis"
	"speechcoach/internal/config"
	"speechcoach/internal/store"
	"speechcoach/internal/utils"
)

// MaxUploadBytes caps the uploaded audio file size
const MaxUploadBytes = 50 << 20 // 50 MiB

// Runner runs one analysis end to end
type Runner interface {
	Run(ctx context.Context, audio []byte, mimeType string) (*store.Record, error)
}

// Handler holds the dependencies of the HTTP surface. The store and pipeline
// are constructed once in main and injected here.
type Handler struct {
	pipeline Runner
	results  *store.Store
	cfg      *config.Config
}

// NewHandler creates the HTTP handler set
func NewHandler(pipeline Runner, results *store.Store, cfg *config.Config) *Handler {
	return &Handler{
		pipeline: pipeline,
		results:  results,
		cfg:      cfg,
	}
}

// analyzeSpeech handles POST /analyze-speech
func (h *Handler) analyzeSpeech(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		// Try alternative field names used by older clients
		if file, err = c.FormFile("audio_file"); err != nil {
			if file, err = c.FormFile("file"); err != nil {
				utils.Error(c, http.StatusBadRequest, "No audio file", "an audio file is required")
				return
			}
		}
	}

	if file.Size > MaxUploadBytes {
		utils.Error(c, http.StatusBadRequest, "File too large", "audio file exceeds the 50MB limit")
		return
	}

	// The upload is staged to a temp file for the transcription step and
	// removed on every exit path, so raw audio never outlives the request.
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload_%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		log.Printf("[upload] failed to save upload: %v", err)
		utils.Error(c, http.StatusInternalServerError, "Upload failed", "failed to save the uploaded file")
		return
	}
	defer os.Remove(tmpPath)

	audio, err := os.ReadFile(tmpPath)
	if err != nil {
		log.Printf("[upload] failed to read upload: %v", err)
		utils.Error(c, http.StatusInternalServerError, "Upload failed", "failed to read the uploaded file")
		return
	}

	rec, err := h.pipeline.Run(c.Request.Context(), audio, guessContentType(file.Filename))
	if err != nil {
		h.pipelineError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"analysisId":  rec.ID,
		"redirectUrl": "/results/" + rec.ID,
		"preview": gin.H{
			"transcript":     truncate(rec.Transcript, 100),
			"hasCorrections": !strings.EqualFold(rec.CorrectedText, rec.Transcript),
		},
	})
}

// getAnalysis handles GET /api/analysis/:id
func (h *Handler) getAnalysis(c *gin.Context) {
	rec, ok := h.results.Get(c.Param("id"))
	if !ok {
		utils.Error(c, http.StatusNotFound, "Analysis not found", "the analysis does not exist or has expired")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// downloadAudio handles GET /api/download/:id
func (h *Handler) downloadAudio(c *gin.Context) {
	id := c.Param("id")
	audio, ok := h.results.GetAudio(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "Audio file not found", "the audio does not exist or has expired")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="corrected-%s.mp3"`, id))
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// healthCheck handles GET /api/health
func (h *Handler) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"results":   h.results.Len(),
	})
}

// pipelineError maps a classified pipeline failure onto the HTTP surface.
// Credential detail never reaches the client; raw error detail is attached
// only outside production.
func (h *Handler) pipelineError(c *gin.Context, err error) {
	var perr *analysis.Error
	if errors.As(err, &perr) {
		log.Printf("[analyze] %s stage failed (%s): %v", perr.Stage, perr.Kind, perr.Err)
		switch perr.Kind {
		case analysis.KindNoSpeech:
			utils.Error(c, http.StatusBadRequest, "No speech detected", "we could not detect any speech in the recording, please try again")
			return
		case analysis.KindTimeout:
			utils.Error(c, http.StatusRequestTimeout, "Request timeout", "the analysis took too long, please try again")
			return
		case analysis.KindAuth:
			utils.Error(c, http.StatusInternalServerError, "Analysis failed", "the analysis service is misconfigured, please contact support")
			return
		}
	} else {
		log.Printf("[analyze] unclassified failure: %v", err)
	}

	if h.cfg.IsProduction() {
		utils.Error(c, http.StatusInternalServerError, "Analysis failed", "something went wrong while analyzing the recording")
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Analysis failed",
		"message": "something went wrong while analyzing the recording",
		"detail":  err.Error(),
	})
}

// guessContentType maps a filename extension to an audio MIME type
func guessContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/m4a"
	case ".aac":
		return "audio/aac"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".flac":
		return "audio/flac"
	default:
		return "audio/wav"
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
