package server

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/resume-classifier/internal/db"
	"github.com/jonathan/resume-classifier/internal/ingestion"
	"github.com/jonathan/resume-classifier/internal/pipeline"
)

// uploadField is the multipart field holding the résumé.
const uploadField = "resume"

// maxHistoryLimit caps GET /history?limit=.
const maxHistoryLimit = 500

// HistoryResponse represents the response for /history
type HistoryResponse struct {
	Predictions []db.Prediction `json:"predictions"`
	Count       int             `json:"count"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"history": s.history != nil,
	})
}

// handlePredict classifies one uploaded résumé and returns the result record.
// Failure results are still 200: the request was processed.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readUpload(r, s.processor.MaxReadBytes())
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result := s.processor.ProcessDocument(ctx, doc)
	s.jsonResponse(w, http.StatusOK, result)
}

// handlePredictStream classifies one résumé, streaming progress events
// followed by a "result" event.
func (s *Server) handlePredictStream(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readUpload(r, s.processor.MaxReadBytes())
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	defer sse.Close()

	processor, err := s.newProcessor(func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			s.logger.Printf("[WARN] Failed to write progress event: %v", err)
		}
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result := processor.ProcessDocument(ctx, doc)
	if err := sse.WriteEvent("result", result); err != nil {
		s.logger.Printf("[WARN] Failed to write result event: %v", err)
	}
}

// handleHistory lists recent predictions, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.errorResponse(w, ErrHistoryDisabled)
		return
	}

	limit := db.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: "must be an integer between 1 and 500"})
			return
		}
		limit = n
	}

	rows, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Printf("[ERROR] Failed to list predictions: %v", err)
		s.errorResponse(w, errors.New("failed to list predictions"))
		return
	}
	if rows == nil {
		rows = []db.Prediction{}
	}
	s.jsonResponse(w, http.StatusOK, HistoryResponse{Predictions: rows, Count: len(rows)})
}

// readUpload reads at most maxBytes of résumé text from a multipart "resume"
// field or, for any other content type, from the raw body. HTML is
// detected from the file name or the content type.
func (s *Server) readUpload(r *http.Request, maxBytes int) (*ingestion.Document, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		name string
		body io.Reader
	)
	if mediaType == "multipart/form-data" {
		part, err := findPart(r, uploadField)
		if err != nil {
			return nil, err
		}
		defer func() { _ = part.Close() }()
		name = part.FileName()
		if partType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type")); partType == "text/html" && name == "" {
			name = "upload.html"
		}
		body = part
	} else {
		name = filepath.Base(r.Header.Get("X-Filename"))
		if name == "." || name == "/" {
			name = ""
		}
		if mediaType == "text/html" && name == "" {
			name = "upload.html"
		}
		body = r.Body
	}
	if name == "" {
		name = "upload"
	}

	format := ingestion.DetectFormat(name)
	data, truncated, err := ingestion.ReadBounded(body, ingestion.ReadLimit(format, maxBytes))
	if err != nil {
		return nil, &ErrValidation{Field: uploadField, Message: "failed to read upload: " + err.Error()}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &ErrValidation{Field: uploadField, Message: "resume content is empty"}
	}

	doc, err := ingestion.NewDocument(name, format, data, truncated, maxBytes)
	if err != nil {
		return nil, &ErrValidation{Field: uploadField, Message: err.Error()}
	}
	return doc, nil
}

func findPart(r *http.Request, field string) (*multipart.Part, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, &ErrValidation{Field: field, Message: "invalid multipart body: " + err.Error()}
	}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, &ErrValidation{Field: field, Message: "multipart field is required"}
		}
		if err != nil {
			return nil, &ErrValidation{Field: field, Message: "invalid multipart body: " + err.Error()}
		}
		if part.FormName() == field {
			return part, nil
		}
		_ = part.Close()
	}
}
