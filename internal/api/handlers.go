package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/analysis"
	"github.com/rsilvagit/jobfit/internal/classifier"
	"github.com/rsilvagit/jobfit/internal/host"
	"github.com/rsilvagit/jobfit/internal/logger"
	"github.com/rsilvagit/jobfit/internal/model"
	"github.com/rsilvagit/jobfit/internal/session"
)

type classifyRequest struct {
	Address string `json:"address"`
}

type extractRequest struct {
	Address string `json:"address"`
	HTML    string `json:"html"`
}

type extractResponse struct {
	State   session.State     `json:"state"`
	Status  string            `json:"status"`
	Posting *model.JobPosting `json:"posting,omitempty"`
	Error   *session.Failure  `json:"error,omitempty"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondJSON(w, http.StatusOK, classifier.Classify(req.Address))
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		respondError(w, http.StatusBadRequest, "address is required")
		return
	}

	snap, err := host.NewSnapshot(req.Address, strings.NewReader(req.HTML))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable document")
		return
	}
	defer snap.Close()

	sess := session.New(snap, s.extractor, session.Options{
		SettleDelay: s.settle,
		Publisher:   s.publisher,
		Logger:      logger.WithFields(s.logger, zap.String(logger.FieldAddress, req.Address)),
		Sleep:       s.sleep,
	})
	err = sess.Open(r.Context())
	snapshot := sess.Snapshot()
	resp := extractResponse{
		State:   snapshot.State,
		Status:  session.StatusMessage(snapshot),
		Posting: snapshot.Posting,
		Error:   snapshot.Failure,
	}

	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, resp)
	case snapshot.Failure != nil:
		respondJSON(w, http.StatusUnprocessableEntity, resp)
	default:
		s.logger.Error("extraction aborted", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.submitter == nil {
		respondError(w, http.StatusServiceUnavailable, "analysis is not configured")
		return
	}
	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var resume model.Resume
	if file, header, err := r.FormFile("resume"); err == nil {
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, "unreadable resume")
			return
		}
		resume = model.Resume{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	result, err := s.submitter.Submit(r.Context(), resume)
	switch {
	case errors.Is(err, analysis.ErrNoResume), errors.Is(err, analysis.ErrNoPosting):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if result.Failed() {
		respondJSON(w, http.StatusBadGateway, map[string]string{"error": result.Error.Value})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result.Raw)
}
