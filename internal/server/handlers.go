package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"stavis/internal/session"
	"stavis/internal/timing"
)

type sessionResponse struct {
	SessionID string           `json:"session_id"`
	Breakdown timing.Breakdown `json:"breakdown"`
}

type reportResponse struct {
	Rows    []timing.ReportRow `json:"rows"`
	Info    []string           `json:"info"`
	Summary string             `json:"summary"`
}

type waveformResponse struct {
	Waveform      timing.Waveform `json:"waveform"`
	CaptureOffset int             `json:"capture_offset"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.manager.Create()
	b, err := s.manager.Breakdown(sess.ID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sessionResponse{SessionID: sess.ID, Breakdown: b})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.manager.Delete(id)
	if s.journal != nil {
		if err := s.journal.Clear(id); err != nil {
			s.log.Warn("clear journal", zap.String("session", id), zap.Error(err))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var e timing.Event
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := e.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := s.manager.Apply(id, e)
	if errors.Is(err, session.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if s.journal != nil {
		if err := s.journal.Record(id, e); err != nil {
			s.log.Warn("journal write failed", zap.String("session", id), zap.Error(err))
		}
	}

	s.writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Breakdown: b})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b, err := s.manager.Breakdown(id)
	if errors.Is(err, session.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Breakdown: b})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b, err := s.manager.Breakdown(id)
	if errors.Is(err, session.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reportResponse{
		Rows:    timing.ReportRows(b),
		Info:    timing.InfoLines(b),
		Summary: timing.Summary(b),
	})
}

func (s *Server) handleWaveform(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, waveformResponse{
		Waveform:      s.cachedWaveform(),
		CaptureOffset: timing.CaptureTraceOffset,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
