package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"interview-insights-go/internal/export"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/processor"
)

const maxBodyBytes = 32 << 20

type interviewProcessor interface {
	Process(ctx context.Context, req processor.Request) (processor.Result, error)
}

type server struct {
	proc interviewProcessor
	reg  prometheus.Gatherer
	log  *logger.Logger
}

func newServer(proc interviewProcessor, reg prometheus.Gatherer, log *logger.Logger) *server {
	return &server{proc: proc, reg: reg, log: log}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.health)
	mux.HandleFunc("POST /process", s.process)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return mux
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	s.log.WithRequest(r).Debug("health check")
	fmt.Fprint(w, "ok")
}

func (s *server) process(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "process")
	reqLog.Info("process request received")

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req processor.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		reqLog.WithError(err).Warn("invalid body")
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}

	start := time.Now()
	res, err := s.proc.Process(r.Context(), req)
	reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, processor.ErrBadRequest) {
			status = http.StatusBadRequest
		}
		reqLog.WithError(err).WithField("status", status).Warn("processor returned error")
		writeError(w, status, err)
		return
	}
	reqLog.WithField("records", len(res.Records)).Info("processor finished")

	w.Header().Set("Content-Type", format.ContentType())
	if format == export.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			reqLog.WithError(err).Error("failed to write response")
		}
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="insights-%s.%s"`, res.RunID, format))
	if err := export.Write(w, format, res.Records); err != nil {
		reqLog.WithError(err).Error("failed to write export")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
