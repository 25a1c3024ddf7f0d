package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/metrics"
	"interview-insights-go/internal/pipeline"
	"interview-insights-go/internal/processor"
	"interview-insights-go/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.WithField("workers", cfg.Workers).
		WithField("perspective_mode", cfg.Perspective.Mode).
		WithField("mock_transcribe", cfg.Transcription.Mock).
		Info("configuration loaded")

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	src := transcription.New(transcription.Options{
		BaseURL: cfg.Transcription.URL,
		Mock:    cfg.Transcription.Mock,
	}, log.Component("transcription"))
	pl := pipeline.New(pipeline.OptionsFromConfig(cfg), m, log.Component("pipeline"))
	proc := processor.New(src, pl, m, cfg.Transcription.Timeout(), log.Component("processor"))

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newServer(proc, reg, log).routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Transcription.Timeout() + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
