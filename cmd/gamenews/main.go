package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gamenews/gamenews/internal/app"
	"github.com/gamenews/gamenews/internal/config"
	"github.com/gamenews/gamenews/internal/logger"
	"github.com/gamenews/gamenews/internal/metrics"
	"github.com/gamenews/gamenews/internal/retry"
	"github.com/gamenews/gamenews/internal/tts"
)

func main() {
	logger.Init()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "collect":
		err = app.RunCollect(ctx, cfg)
	case "voice":
		speaker := tts.NewClient(cfg.TTSLanguage, cfg.RequestTimeout, retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
			Backoff:     true,
		})
		err = app.RunVoice(ctx, cfg, speaker)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("run failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s collect|voice\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "  collect  fetch feeds and rebuild the record store")
	fmt.Fprintln(os.Stderr, "  voice    synthesize audio for stored records")
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
