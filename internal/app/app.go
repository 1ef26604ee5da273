// Package app wires the two pipeline stages together: collect (feeds →
// record store) and voice (record store → audio).
package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gamenews/gamenews/internal/config"
	"github.com/gamenews/gamenews/internal/logger"
	"github.com/gamenews/gamenews/internal/metrics"
	"github.com/gamenews/gamenews/internal/news"
	"github.com/gamenews/gamenews/internal/rss"
	"github.com/gamenews/gamenews/internal/storage"
	"github.com/gamenews/gamenews/internal/tts"
)

// RunCollect runs the aggregation pipeline and replaces the persisted
// record store and text blobs with this run's output.
func RunCollect(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	fetcher := rss.NewFetcher(cfg.RequestTimeout)
	records := news.NewAggregator(cfg, fetcher).Collect(ctx)

	store := storage.NewStore(cfg.DataDir)
	if err := store.Save(records); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	if err := store.SaveTexts(records); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	metrics.Global.SetLastRun(time.Since(start))
	logger.Info("collect finished", "records", len(records), "duration", time.Since(start))
	return nil
}

// RunVoice synthesizes audio for every record that does not have it yet and
// re-persists the store with the audio paths filled in. An empty or
// unreadable store aborts the stage; any per-record failure only skips that
// record.
func RunVoice(ctx context.Context, cfg *config.Config, speaker tts.Speaker) error {
	start := time.Now()
	store := storage.NewStore(cfg.DataDir)

	records, err := store.Load()
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("loading record store: %w", err)
	}
	if len(records) == 0 {
		err := fmt.Errorf("record store is empty, run collect first")
		metrics.Global.SetError(err.Error())
		return err
	}
	logger.Info("loaded records", "count", len(records))

	var synthesized, skipped, failed int
	for i := range records {
		r := &records[i]
		audioPath := store.AudioPath(r.ID)

		if _, err := os.Stat(audioPath); err == nil {
			// Idempotent re-run: the file is already there.
			r.Audio = storage.AudioRel(r.ID)
			skipped++
			metrics.Global.IncrementAudioSkipped()
			logger.Info("audio exists, skipping", "id", r.ID)
			continue
		}

		text := recordText(store, *r)
		if text == "" {
			failed++
			metrics.Global.IncrementAudioFailed()
			logger.Warn("empty text, nothing to synthesize", "id", r.ID)
			continue
		}

		if err := speaker.Synthesize(ctx, text, audioPath); err != nil {
			failed++
			metrics.Global.IncrementAudioFailed()
			logger.Error("synthesis failed", "id", r.ID, "error", err)
			continue
		}

		r.Audio = storage.AudioRel(r.ID)
		synthesized++
		metrics.Global.IncrementAudioSynthesized()
		logger.Info("synthesized", "id", r.ID, "title", r.Title)
	}

	if err := store.Save(records); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	metrics.Global.SetLastRun(time.Since(start))
	logger.Info("voice finished",
		"synthesized", synthesized, "skipped", skipped, "failed", failed)
	return nil
}

// recordText reads the record's text blob, falling back to the record's own
// fields when the blob is missing.
func recordText(store *storage.Store, r news.Record) string {
	data, err := os.ReadFile(store.TextPath(r.ID))
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	return strings.TrimSpace(r.SpeechText())
}
