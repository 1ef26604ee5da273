package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gamenews/gamenews/internal/config"
	"github.com/gamenews/gamenews/internal/news"
	"github.com/gamenews/gamenews/internal/storage"
)

type fakeSpeaker struct {
	texts map[string]string // outPath -> text
	fail  bool
}

func (f *fakeSpeaker) Synthesize(_ context.Context, text, outPath string) error {
	if f.fail {
		return errors.New("synthesis backend down")
	}
	if f.texts == nil {
		f.texts = make(map[string]string)
	}
	f.texts[outPath] = text
	return nil
}

func voiceFixture(t *testing.T, records []news.Record) (*config.Config, *storage.Store) {
	t.Helper()
	cfg := &config.Config{DataDir: t.TempDir()}
	store := storage.NewStore(cfg.DataDir)
	if records != nil {
		if err := store.Save(records); err != nil {
			t.Fatal(err)
		}
	}
	return cfg, store
}

func TestRunVoiceEmptyStoreAborts(t *testing.T) {
	cfg, _ := voiceFixture(t, nil)
	speaker := &fakeSpeaker{}

	if err := RunVoice(context.Background(), cfg, speaker); err == nil {
		t.Fatal("expected error for empty store")
	}
	if len(speaker.texts) != 0 {
		t.Error("speaker must not run without records")
	}
}

func TestRunVoiceCorruptStoreAborts(t *testing.T) {
	cfg, _ := voiceFixture(t, nil)
	if err := os.WriteFile(filepath.Join(cfg.DataDir, "podcasts.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RunVoice(context.Background(), cfg, &fakeSpeaker{}); err == nil {
		t.Fatal("expected error for corrupt store")
	}
}

func TestRunVoiceSynthesizesAndPersists(t *testing.T) {
	records := []news.Record{
		{ID: 1, Title: "Game X Launches", Description: "Out now."},
		{ID: 2, Title: "Patch day", Description: "Fixes."},
	}
	cfg, store := voiceFixture(t, records)
	if err := store.SaveTexts(records); err != nil {
		t.Fatal(err)
	}
	speaker := &fakeSpeaker{}

	if err := RunVoice(context.Background(), cfg, speaker); err != nil {
		t.Fatalf("RunVoice: %v", err)
	}

	if got := speaker.texts[store.AudioPath(1)]; got != "Game X Launches. Out now." {
		t.Errorf("spoken text = %q", got)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range loaded {
		if want := storage.AudioRel(r.ID); r.Audio != want {
			t.Errorf("record %d: audio = %q, want %q", i, r.Audio, want)
		}
	}
}

func TestRunVoiceSkipsExistingAudio(t *testing.T) {
	records := []news.Record{{ID: 7, Title: "Old news", Description: "Already voiced."}}
	cfg, store := voiceFixture(t, records)

	if err := os.MkdirAll(store.AudioDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.AudioPath(7), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	speaker := &fakeSpeaker{}

	if err := RunVoice(context.Background(), cfg, speaker); err != nil {
		t.Fatalf("RunVoice: %v", err)
	}

	if len(speaker.texts) != 0 {
		t.Error("speaker invoked despite existing audio")
	}
	data, err := os.ReadFile(store.AudioPath(7))
	if err != nil || string(data) != "existing" {
		t.Errorf("existing audio was touched: %q, %v", data, err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded[0].Audio != storage.AudioRel(7) {
		t.Errorf("audio path not recorded on skip: %q", loaded[0].Audio)
	}
}

func TestRunVoiceFallsBackToRecordText(t *testing.T) {
	// No text blobs on disk: the record's own fields are spoken.
	records := []news.Record{{ID: 3, Title: "Fallback", Description: "No blob."}}
	cfg, store := voiceFixture(t, records)
	speaker := &fakeSpeaker{}

	if err := RunVoice(context.Background(), cfg, speaker); err != nil {
		t.Fatalf("RunVoice: %v", err)
	}
	if got := speaker.texts[store.AudioPath(3)]; got != "Fallback. No blob." {
		t.Errorf("fallback text = %q", got)
	}
}

func TestRunVoiceRecordFailureIsolated(t *testing.T) {
	records := []news.Record{{ID: 1, Title: "Doomed", Description: "x"}}
	cfg, store := voiceFixture(t, records)

	if err := RunVoice(context.Background(), cfg, &fakeSpeaker{fail: true}); err != nil {
		t.Fatalf("record-level failure must not fail the run: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded[0].Audio != "" {
		t.Errorf("failed record must keep empty audio, got %q", loaded[0].Audio)
	}
}
