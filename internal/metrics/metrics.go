package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedsFailed        int64
	ItemsSeen          int64
	DuplicatesFiltered int64
	RecordsCollected   int64
	AudioSynthesized   int64
	AudioSkipped       int64
	AudioFailed        int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFailed++
}

func (m *Metrics) AddItemsSeen(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsSeen += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddRecordsCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsCollected += int64(n)
}

func (m *Metrics) IncrementAudioSynthesized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AudioSynthesized++
}

func (m *Metrics) IncrementAudioSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AudioSkipped++
}

func (m *Metrics) IncrementAudioFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AudioFailed++
}

func (m *Metrics) SetLastRun(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.LastRunDuration = d
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":        m.FeedsFetched,
		"feeds_failed":         m.FeedsFailed,
		"items_seen":           m.ItemsSeen,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"records_collected":    m.RecordsCollected,
		"audio_synthesized":    m.AudioSynthesized,
		"audio_skipped":        m.AudioSkipped,
		"audio_failed":         m.AudioFailed,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
