// Package tts turns record text into MP3 audio via the Google Translate
// speech endpoint. The endpoint caps the query length, so text is synthesized
// chunk by chunk and the MP3 payloads are concatenated.
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gamenews/gamenews/internal/logger"
	"github.com/gamenews/gamenews/internal/retry"
)

const (
	defaultEndpoint = "https://translate.google.com/translate_tts"
	maxChunkRunes   = 200
)

// Speaker synthesizes text into an audio file at outPath.
type Speaker interface {
	Synthesize(ctx context.Context, text, outPath string) error
}

type Client struct {
	httpClient *http.Client
	endpoint   string
	lang       string
	retry      retry.Config
}

func NewClient(lang string, timeout time.Duration, rc retry.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   defaultEndpoint,
		lang:       lang,
		retry:      rc,
	}
}

// Synthesize writes the spoken text to outPath. The file appears atomically:
// chunks accumulate in a temp file that is renamed only after every chunk
// succeeded.
func (c *Client) Synthesize(ctx context.Context, text, outPath string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty text")
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating audio dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "tts-*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}

	chunks := splitChunks(text, maxChunkRunes)
	logger.Debug("synthesizing", "chunks", len(chunks), "out", outPath)

	for i, chunk := range chunks {
		var payload []byte
		err := retry.Do(ctx, c.retry, func() error {
			b, err := c.fetchChunk(ctx, chunk)
			if err != nil {
				return err
			}
			payload = b
			return nil
		})
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if _, err := tmp.Write(payload); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("failed to write audio: %w", err)
		}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move audio into place: %w", err)
	}
	return nil
}

func (c *Client) fetchChunk(ctx context.Context, chunk string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", c.lang)
	q.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error HTTP request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts endpoint error: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// splitChunks breaks text into word-boundary chunks of at most max runes. A
// single word longer than max is cut hard.
func splitChunks(text string, max int) []string {
	var (
		chunks []string
		cur    []rune
	)

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = nil
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > max {
			flush()
			chunks = append(chunks, string(w[:max]))
			w = w[max:]
		}
		if len(w) == 0 {
			continue
		}
		if len(cur) > 0 && len(cur)+1+len(w) > max {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	flush()
	return chunks
}
