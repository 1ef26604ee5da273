// Package rss retrieves feed sources and normalizes their entries into news
// items. A failing source never fails the run.
package rss

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/gamenews/gamenews/internal/config"
	"github.com/gamenews/gamenews/internal/logger"
	"github.com/gamenews/gamenews/internal/metrics"
	"github.com/gamenews/gamenews/internal/news"
	"github.com/gamenews/gamenews/internal/textutil"
)

type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher(timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &Fetcher{parser: parser}
}

// Fetch loads and parses one source. Errors degrade to an empty result with
// a warning; entries without a usable title are dropped. Up to 2*limit raw
// entries are taken so dedupe and filtering losses still leave enough to
// fill the category.
func (f *Fetcher) Fetch(ctx context.Context, source config.Source, limit int) []news.Item {
	logger.Info("loading feed", "source", source.Name, "url", source.URL)

	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		logger.Warn("feed failed", "source", source.Name, "error", err)
		metrics.Global.IncrementFeedsFailed()
		return nil
	}
	metrics.Global.IncrementFeedsFetched()

	entries := feed.Items
	if len(entries) > 2*limit {
		entries = entries[:2*limit]
	}

	items := make([]news.Item, 0, len(entries))
	for _, entry := range entries {
		title := textutil.CleanMarkup(entry.Title)
		if title == "" {
			continue
		}

		desc := entry.Description
		if desc == "" {
			desc = entry.Content
		}
		desc = textutil.Truncate(textutil.CleanMarkup(desc), textutil.DefaultDescriptionLimit)

		items = append(items, news.Item{
			Title:       title,
			Description: desc,
			Link:        entry.Link,
			Image:       ExtractImage(entry),
			Date:        ExtractDate(entry),
			Source:      source.Name,
		})
	}

	logger.Info("feed loaded", "source", source.Name, "items", len(items))
	return items
}
