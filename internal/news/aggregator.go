package news

import (
	"context"
	"sort"

	"github.com/gamenews/gamenews/internal/config"
	"github.com/gamenews/gamenews/internal/logger"
	"github.com/gamenews/gamenews/internal/metrics"
)

// Fetcher retrieves the entries of one feed source. Implementations never
// return an error: a broken source contributes nothing.
type Fetcher interface {
	Fetch(ctx context.Context, source config.Source, limit int) []Item
}

// Aggregator folds all configured sources into the run's record set.
type Aggregator struct {
	cfg     *config.Config
	fetcher Fetcher
}

func NewAggregator(cfg *config.Config, fetcher Fetcher) *Aggregator {
	return &Aggregator{cfg: cfg, fetcher: fetcher}
}

// Collect runs fetch → dedupe → sort → cap for every category in configured
// order and assigns record ids monotonically across the whole run. The
// result replaces any previous run's output in full.
func (a *Aggregator) Collect(ctx context.Context) []Record {
	var records []Record
	id := 1

	for _, cat := range a.cfg.Categories {
		logger.Info("collecting category", "category", cat.Name)

		var items []Item
		for _, src := range cat.Feeds {
			items = append(items, a.fetcher.Fetch(ctx, src, a.cfg.MaxPerCategory)...)
		}
		metrics.Global.AddItemsSeen(len(items))

		unique := Dedupe(items)
		metrics.Global.AddDuplicatesFiltered(len(items) - len(unique))

		// Newest first; YYYY-MM-DD compares correctly as a string. Stable
		// sort keeps source order for same-date items.
		sort.SliceStable(unique, func(i, j int) bool {
			return unique[i].Date > unique[j].Date
		})

		if len(unique) > a.cfg.MaxPerCategory {
			unique = unique[:a.cfg.MaxPerCategory]
		}

		for _, item := range unique {
			records = append(records, Record{
				ID:          id,
				Title:       item.Title,
				Category:    cat.Name,
				Date:        item.Date,
				Image:       item.Image,
				Audio:       "",
				Description: item.Description,
				Source:      item.Source,
				Link:        item.Link,
			})
			id++
		}

		logger.Info("category done", "category", cat.Name, "records", len(unique))
	}

	metrics.Global.AddRecordsCollected(len(records))
	logger.Info("collection finished", "records", len(records))
	return records
}
