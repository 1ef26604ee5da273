package news

import (
	"context"
	"fmt"
	"testing"

	"github.com/gamenews/gamenews/internal/config"
)

// fakeFetcher serves canned items per source URL.
type fakeFetcher struct {
	bySource map[string][]Item
}

func (f *fakeFetcher) Fetch(_ context.Context, source config.Source, _ int) []Item {
	return f.bySource[source.URL]
}

func testConfig(max int, cats ...config.Category) *config.Config {
	return &config.Config{MaxPerCategory: max, Categories: cats}
}

func category(name string, urls ...string) config.Category {
	cat := config.Category{Name: name}
	for i, u := range urls {
		cat.Feeds = append(cat.Feeds, config.Source{
			Name:     fmt.Sprintf("%s source %d", name, i+1),
			URL:      u,
			Priority: i + 1,
		})
	}
	return cat
}

func TestCollectMergeDedupeSort(t *testing.T) {
	fetcher := &fakeFetcher{bySource: map[string][]Item{
		"a": {{Title: "Game X Launches", Date: "2024-01-10", Source: "A"}},
		"b": {{Title: "game x launches!!", Date: "2024-01-09", Source: "B"}},
	}}
	cfg := testConfig(5, category("Releases", "a", "b"))

	records := NewAggregator(cfg, fetcher).Collect(context.Background())

	if len(records) != 1 {
		t.Fatalf("expected 1 record after dedupe, got %d", len(records))
	}
	r := records[0]
	if r.Title != "Game X Launches" {
		t.Errorf("first-seen title not retained: %q", r.Title)
	}
	if r.Date != "2024-01-10" {
		t.Errorf("date = %q, want 2024-01-10", r.Date)
	}
	if r.Category != "Releases" {
		t.Errorf("category = %q", r.Category)
	}
	if r.ID != 1 {
		t.Errorf("id = %d, want 1", r.ID)
	}
	if r.Audio != "" {
		t.Errorf("audio should start empty, got %q", r.Audio)
	}
}

func TestCollectCapsPerCategory(t *testing.T) {
	var items []Item
	for i := 0; i < 12; i++ {
		items = append(items, Item{
			Title: fmt.Sprintf("Unique news %d", i),
			Date:  fmt.Sprintf("2024-01-%02d", i+1),
		})
	}
	fetcher := &fakeFetcher{bySource: map[string][]Item{"a": items}}
	cfg := testConfig(5, category("Releases", "a"))

	records := NewAggregator(cfg, fetcher).Collect(context.Background())

	if len(records) != 5 {
		t.Fatalf("expected cap of 5 records, got %d", len(records))
	}
	// Newest first after sorting.
	if records[0].Date != "2024-01-12" {
		t.Errorf("records not sorted newest-first: %q", records[0].Date)
	}
}

func TestCollectIDsIncreaseAcrossCategories(t *testing.T) {
	fetcher := &fakeFetcher{bySource: map[string][]Item{
		"a": {
			{Title: "Tournament finals", Date: "2024-02-01"},
			{Title: "Group stage recap", Date: "2024-02-02"},
		},
		"b": {
			{Title: "Game X Launches", Date: "2024-01-10"},
		},
	}}
	cfg := testConfig(5,
		category("Tournaments", "a"),
		category("Releases", "b"),
	)

	records := NewAggregator(cfg, fetcher).Collect(context.Background())

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, r := range records {
		if r.ID != i+1 {
			t.Errorf("record %d: id = %d, want %d", i, r.ID, i+1)
		}
	}
	if records[2].Category != "Releases" {
		t.Errorf("category order not preserved: %q", records[2].Category)
	}
}

func TestCollectFailingSourceIsolated(t *testing.T) {
	// Source "down" returns nothing, the category still fills from "up".
	fetcher := &fakeFetcher{bySource: map[string][]Item{
		"up": {{Title: "Still here", Date: "2024-03-01"}},
	}}
	cfg := testConfig(5, category("Reviews", "down", "up"))

	records := NewAggregator(cfg, fetcher).Collect(context.Background())

	if len(records) != 1 || records[0].Title != "Still here" {
		t.Errorf("failing source should contribute nothing, got %v", records)
	}
}

func TestCollectStableTieBreakOnEqualDates(t *testing.T) {
	fetcher := &fakeFetcher{bySource: map[string][]Item{
		"a": {{Title: "From first source", Date: "2024-04-01"}},
		"b": {{Title: "From second source", Date: "2024-04-01"}},
	}}
	cfg := testConfig(5, category("Releases", "a", "b"))

	records := NewAggregator(cfg, fetcher).Collect(context.Background())

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Title != "From first source" {
		t.Errorf("same-date items must keep source order, got %q first", records[0].Title)
	}
}
