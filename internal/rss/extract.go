package rss

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const dateLayout = "2006-01-02"

// imageExtractors are tried in order; the first non-empty URL wins.
var imageExtractors = []func(*gofeed.Item) string{
	mediaContentImage,
	mediaThumbnailImage,
	enclosureImage,
	descriptionImage,
}

// ExtractImage pulls an image URL out of a feed entry, walking the fallback
// chain from structured media metadata down to the entry's HTML body.
// Returns "" when no extractor finds anything.
func ExtractImage(item *gofeed.Item) string {
	for _, extract := range imageExtractors {
		if url := extract(item); url != "" {
			return url
		}
	}
	return ""
}

func mediaContentImage(item *gofeed.Item) string {
	for _, e := range item.Extensions["media"]["content"] {
		if strings.Contains(e.Attrs["type"], "image") {
			return e.Attrs["url"]
		}
	}
	return ""
}

func mediaThumbnailImage(item *gofeed.Item) string {
	if thumbs := item.Extensions["media"]["thumbnail"]; len(thumbs) > 0 {
		return thumbs[0].Attrs["url"]
	}
	return ""
}

func enclosureImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && strings.Contains(enc.Type, "image") {
			return enc.URL
		}
	}
	return ""
}

func descriptionImage(item *gofeed.Item) string {
	if item.Description == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(item.Description))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}

// ExtractDate formats the entry's publication date as YYYY-MM-DD, falling
// back from published to updated to the current date. gofeed leaves the
// parsed timestamps nil when the raw value is absent or malformed.
func ExtractDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format(dateLayout)
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.Format(dateLayout)
	}
	return time.Now().Format(dateLayout)
}
