package linkparse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fieldStrategy is one attempt at extracting a single field from a parsed
// document. Strategies are evaluated in order until one yields a non-empty
// value; the winning strategy's name is recorded as the field's provenance.
type fieldStrategy struct {
	name string
	fn   func(doc *goquery.Document) string
}

// firstMatch runs strategies in order and returns the first non-empty value
// together with the name of the strategy that produced it.
func firstMatch(doc *goquery.Document, strategies []fieldStrategy) (string, string) {
	for _, s := range strategies {
		if v := strings.TrimSpace(s.fn(doc)); v != "" {
			return v, s.name
		}
	}
	return "", ""
}

// selText extracts the trimmed text of the first node matching a selector.
func selText(selector string) func(doc *goquery.Document) string {
	return func(doc *goquery.Document) string {
		return strings.TrimSpace(doc.Find(selector).First().Text())
	}
}

// selAttr extracts an attribute of the first node matching a selector.
func selAttr(selector, attr string) func(doc *goquery.Document) string {
	return func(doc *goquery.Document) string {
		v, _ := doc.Find(selector).First().Attr(attr)
		return strings.TrimSpace(v)
	}
}

// truncate cuts s to at most limit characters, appending an ellipsis when
// anything was dropped. The cut is rune-aware so a multi-byte character is
// never split.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// metaTags collects Open Graph properties into a key→value map with the "og:"
// prefix stripped; Twitter Card tags fill any keys Open Graph left empty.
func metaTags(doc *goquery.Document) map[string]string {
	tags := map[string]string{}

	doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
		property, _ := s.Attr("property")
		content, _ := s.Attr("content")
		if property == "" || content == "" {
			return
		}
		key := strings.TrimPrefix(property, "og:")
		if tags[key] == "" {
			tags[key] = content
		}
	})

	doc.Find(`meta[name^="twitter:"]`).Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		if name == "" || content == "" {
			return
		}
		key := strings.TrimPrefix(name, "twitter:")
		if tags[key] == "" {
			tags[key] = content
		}
	})

	return tags
}
