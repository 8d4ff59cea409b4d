package linkparse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/observability"
)

var (
	tripDecimalPattern = regexp.MustCompile(`(\d+\.?\d*)`)
	bubblePattern      = regexp.MustCompile(`bubble_(\d+)`)
)

const reviewExcerptLimit = 200

// ExtractTripAdvisor scrapes a TripAdvisor attraction or restaurant page.
// TripAdvisor serves no usable image without JavaScript, so ImageURL stays
// unset.
func ExtractTripAdvisor(ctx context.Context, fetcher *Fetcher, resolvedURL string) *entities.Suggestion {
	signals := map[string]string{}
	degraded := false

	title := "TripAdvisor Activity"
	rating := 0.0
	address := ""
	description := ""
	activityType := "Activity"

	doc, err := fetcher.Document(ctx, resolvedURL)
	if err != nil {
		degraded = true
		observability.LoggerFromContext(ctx).Debug().Err(err).
			Str("url", resolvedURL).
			Msg("tripadvisor scrape failed, using defaults")
	} else {
		if v, method := firstMatch(doc, []fieldStrategy{
			{"main_h1", selText(`h1[data-automation="mainH1"]`)},
			{"h1", selText("h1")},
			{"ui_header", selText(".ui_header h1")},
			{"heading_title", selText(".heading_title")},
		}); v != "" {
			title = v
			signals["title"] = method
		}

		rating = tripAdvisorRating(doc, signals)

		if v, method := firstMatch(doc, []fieldStrategy{
			{"format_address", selText(".format_address")},
			{"automation_address", selText(`[data-automation="address"]`)},
			{"address_class", selText(".address")},
		}); v != "" {
			address = v
			signals["address"] = method
		}

		if v, method := firstMatch(doc, []fieldStrategy{
			{"partial_entry", selText(".partial_entry")},
			{"review_text", func(d *goquery.Document) string {
				return truncate(strings.TrimSpace(d.Find(`[data-automation="reviewText"]`).First().Text()), reviewExcerptLimit)
			}},
			{"review_text_class", func(d *goquery.Document) string {
				return truncate(strings.TrimSpace(d.Find(".review-text").First().Text()), reviewExcerptLimit)
			}},
		}); v != "" {
			description = v
			signals["description"] = method
		}

		if v := strings.TrimSpace(doc.Find(".ui_breadcrumbs a").Last().Text()); v != "" {
			activityType = v
			signals["activity_type"] = "ui_breadcrumbs"
		} else if v := strings.TrimSpace(doc.Find(".breadcrumbs a").Last().Text()); v != "" {
			activityType = v
			signals["activity_type"] = "breadcrumbs"
		}
	}

	category := DetermineCategory(title, activityType+" "+description)

	if description == "" {
		description = fmt.Sprintf("%s found on TripAdvisor", activityType)
		if address != "" {
			description += " - " + address
		}
	}
	location := address
	if location == "" {
		location = "See TripAdvisor page for details"
	}

	return &entities.Suggestion{
		Title:         title,
		Description:   description,
		Category:      category,
		Location:      location,
		URL:           resolvedURL,
		EstimatedCost: EstimateCostByCategory(category),
		Excitement:    ExcitementFromRating(rating),
		Duration:      EstimateDurationByCategory(category),
		Metadata: &entities.SuggestionMetadata{
			Provider:    string(ProviderTripAdvisor),
			ResolvedURL: resolvedURL,
			Degraded:    degraded,
			Signals:     signals,
		},
	}
}

// tripAdvisorRating reads either a plain decimal rating or the legacy
// bubble_NN class encoding, where NN is the rating times ten (bubble_45 is
// 4.5 stars).
func tripAdvisorRating(doc *goquery.Document, signals map[string]string) float64 {
	ratingText, method := firstMatch(doc, []fieldStrategy{
		{"overall_rating", selText(".overallRating")},
		{"automation_rating", selText(`[data-automation="rating"]`)},
		{"bubble_class", selAttr(".ui_bubble_rating", "class")},
	})
	if ratingText == "" {
		return 0
	}

	if m := tripDecimalPattern.FindStringSubmatch(ratingText); m != nil && !strings.Contains(ratingText, "bubble_") {
		rating, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			signals["rating"] = method
			return rating
		}
	}
	if m := bubblePattern.FindStringSubmatch(ratingText); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			signals["rating"] = "bubble"
			return float64(n) / 10
		}
	}
	return 0
}
