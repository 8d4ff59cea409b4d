package linkparse

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/pkg/errors"
)

const (
	genericTitleLimit       = 100
	genericDescriptionLimit = 300
)

// genericAddressStrategies covers the common ways pages mark up a street
// address: schema.org microdata, the address element, then class-name
// conventions.
func genericAddressStrategies() []fieldStrategy {
	return []fieldStrategy{
		{"itemprop", selText(`[itemprop="address"]`)},
		{"address_tag", selText("address")},
		{"address_class", selText(".address, .street-address, .location-address")},
	}
}

// ExtractGeneric is the universal fallback for unrecognized hosts. It has no
// URL-only degradation path, so a failed fetch is the one extraction error
// that propagates to the caller.
func ExtractGeneric(ctx context.Context, fetcher *Fetcher, resolvedURL string) (*entities.Suggestion, error) {
	doc, err := fetcher.Document(ctx, resolvedURL)
	if err != nil {
		return nil, errors.NewExternalError("failed to parse webpage", err)
	}

	signals := map[string]string{}
	tags := metaTags(doc)

	title := tags["title"]
	if title != "" {
		signals["title"] = "og:title"
	} else {
		var method string
		title, method = firstMatch(doc, []fieldStrategy{
			{"title_tag", selText("title")},
			{"h1", selText("h1")},
		})
		if title != "" {
			signals["title"] = method
		} else {
			title = "Web Activity"
		}
	}

	description := tags["description"]
	if description != "" {
		signals["description"] = "og:description"
	} else {
		var method string
		description, method = firstMatch(doc, []fieldStrategy{
			{"meta_description", selAttr(`meta[name="description"]`, "content")},
			{"first_paragraph", func(d *goquery.Document) string {
				return truncate(strings.TrimSpace(d.Find("p").First().Text()), reviewExcerptLimit)
			}},
		})
		if description != "" {
			signals["description"] = method
		}
	}

	// Best-effort address scrape. The location stays the fixed sentinel,
	// a found address can only enrich the description.
	address, addressMethod := firstMatch(doc, genericAddressStrategies())
	if address != "" {
		signals["address"] = addressMethod
	}

	if description == "" {
		if address != "" {
			description = "Activity at " + address
			signals["description"] = "scraped_address"
		} else {
			description = "Activity found on the web"
		}
	}

	var imageURL *string
	image := tags["image"]
	if image != "" {
		signals["image"] = "og:image"
	} else if src, ok := doc.Find("img").First().Attr("src"); ok && src != "" {
		image = src
		signals["image"] = "first_img"
	}
	if image != "" {
		processed := ProcessImageURL(image)
		imageURL = &processed
	}

	category := DetermineCategory(title, description)

	return &entities.Suggestion{
		Title:         truncate(title, genericTitleLimit),
		Description:   truncate(description, genericDescriptionLimit),
		Category:      category,
		Location:      "See link for details",
		URL:           resolvedURL,
		ImageURL:      imageURL,
		EstimatedCost: 0,
		Excitement:    0,
		Duration:      120,
		Metadata: &entities.SuggestionMetadata{
			Provider:    string(ProviderGeneric),
			ResolvedURL: resolvedURL,
			Signals:     signals,
		},
	}, nil
}
