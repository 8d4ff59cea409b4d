package linkparse

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/observability"
)

var yelpNumericPattern = regexp.MustCompile(`(\d+\.?\d*)`)

// ExtractYelp scrapes a Yelp business page. A failed fetch degrades to a
// suggestion built from the /biz/ URL slug.
func ExtractYelp(ctx context.Context, fetcher *Fetcher, resolvedURL string) *entities.Suggestion {
	signals := map[string]string{}

	doc, err := fetcher.Document(ctx, resolvedURL)
	if err != nil {
		observability.LoggerFromContext(ctx).Debug().Err(err).
			Str("url", resolvedURL).
			Msg("yelp scrape failed, using URL slug only")
		return yelpFallback(resolvedURL, signals)
	}

	title, method := firstMatch(doc, []fieldStrategy{
		{"h1_semibold", selText(`h1[data-font-weight="semibold"]`)},
		{"h1", selText("h1")},
		{"biz_page_title", selText(".biz-page-title")},
		{"testid_name", selText(`[data-testid="business-name"]`)},
	})
	if title == "" {
		title = "Yelp Business"
	} else {
		signals["title"] = method
	}

	rating := yelpRating(doc, signals)

	address := composeYelpAddress(doc)
	if address != "" {
		signals["address"] = "composed"
	} else {
		address, method = firstMatch(doc, []fieldStrategy{
			{"address_class", selText(".address")},
			{"testid_address", selText(`[data-testid="business-address"]`)},
		})
		if address != "" {
			signals["address"] = method
		}
	}

	priceRange, _ := firstMatch(doc, []fieldStrategy{
		{"price_range", selText(".price-range")},
		{"testid_price", selText(`[data-testid="price-range"]`)},
		{"attr_price", selText(".business-attribute-price-range")},
	})

	categoryText, _ := firstMatch(doc, []fieldStrategy{
		{"category_list", selText(".category-str-list a")},
		{"testid_categories", selText(`[data-testid="business-categories"] a`)},
		{"business_categories", selText(".business-categories a")},
	})
	if categoryText == "" {
		categoryText = "Food & Dining"
	}

	imageURL := yelpImage(doc, signals)

	category := DetermineCategory(title, categoryText)
	cost := applyPriceRange(EstimateCostByCategory(category), priceRange, signals)

	description := fmt.Sprintf("%s found on Yelp", categoryText)
	location := "See Yelp page for details"
	if address != "" {
		description += " - " + address
		location = address
	}

	return &entities.Suggestion{
		Title:         title,
		Description:   description,
		Category:      category,
		Location:      location,
		URL:           resolvedURL,
		ImageURL:      imageURL,
		EstimatedCost: cost,
		Excitement:    ExcitementFromRating(rating),
		Duration:      EstimateDurationByCategory(category),
		Metadata: &entities.SuggestionMetadata{
			Provider:    string(ProviderYelp),
			ResolvedURL: resolvedURL,
			Signals:     signals,
		},
	}
}

func yelpRating(doc *goquery.Document, signals map[string]string) float64 {
	ratingText, method := firstMatch(doc, []fieldStrategy{
		{"i_stars_title", selAttr(".i-stars", "title")},
		{"aria_rating", selAttr(".rating-large", "aria-label")},
		{"testid_rating", selText(`[data-testid="rating"]`)},
	})
	if ratingText == "" {
		return 0
	}
	m := yelpNumericPattern.FindStringSubmatch(ratingText)
	if m == nil {
		return 0
	}
	rating, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	signals["rating"] = method
	return rating
}

// composeYelpAddress joins the hCard-style street/locality/region spans.
func composeYelpAddress(doc *goquery.Document) string {
	parts := []string{
		strings.TrimSpace(doc.Find(".street-address").First().Text()),
		strings.TrimSpace(doc.Find(".locality").First().Text()),
		strings.TrimSpace(doc.Find(".region").First().Text()),
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// yelpImage returns the first business photo that is not an icon or logo
// asset.
func yelpImage(doc *goquery.Document, signals map[string]string) *string {
	selectors := []string{
		".photo-box img",
		`[data-testid="business-photo"] img`,
		".js-business-photo img",
		"img",
	}
	for _, selector := range selectors {
		found := ""
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			src, ok := s.Attr("src")
			if !ok || src == "" {
				return true
			}
			lower := strings.ToLower(src)
			if strings.Contains(lower, "icon") || strings.Contains(lower, "logo") {
				return true
			}
			found = src
			return false
		})
		if found != "" {
			signals["image"] = selector
			processed := ProcessImageURL(found)
			return &processed
		}
	}
	return nil
}

// applyPriceRange clamps the category cost estimate against Yelp's price
// symbols: $$$$, $$$ and $$ act as floors, a lone $ as a ceiling.
func applyPriceRange(cost float64, priceRange string, signals map[string]string) float64 {
	switch {
	case strings.Contains(priceRange, "$$$$"):
		cost = max(cost, 100)
	case strings.Contains(priceRange, "$$$"):
		cost = max(cost, 60)
	case strings.Contains(priceRange, "$$"):
		cost = max(cost, 30)
	case strings.Contains(priceRange, "$"):
		cost = min(cost, 25)
	default:
		return cost
	}
	signals["cost"] = "price_range"
	return cost
}

// yelpFallback derives a readable business name from the /biz/ URL slug.
func yelpFallback(resolvedURL string, signals map[string]string) *entities.Suggestion {
	title := "Yelp Business"
	if parsed, err := url.Parse(resolvedURL); err == nil {
		if slug := strings.TrimPrefix(parsed.Path, "/biz/"); slug != parsed.Path && slug != "" {
			if i := strings.IndexByte(slug, '/'); i > -1 {
				slug = slug[:i]
			}
			words := strings.Split(slug, "-")
			for i, w := range words {
				if w != "" {
					words[i] = strings.ToUpper(w[:1]) + w[1:]
				}
			}
			title = strings.Join(words, " ")
			signals["title"] = "url_slug"
		}
	}

	category := DetermineCategory(title, "Food & Dining")
	return &entities.Suggestion{
		Title:         title,
		Description:   "Business found on Yelp",
		Category:      category,
		Location:      "See Yelp page for details",
		URL:           resolvedURL,
		EstimatedCost: EstimateCostByCategory(category),
		Excitement:    0,
		Duration:      EstimateDurationByCategory(category),
		Metadata: &entities.SuggestionMetadata{
			Provider:    string(ProviderYelp),
			ResolvedURL: resolvedURL,
			Degraded:    true,
			Signals:     signals,
		},
	}
}
