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

// googleMapsURLInfo is what the URL alone reveals about a place, used as the
// authoritative title source and as the fallback when scraping fails.
type googleMapsURLInfo struct {
	PlaceName string
	Address   string
	Lat       float64
	Lng       float64
	HasCoords bool
}

var (
	mapsPlacePattern  = regexp.MustCompile(`/maps/place/([^/@]+)`)
	mapsSearchPattern = regexp.MustCompile(`/maps/search/([^/@]+)`)
	mapsCoordsPattern = regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`)

	// A digit run followed by a street-suffix keyword marks an address
	// embedded in a place segment ("Joe's Diner, 123 Main St, Springfield").
	embeddedAddressPattern = regexp.MustCompile(
		`(?i)\b\d+[\w\s.'-]*?\b(?:st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|ct|court|pl|place|pkwy|parkway|hwy|highway)\b\.?(?:,[^@]*)?$`)

	decimalRatingPattern = regexp.MustCompile(`(\d+[.,]\d+)`)
	businessTypePattern  = regexp.MustCompile(`[★☆]+[^·]*·\s*(.+)$`)

	usPostalPattern = regexp.MustCompile(`\d+.*[A-Z]{2}\s+\d{5}`)
	caPostalPattern = regexp.MustCompile(`[A-Z]\d[A-Z]\s?\d[A-Z]\d`)
)

// ExtractFromGoogleMapsURL performs the URL-structural pass: place and search
// path segments, the q query parameter, a generic /place/ path walk, plus the
// @lat,lng coordinate marker.
func ExtractFromGoogleMapsURL(rawURL string) googleMapsURLInfo {
	info := googleMapsURLInfo{}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return info
	}

	if m := mapsPlacePattern.FindStringSubmatch(rawURL); m != nil {
		info.PlaceName = decodePlaceSegment(m[1])
	}
	if info.PlaceName == "" {
		if m := mapsSearchPattern.FindStringSubmatch(rawURL); m != nil {
			info.PlaceName = decodePlaceSegment(m[1])
		}
	}
	if q := parsed.Query().Get("q"); q != "" {
		info.PlaceName = q
	}
	if info.PlaceName == "" {
		parts := strings.Split(parsed.Path, "/")
		for i := 0; i < len(parts)-1; i++ {
			if parts[i] == "place" && parts[i+1] != "" {
				segment := parts[i+1]
				if at := strings.Index(segment, "@"); at > -1 {
					segment = segment[:at]
				}
				info.PlaceName = decodePlaceSegment(segment)
				break
			}
		}
	}

	info.PlaceName = cleanPlaceName(info.PlaceName)

	// Some shared links pack the street address into the place segment.
	if loc := embeddedAddressPattern.FindStringIndex(info.PlaceName); loc != nil && loc[0] > 0 {
		info.Address = strings.TrimSpace(info.PlaceName[loc[0]:])
		info.PlaceName = strings.Trim(strings.TrimSpace(info.PlaceName[:loc[0]]), ",")
		info.PlaceName = strings.TrimSpace(info.PlaceName)
	}

	if m := mapsCoordsPattern.FindStringSubmatch(rawURL); m != nil {
		lat, latErr := strconv.ParseFloat(m[1], 64)
		lng, lngErr := strconv.ParseFloat(m[2], 64)
		if latErr == nil && lngErr == nil {
			info.Lat = lat
			info.Lng = lng
			info.HasCoords = true
		}
	}

	return info
}

func decodePlaceSegment(segment string) string {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		decoded = segment
	}
	return strings.ReplaceAll(decoded, "+", " ")
}

func cleanPlaceName(name string) string {
	if name == "" {
		return name
	}
	if at := strings.Index(name, "@"); at > -1 {
		name = name[:at]
	}
	name = strings.ReplaceAll(name, "+", " ")
	name = strings.Join(strings.Fields(name), " ")
	name = strings.TrimSuffix(name, ",")
	return strings.TrimSpace(name)
}

// googleMapsScrape is the raw field set the scrape pass produced.
type googleMapsScrape struct {
	Title        string
	Description  string
	Address      string
	BusinessType string
	OpenHours    string
	ImageURL     string
	Rating       float64
	Signals      map[string]string
}

// scrapeGoogleMaps extracts fields from a fetched Maps (or Google search
// knowledge panel) page. Every signal is optional.
func scrapeGoogleMaps(doc *goquery.Document, isSearchPage bool) googleMapsScrape {
	scraped := googleMapsScrape{Signals: map[string]string{}}
	tags := metaTags(doc)

	if tags["title"] != "" {
		scraped.Title = tags["title"]
		scraped.Signals["title"] = "og:title"
	} else if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		scraped.Title = strings.TrimSpace(strings.TrimSuffix(t, "- Google Maps"))
		scraped.Signals["title"] = "title_tag"
	}

	scraped.Description = tags["description"]
	if scraped.Description == "" {
		scraped.Description, _ = doc.Find(`meta[name="description"]`).First().Attr("content")
	}

	// meta[name="name"] carries "Place Name · Address" on place pages.
	if nameContent, ok := doc.Find(`meta[name="name"]`).First().Attr("content"); ok {
		if name, address, split := splitOnMiddleDot(nameContent); split {
			scraped.Address = address
			scraped.Signals["address"] = "meta_name"
			if scraped.Title == "" || strings.Contains(scraped.Title, "Google Maps") {
				scraped.Title = name
				scraped.Signals["title"] = "meta_name"
			}
		}
	}
	if scraped.Address == "" && strings.Contains(scraped.Title, "·") {
		if name, address, split := splitOnMiddleDot(scraped.Title); split {
			scraped.Title = name
			scraped.Address = address
			scraped.Signals["address"] = "title_split"
		}
	}

	if scraped.Description != "" {
		scraped.Rating = ratingFromDescription(scraped.Description, &scraped.Signals)

		if m := businessTypePattern.FindStringSubmatch(scraped.Description); m != nil {
			scraped.BusinessType = strings.TrimSpace(m[1])
			scraped.Signals["business_type"] = "description"
		}
	}

	// Google search results pages carry knowledge-panel markup instead of
	// Maps place markup; use those selectors only for fields still empty.
	if isSearchPage {
		if scraped.Title == "" || scraped.Title == "Google Search" {
			if v, method := firstMatch(doc, []fieldStrategy{
				{"kp_title", selText(`[data-attrid="title"]`)},
				{"kp_heading", selText(`div[role="heading"] span`)},
			}); v != "" {
				scraped.Title = v
				scraped.Signals["title"] = method
			}
		}
		if scraped.BusinessType == "" {
			if v, method := firstMatch(doc, []fieldStrategy{
				{"kp_subtitle", selText(`[data-attrid="subtitle"]`)},
			}); v != "" {
				scraped.BusinessType = v
				scraped.Signals["business_type"] = method
			}
		}
	}

	if scraped.Address == "" {
		if v, method := firstMatch(doc, addressStrategies()); v != "" {
			scraped.Address = v
			scraped.Signals["address"] = method
		}
	}

	if v, method := firstMatch(doc, []fieldStrategy{
		{"kp_hours", selText(`[data-attrid*="hours"]`)},
		{"aria_hours", selAttr(`[aria-label*="Hours"]`, "aria-label")},
	}); v != "" {
		scraped.OpenHours = v
		scraped.Signals["open_hours"] = method
	}

	if tags["image"] != "" {
		scraped.ImageURL = tags["image"]
		scraped.Signals["image"] = "og:image"
	} else if v, method := firstMatch(doc, imageStrategies()); v != "" {
		scraped.ImageURL = v
		scraped.Signals["image"] = method
	}

	return scraped
}

// ratingFromDescription counts star glyphs first; a glyph run is the most
// reliable signal Maps emits. Falls back to the first true decimal in the
// text, capped at 5. Bare integers are ignored, a description like
// "Open 24 hours" carries no rating.
func ratingFromDescription(description string, signals *map[string]string) float64 {
	if stars := strings.Count(description, "★"); stars > 0 {
		if stars > 5 {
			stars = 5
		}
		(*signals)["rating"] = "star_glyphs"
		return float64(stars)
	}

	if m := decimalRatingPattern.FindStringSubmatch(description); m != nil {
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err == nil && value > 0 {
			if value > 5 {
				value = 5
			}
			(*signals)["rating"] = "decimal"
			return value
		}
	}
	return 0
}

func splitOnMiddleDot(content string) (name, address string, ok bool) {
	if !strings.Contains(content, "·") {
		return "", "", false
	}
	parts := strings.SplitN(content, "·", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// addressStrategies is the prioritized address heuristic chain: structured
// attributes first, then ARIA labels, postal-code-shaped text, and finally
// any comma-separated span that plausibly reads as an address.
func addressStrategies() []fieldStrategy {
	return []fieldStrategy{
		{"data_value", selText(`[data-value="address"]`)},
		{"data_item", selText(`[data-item-id="address"]`)},
		{"kc_attrid", selText(`[data-attrid="kc:/location/location:address"]`)},
		{"aria_label", func(doc *goquery.Document) string {
			label, _ := doc.Find(`button[aria-label^="Address:"]`).First().Attr("aria-label")
			return strings.TrimSpace(strings.TrimPrefix(label, "Address:"))
		}},
		{"us_postal", textMatching(usPostalPattern)},
		{"ca_postal", textMatching(caPostalPattern)},
		{"loose_comma", func(doc *goquery.Document) string {
			found := ""
			doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				text := strings.TrimSpace(s.Text())
				if len(text) >= 10 && len(text) <= 120 &&
					strings.Contains(text, ",") && strings.ContainsAny(text, "0123456789") {
					found = text
					return false
				}
				return true
			})
			return found
		}},
	}
}

// textMatching returns the text of the first span whose content matches the
// given pattern.
func textMatching(pattern *regexp.Regexp) func(doc *goquery.Document) string {
	return func(doc *goquery.Document) string {
		found := ""
		doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if pattern.MatchString(text) {
				found = text
				return false
			}
			return true
		})
		return found
	}
}

// imageStrategies tries Maps-specific image hosts before settling for any
// Google-hosted image on the page.
func imageStrategies() []fieldStrategy {
	return []fieldStrategy{
		{"streetview", selAttr(`img[src*="streetview"]`, "src")},
		{"usercontent", selAttr(`img[src*="googleusercontent"]`, "src")},
		{"maps_api", selAttr(`img[src*="maps.googleapis"]`, "src")},
		{"photo_button", selAttr(`button[jsaction*="photo"] img`, "src")},
	}
}

// ExtractGoogleMaps combines the URL-structural pass with a best-effort
// scrape of the place page. A failed fetch degrades to URL-only extraction;
// it never fails the request.
func ExtractGoogleMaps(ctx context.Context, fetcher *Fetcher, resolvedURL string) *entities.Suggestion {
	urlInfo := ExtractFromGoogleMapsURL(resolvedURL)

	scraped := googleMapsScrape{Signals: map[string]string{}}
	degraded := false

	doc, err := fetcher.Document(ctx, resolvedURL)
	if err != nil {
		degraded = true
		observability.LoggerFromContext(ctx).Debug().Err(err).
			Str("url", resolvedURL).
			Msg("google maps scrape failed, using URL extraction only")
	} else {
		isSearchPage := strings.Contains(resolvedURL, "/search")
		scraped = scrapeGoogleMaps(doc, isSearchPage)
	}

	title := mergeGoogleTitle(urlInfo.PlaceName, scraped.Title)
	if urlInfo.PlaceName != "" && title == urlInfo.PlaceName {
		scraped.Signals["title"] = "url"
	}

	address := scraped.Address
	if address == "" {
		address = urlInfo.Address
		if address != "" {
			scraped.Signals["address"] = "url"
		}
	}
	if address == "" {
		address = "See Google Maps link"
	}

	excitement := ExcitementFromRating(scraped.Rating)

	description := scraped.Description
	if !usableDescription(description) {
		description = synthesizeGoogleDescription(scraped.BusinessType, address, scraped.Rating, excitement, scraped.OpenHours)
		scraped.Signals["description"] = "synthesized"
	}

	category := DetermineCategory(title, address+" "+scraped.BusinessType)

	var imageURL *string
	if scraped.ImageURL != "" {
		enhanced := EnhanceMapsImageURL(scraped.ImageURL)
		imageURL = &enhanced
	}

	if urlInfo.HasCoords {
		scraped.Signals["coordinates"] = fmt.Sprintf("%f,%f", urlInfo.Lat, urlInfo.Lng)
	}

	return &entities.Suggestion{
		Title:         title,
		Description:   description,
		Category:      category,
		Location:      address,
		URL:           resolvedURL,
		ImageURL:      imageURL,
		EstimatedCost: EstimateCostByCategory(category),
		Excitement:    excitement,
		Duration:      EstimateDurationByCategory(category),
		Metadata: &entities.SuggestionMetadata{
			Provider:    string(ProviderGoogleMaps),
			ResolvedURL: resolvedURL,
			Degraded:    degraded,
			Signals:     scraped.Signals,
		},
	}
}

// mergeGoogleTitle prefers the URL place name unless the scrape found a more
// specific non-generic title and the URL pass found nothing.
func mergeGoogleTitle(urlName, scrapedTitle string) string {
	generic := scrapedTitle == "" || strings.Contains(scrapedTitle, "Google Maps")
	switch {
	case urlName != "":
		return urlName
	case !generic:
		return scrapedTitle
	default:
		return "Location from Google Maps"
	}
}

// usableDescription rejects empty descriptions and the star-glyph metadata
// line Maps serves as og:description.
func usableDescription(description string) bool {
	if len(strings.TrimSpace(description)) < 5 {
		return false
	}
	return !strings.ContainsAny(description, "★☆")
}

func synthesizeGoogleDescription(businessType, address string, rating float64, excitement int, openHours string) string {
	hasAddress := address != "" && address != "See Google Maps link"

	var description string
	switch {
	case businessType != "" && excitement > 0:
		description = fmt.Sprintf("%s · Excitement: %d/10", businessType, excitement)
	case businessType != "" && rating > 0:
		description = fmt.Sprintf("%s · Rated %.1f stars", businessType, rating)
	case businessType != "" && hasAddress:
		description = fmt.Sprintf("%s · %s", businessType, address)
	case businessType != "":
		description = businessType
	case hasAddress:
		description = address
	default:
		description = "Location found on Google Maps"
	}

	if len(openHours) >= 5 && len(openHours) <= 100 {
		description += " · " + openHours
	}

	return description
}
