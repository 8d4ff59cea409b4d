package linkparse

import (
	"math"
	"regexp"
	"strings"
)

// categoryRule is one ordered keyword group of the category classifier.
type categoryRule struct {
	category string
	keywords []string
}

// categoryRules are tested in order; the first group with any keyword match
// wins, so a text matching both "food" and "movie" resolves to Food & Dining.
var categoryRules = []categoryRule{
	{"Food & Dining", []string{
		"restaurant", "food", "dining", "cafe", "bar", "pizza", "cuisine",
		"menu", "coffee", "bakery", "deli", "bistro", "sweet", "dessert",
		"indian", "chinese", "thai", "italian", "mexican", "grill", "kitchen",
	}},
	{"Entertainment", []string{
		"movie", "theater", "cinema", "show", "concert", "music",
		"entertainment", "club", "venue",
	}},
	{"Outdoor", []string{
		"hike", "trail", "park", "outdoor", "nature", "beach", "mountain",
		"camping", "garden", "zoo", "aquarium",
	}},
	{"Relaxation", []string{
		"spa", "massage", "relax", "wellness", "meditation", "salon",
	}},
	{"Adventure", []string{
		"adventure", "extreme", "sport", "climb", "jump", "race", "gym",
		"fitness",
	}},
	{"Travel", []string{
		"travel", "hotel", "flight", "vacation", "trip", "resort",
	}},
	{"Date Night", []string{
		"romantic", "date", "couple", "intimate", "wine", "lounge",
	}},
	{"Cultural", []string{
		"museum", "gallery", "art", "history", "cultural", "exhibit",
	}},
	{"Shopping", []string{
		"shop", "store", "mall", "market", "boutique", "retail",
	}},
}

// defaultCategory is returned when no keyword group matches.
const defaultCategory = "Entertainment"

// categoryCosts are default cost estimates in currency units per category.
var categoryCosts = map[string]float64{
	"Food & Dining": 50,
	"Entertainment": 25,
	"Outdoor":       10,
	"Relaxation":    80,
	"Adventure":     60,
	"Travel":        200,
	"Date Night":    75,
	"Cultural":      20,
	"Shopping":      100,
}

// categoryDurations are default durations in minutes per category.
var categoryDurations = map[string]int{
	"Food & Dining": 90,
	"Entertainment": 150,
	"Outdoor":       180,
	"Relaxation":    120,
	"Adventure":     240,
	"Travel":        480,
	"Date Night":    180,
	"Cultural":      120,
	"Shopping":      150,
}

// DetermineCategory infers an activity category from title and content text.
// The result is always a member of the fixed category set.
func DetermineCategory(title, content string) string {
	text := strings.ToLower(title + " " + content)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return defaultCategory
}

// EstimateCostByCategory returns the table cost for a category, 25 for
// anything unknown.
func EstimateCostByCategory(category string) float64 {
	if cost, ok := categoryCosts[category]; ok {
		return cost
	}
	return 25
}

// EstimateDurationByCategory returns the table duration in minutes for a
// category, 120 for anything unknown.
func EstimateDurationByCategory(category string) int {
	if duration, ok := categoryDurations[category]; ok {
		return duration
	}
	return 120
}

// ExcitementFromRating converts a 0-5 star rating to the 0-10 excitement
// scale. Zero means "no signal", not "terrible".
func ExcitementFromRating(rating float64) int {
	if rating <= 0 {
		return 0
	}
	excitement := int(math.Round(rating * 2))
	if excitement > 10 {
		excitement = 10
	}
	return excitement
}

var (
	sizedImagePattern  = regexp.MustCompile(`=w\d+-h\d+[-a-z0-9]*`)
	scaledImagePattern = regexp.MustCompile(`=s\d+`)
)

// EnhanceMapsImageURL rewrites the size-limiting suffix of a Google-hosted
// Maps place image to request the 1200-wide variant.
func EnhanceMapsImageURL(imageURL string) string {
	if !strings.Contains(imageURL, "googleusercontent.com") {
		return imageURL
	}
	if sizedImagePattern.MatchString(imageURL) {
		return sizedImagePattern.ReplaceAllString(imageURL, "=w1200-h630-p-k-no")
	}
	if scaledImagePattern.MatchString(imageURL) {
		return scaledImagePattern.ReplaceAllString(imageURL, "=s1200")
	}
	return imageURL
}

// ProcessImageURL upgrades Google-hosted image URLs to an 800-wide variant
// and injects zoom/size parameters into static-map URLs that lack them.
func ProcessImageURL(imageURL string) string {
	if imageURL == "" {
		return imageURL
	}

	if strings.Contains(imageURL, "googleusercontent.com") {
		if sizedImagePattern.MatchString(imageURL) {
			return sizedImagePattern.ReplaceAllString(imageURL, "=w800-h600")
		}
		if scaledImagePattern.MatchString(imageURL) {
			return scaledImagePattern.ReplaceAllString(imageURL, "=s800")
		}
		return imageURL
	}

	if strings.Contains(imageURL, "maps.googleapis.com/maps/api/staticmap") {
		if !strings.Contains(imageURL, "zoom=") {
			imageURL += "&zoom=15"
		}
		if !strings.Contains(imageURL, "size=") {
			imageURL += "&size=800x600"
		}
	}

	return imageURL
}
