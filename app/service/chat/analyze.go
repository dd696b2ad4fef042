package chat

import (
	"regexp"
	"strings"
)

// Keyword sets for post-processing a model reply. These are deliberately
// separate from the fallback sets and from the cacheability list below.
var (
	bookingKeywords   = []string{"book", "call", "schedule", "consultation", "discuss"}
	pricingKeywords   = []string{"cost", "price", "pricing", "expensive", "budget", "fee", "how much", "investment"}
	serviceKeywords   = []string{"website", "seo", "ppc", "social media", "marketing", "design", "ecommerce", "branding", "shopify", "wordpress"}
	discoveryKeywords = []string{"what type", "what kind", "tell me about", "what's your", "how are you", "what does"}
)

// commonPhrases gates which responses get memoized in the response cache.
var commonPhrases = []string{
	"what services",
	"what do you do",
	"about brandastic",
	"digital marketing",
	"website",
	"branding",
	"help me",
	"tell me about",
	"what type",
	"how can you help",
	"pricing",
	"cost",
	"budget",
}

var cacheKeyStrip = regexp.MustCompile(`[^\w\s]`)

// Analyze derives the response category and suggested next action from the
// model reply and the originating user message. The booking condition is
// checked first and short-circuits.
func Analyze(modelReply, userMessage string) (ResponseType, Action) {
	lowerReply := strings.ToLower(modelReply)
	lowerMessage := strings.ToLower(userMessage)

	suggestsBooking := containsAny(lowerReply, bookingKeywords)
	askingAboutPricing := containsAny(lowerMessage, pricingKeywords)
	askingAboutServices := containsAny(lowerMessage, serviceKeywords)
	isDiscovery := containsAny(lowerReply, discoveryKeywords)

	if suggestsBooking || (askingAboutPricing && isDiscovery) {
		return TypeServiceInquiry, ActionBookCall
	}

	if isDiscovery || askingAboutServices {
		return TypeDiscovery, ActionLearnMore
	}

	return TypeGeneral, ActionNone
}

// IsCommonQuestion reports whether a message is eligible for response
// memoization.
func IsCommonQuestion(message string) bool {
	return containsAny(strings.ToLower(message), commonPhrases)
}

// CacheKey normalizes a message into a cache key: lower-cased, punctuation
// stripped, truncated to 50 characters. Distinct long messages sharing a
// normalized prefix collide; the widget tolerates that for common questions.
func CacheKey(message string) string {
	normalized := cacheKeyStrip.ReplaceAllString(strings.ToLower(message), "")

	runes := []rune(normalized)
	if len(runes) > 50 {
		runes = runes[:50]
	}

	return string(runes)
}
