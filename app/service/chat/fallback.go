package chat

import (
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
)

// Keyword sets for fallback classification. Order matters: the first matching
// set wins, even when a later one would also match.
var (
	fallbackServiceKeywords   = []string{"service", "what do you do"}
	fallbackPricingKeywords   = []string{"price", "cost", "budget"}
	fallbackWebsiteKeywords   = []string{"website", "web design"}
	fallbackMarketingKeywords = []string{"marketing", "advertising"}
)

// Classify maps a raw visitor message to a canned response. It is the whole
// conversational surface whenever no upstream completion service is usable.
func Classify(message, conversationID string) *Response {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, fallbackServiceKeywords):
		return &Response{
			Message:         "Hey, I'm Brandi. How can I help you today?",
			Type:            TypeDiscovery,
			SuggestedAction: ActionLearnMore,
			ConversationID:  conversationID,
			Timestamp:       time.Now(),
		}

	case containsAny(lower, fallbackPricingKeywords):
		return &Response{
			Message: "Great question about investment levels! Our services are customized based on your specific needs and goals. " +
				"To give you accurate information, I'd love to understand more about your business first. " +
				"What type of services are you most interested in - marketing, website development, or branding?",
			Type:            TypeServiceInquiry,
			SuggestedAction: ActionBookCall,
			ConversationID:  conversationID,
			Timestamp:       time.Now(),
		}

	case containsAny(lower, fallbackWebsiteKeywords):
		return &Response{
			Message: "We create custom websites that drive results! Do you currently have a website? " +
				"What's the main goal you want to achieve - generate leads, sell products, or build credibility? " +
				"Understanding your situation helps me explain how we can help.",
			Type:            TypeDiscovery,
			SuggestedAction: ActionLearnMore,
			ConversationID:  conversationID,
			Timestamp:       time.Now(),
		}

	case containsAny(lower, fallbackMarketingKeywords):
		return &Response{
			Message: "Our digital marketing services help businesses attract and convert more customers. " +
				"What's your biggest challenge in attracting new customers right now? " +
				"Are you currently doing any marketing, or would this be a fresh start?",
			Type:            TypeDiscovery,
			SuggestedAction: ActionLearnMore,
			ConversationID:  conversationID,
			Timestamp:       time.Now(),
		}
	}

	return &Response{
		Message:         "Hey, I'm Brandi. How can I help you?",
		Type:            TypeDiscovery,
		SuggestedAction: ActionLearnMore,
		ConversationID:  conversationID,
		Timestamp:       time.Now(),
	}
}

func containsAny(lower string, keywords []string) bool {
	return pie.Any(keywords, func(keyword string) bool {
		return strings.Contains(lower, keyword)
	})
}
