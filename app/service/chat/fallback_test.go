package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_ServiceKeywords(t *testing.T) {
	resp := Classify("What services do you offer?", "conv-1")

	require.Equal(t, TypeDiscovery, resp.Type)
	require.Equal(t, ActionLearnMore, resp.SuggestedAction)
	require.Equal(t, "conv-1", resp.ConversationID)
	require.Contains(t, resp.Message, "Brandi")
}

func TestClassify_PricingKeywords(t *testing.T) {
	resp := Classify("How much does a project cost?", "conv-1")

	require.Equal(t, TypeServiceInquiry, resp.Type)
	require.Equal(t, ActionBookCall, resp.SuggestedAction)
}

func TestClassify_WebsiteKeywords(t *testing.T) {
	resp := Classify("I need help with web design", "conv-1")

	require.Equal(t, TypeDiscovery, resp.Type)
	require.Contains(t, resp.Message, "custom websites")
}

func TestClassify_MarketingKeywords(t *testing.T) {
	resp := Classify("Do you handle advertising campaigns?", "conv-1")

	require.Equal(t, TypeDiscovery, resp.Type)
	require.Contains(t, resp.Message, "digital marketing services")
}

// The predicate order is part of the contract: the first matching keyword
// set wins even when a later one would also match.
func TestClassify_FirstMatchWins(t *testing.T) {
	resp := Classify("What do your services cost?", "conv-1")

	require.Equal(t, TypeDiscovery, resp.Type)
	require.Contains(t, resp.Message, "How can I help you today?")

	resp = Classify("What's the price of a new website?", "conv-1")

	require.Equal(t, TypeServiceInquiry, resp.Type)
	require.Equal(t, ActionBookCall, resp.SuggestedAction)
}

func TestClassify_NoMatchFallsThroughToGreeting(t *testing.T) {
	resp := Classify("Good morning!", "conv-1")

	require.Equal(t, TypeDiscovery, resp.Type)
	require.Equal(t, ActionLearnMore, resp.SuggestedAction)
	require.Equal(t, "Hey, I'm Brandi. How can I help you?", resp.Message)
}

func TestClassify_IsCaseInsensitive(t *testing.T) {
	resp := Classify("WHAT DO YOU DO?", "conv-1")

	require.Equal(t, TypeDiscovery, resp.Type)
	require.Contains(t, resp.Message, "How can I help you today?")
}
