package chat

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyze_BookingBranchWins(t *testing.T) {
	responseType, action := Analyze("Let's schedule a call to discuss", "what's your pricing?")

	require.Equal(t, TypeServiceInquiry, responseType)
	require.Equal(t, ActionBookCall, action)
}

func TestAnalyze_PricingQuestionWithDiscoveryReply(t *testing.T) {
	// No booking keyword in the reply, but pricing in the message combined
	// with a discovery phrase in the reply still means a booking nudge.
	responseType, action := Analyze("What type of budget range works for you?", "how much does it cost?")

	require.Equal(t, TypeServiceInquiry, responseType)
	require.Equal(t, ActionBookCall, action)
}

func TestAnalyze_DiscoveryReply(t *testing.T) {
	responseType, action := Analyze("What type of business do you run?", "tell me about your services")

	require.Equal(t, TypeDiscovery, responseType)
	require.Equal(t, ActionLearnMore, action)
}

func TestAnalyze_ServiceQuestion(t *testing.T) {
	responseType, action := Analyze("We build on Shopify and WordPress.", "do you build ecommerce sites?")

	require.Equal(t, TypeDiscovery, responseType)
	require.Equal(t, ActionLearnMore, action)
}

func TestAnalyze_General(t *testing.T) {
	responseType, action := Analyze("Thanks for stopping by!", "hello")

	require.Equal(t, TypeGeneral, responseType)
	require.Equal(t, ActionNone, action)
}

func TestIsCommonQuestion(t *testing.T) {
	require.True(t, IsCommonQuestion("What services do you provide?"))
	require.True(t, IsCommonQuestion("Tell me about your pricing"))
	require.True(t, IsCommonQuestion("HELP ME grow my business"))
	require.False(t, IsCommonQuestion("hello there"))
}

func TestCacheKey_Normalization(t *testing.T) {
	require.Equal(t, "what services do you offer", CacheKey("What Services?? Do You Offer!!!"))
	require.Equal(t, CacheKey("what services do you offer"), CacheKey("What services, do you offer?"))
}

func TestCacheKey_Truncation(t *testing.T) {
	long := strings.Repeat("a", 80)

	key := CacheKey(long)
	require.Len(t, key, 50)

	// Long messages sharing a 50-character normalized prefix collide.
	require.Equal(t, key, CacheKey(long+"completely different tail"))
}

func TestAction_MarshalsNullWhenAbsent(t *testing.T) {
	data, err := json.Marshal(Response{
		Message: "ok",
		Type:    TypeGeneral,
	})
	require.NoError(t, err)
	require.Contains(t, string(data), `"suggestedAction":null`)

	data, err = json.Marshal(Response{SuggestedAction: ActionBookCall})
	require.NoError(t, err)
	require.Contains(t, string(data), `"suggestedAction":"book_call"`)
}
