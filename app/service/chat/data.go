package chat

import (
	"encoding/json"
	"time"
)

type ResponseType string

const (
	TypeDiscovery      ResponseType = "discovery"
	TypeServiceInquiry ResponseType = "service_inquiry"
	TypeGeneral        ResponseType = "general"
	TypeError          ResponseType = "error"
)

type Action string

const (
	ActionNone      Action = ""
	ActionBookCall  Action = "book_call"
	ActionLearnMore Action = "learn_more"
)

// The widget expects a literal null when no action is suggested, not a
// missing field or an empty string.
func (a Action) MarshalJSON() ([]byte, error) {
	if a == ActionNone {
		return []byte("null"), nil
	}

	return []byte(`"` + string(a) + `"`), nil
}

func (a *Action) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ActionNone
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*a = Action(s)

	return nil
}

// Response is the contract consumed by the widget. Type and SuggestedAction
// are always produced together by one analysis step.
type Response struct {
	Message         string       `json:"message"`
	Type            ResponseType `json:"type"`
	SuggestedAction Action       `json:"suggestedAction"`
	ConversationID  string       `json:"conversationId"`
	Timestamp       time.Time    `json:"timestamp"`
	TokensUsed      int          `json:"tokensUsed,omitempty"`
	Cached          bool         `json:"cached,omitempty"`
}
