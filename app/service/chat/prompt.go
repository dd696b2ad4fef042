package chat

import (
	"brandichat/app/service/history"

	_ "embed"
)

//go:embed system_prompt.txt
var systemPrompt string

// historyWindow is the number of stored turns sent upstream per call. Older
// turns stay in the store but never reach the model.
const historyWindow = 8

func buildPrompt(prior []history.Message, userMessage string) []history.Message {
	if len(prior) > historyWindow {
		prior = prior[len(prior)-historyWindow:]
	}

	messages := make([]history.Message, 0, len(prior)+2)
	messages = append(messages, history.Message{
		Role:    history.RoleSystem,
		Content: systemPrompt,
	})
	messages = append(messages, prior...)
	messages = append(messages, history.Message{
		Role:    history.RoleUser,
		Content: userMessage,
	})

	return messages
}
