package internal

import (
	"fmt"
	"time"
)

// CreateTestSession creates a test session with sample data
func CreateTestSession(id string) *ConversationSession {
	return CreateTestSessionWithMessages(id, "Test Conversation", []Message{
		{Text: "Hello, how are you?", Sender: SenderUser},
		{Text: "I'm doing well, thank you!", Sender: SenderAssistant},
	})
}

// CreateTestSessionWithMessages creates a test session with custom messages.
// UpdatedAt is set well outside the recency window so bonuses do not apply.
func CreateTestSessionWithMessages(id, title string, messages []Message) *ConversationSession {
	for i := range messages {
		if messages[i].ID == "" {
			messages[i].ID = fmt.Sprintf("%s-msg-%d", id, i+1)
		}
	}
	return &ConversationSession{
		ID:        id,
		Title:     title,
		Language:  LanguageEnglish,
		Messages:  messages,
		UpdatedAt: time.Now().Add(-90 * 24 * time.Hour),
		Metadata: Metadata{
			MessageCount: len(messages),
		},
	}
}

// CreateTestSessionWithCount creates a session with n alternating user/assistant messages
func CreateTestSessionWithCount(id string, n int) *ConversationSession {
	messages := make([]Message, 0, n)
	for i := 0; i < n; i++ {
		sender := SenderUser
		if i%2 == 1 {
			sender = SenderAssistant
		}
		messages = append(messages, Message{Text: fmt.Sprintf("message %d", i+1), Sender: sender})
	}
	return CreateTestSessionWithMessages(id, "Session "+id, messages)
}

