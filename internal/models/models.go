package models

import "time"

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"hashedPassword"`
}

type Conversation struct {
	ID           string    `json:"id"`
	Participants [2]string `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c Conversation) HasParticipant(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	TextContent    *string   `json:"textContent"`
	VideoURL       *string   `json:"videoUrl"`
	Timestamp      time.Time `json:"timestamp"`

	// Reserved for threaded replies; always null today.
	BranchParentMessageID *string `json:"branchParentMessageId"`
}
