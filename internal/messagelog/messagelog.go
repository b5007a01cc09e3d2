package messagelog

import (
	"errors"
	"time"

	"github.com/branchapp/branch/internal/models"
	"github.com/branchapp/branch/internal/store"
	"github.com/google/uuid"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message needs text or a video")
)

// Notifier is told about messages after they are durably appended.
type Notifier interface {
	MessageAppended(conv models.Conversation, msg models.Message)
}

type Service struct {
	store    store.Store
	notifier Notifier
}

func New(s store.Store, notifier Notifier) *Service {
	return &Service{store: s, notifier: notifier}
}

// Append records a new immutable message in the conversation. At least
// one of textContent and videoURL must be non-empty.
func (s *Service) Append(conversationID, senderID, textContent, videoURL string) (*models.Message, error) {
	if textContent == "" && videoURL == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.store.GetConversation(conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	msg := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Timestamp:      time.Now().UTC(),
	}
	if textContent != "" {
		msg.TextContent = &textContent
	}
	if videoURL != "" {
		msg.VideoURL = &videoURL
	}

	if err := s.store.SaveMessage(msg); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.MessageAppended(*conv, *msg)
	}
	return msg, nil
}

// ListFor returns the conversation's messages in ascending timestamp order.
func (s *Service) ListFor(conversationID string) ([]models.Message, error) {
	return s.store.GetConversationMessages(conversationID)
}
