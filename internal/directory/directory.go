package directory

import (
	"errors"
	"time"

	"github.com/branchapp/branch/internal/models"
	"github.com/branchapp/branch/internal/store"
	"github.com/google/uuid"
)

var ErrInvalidParticipants = errors.New("conversation requires two distinct participants")

type Service struct {
	store store.Store
}

func New(s store.Store) *Service {
	return &Service{store: s}
}

// FindOrCreate returns the conversation between the two users, creating
// it on first contact. The pair is normalized by sorting the ids so
// (a, b) and (b, a) resolve to the same record. The returned bool is
// true when the conversation was newly created.
func (s *Service) FindOrCreate(userIDA, userIDB string) (*models.Conversation, bool, error) {
	if userIDA == "" || userIDB == "" || userIDA == userIDB {
		return nil, false, ErrInvalidParticipants
	}

	participants := [2]string{userIDA, userIDB}
	if participants[1] < participants[0] {
		participants[0], participants[1] = participants[1], participants[0]
	}

	conv := &models.Conversation{
		ID:           uuid.NewString(),
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
	}
	return s.store.FindOrCreateConversation(conv)
}

// ListFor returns the user's conversations in storage order.
func (s *Service) ListFor(userID string) ([]models.Conversation, error) {
	return s.store.GetUserConversations(userID)
}
