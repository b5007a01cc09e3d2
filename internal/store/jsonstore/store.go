package jsonstore

import (
	"path/filepath"
	"sort"

	"github.com/branchapp/branch/internal/models"
	"github.com/branchapp/branch/internal/store"
	"github.com/rs/zerolog"
)

// JSONStore persists each entity type as an independent JSON array file
// under a single storage root: users.json, conversations.json and
// messages.json. There is no cross-file referential integrity beyond the
// existence checks the services perform.
type JSONStore struct {
	users         *collection[models.User]
	conversations *collection[models.Conversation]
	messages      *collection[models.Message]
	log           zerolog.Logger
}

func New(dir string, logger zerolog.Logger) (*JSONStore, error) {
	s := &JSONStore{
		users:         newCollection[models.User](filepath.Join(dir, "users.json")),
		conversations: newCollection[models.Conversation](filepath.Join(dir, "conversations.json")),
		messages:      newCollection[models.Message](filepath.Join(dir, "messages.json")),
		log:           logger,
	}

	// Fail fast if the storage root cannot be created at all.
	if err := s.users.update(func(r []models.User) ([]models.User, error) { return r, nil }); err != nil {
		return nil, err
	}
	if err := s.conversations.update(func(r []models.Conversation) ([]models.Conversation, error) { return r, nil }); err != nil {
		return nil, err
	}
	if err := s.messages.update(func(r []models.Message) ([]models.Message, error) { return r, nil }); err != nil {
		return nil, err
	}
	return s, nil
}

// allUsers absorbs read failures: an unreadable collection behaves as an
// empty one rather than failing the request.
func (s *JSONStore) allUsers() []models.User {
	users, err := s.users.all()
	if err != nil {
		s.log.Warn().Err(err).Msg("users collection unreadable, treating as empty")
	}
	return users
}

func (s *JSONStore) allConversations() []models.Conversation {
	convs, err := s.conversations.all()
	if err != nil {
		s.log.Warn().Err(err).Msg("conversations collection unreadable, treating as empty")
	}
	return convs
}

func (s *JSONStore) allMessages() []models.Message {
	msgs, err := s.messages.all()
	if err != nil {
		s.log.Warn().Err(err).Msg("messages collection unreadable, treating as empty")
	}
	return msgs
}

func (s *JSONStore) CreateUser(user *models.User) error {
	return s.users.update(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Username == user.Username {
				return nil, store.ErrUsernameTaken
			}
		}
		return append(users, *user), nil
	})
}

func (s *JSONStore) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range s.allUsers() {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *JSONStore) GetUserByID(id string) (*models.User, error) {
	for _, u := range s.allUsers() {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *JSONStore) FindOrCreateConversation(conv *models.Conversation) (*models.Conversation, bool, error) {
	var result models.Conversation
	created := false
	err := s.conversations.update(func(convs []models.Conversation) ([]models.Conversation, error) {
		for _, c := range convs {
			if c.Participants == conv.Participants {
				result = c
				return convs, nil
			}
		}
		result = *conv
		created = true
		return append(convs, *conv), nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, created, nil
}

func (s *JSONStore) GetConversation(id string) (*models.Conversation, error) {
	for _, c := range s.allConversations() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *JSONStore) GetUserConversations(userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	for _, c := range s.allConversations() {
		if c.HasParticipant(userID) {
			convs = append(convs, c)
		}
	}
	return convs, nil
}

func (s *JSONStore) SaveMessage(msg *models.Message) error {
	return s.messages.update(func(msgs []models.Message) ([]models.Message, error) {
		return append(msgs, *msg), nil
	})
}

// GetConversationMessages returns the conversation's messages sorted
// ascending by timestamp. Insertion order is not trusted to be
// chronological once retried requests can land out of order.
func (s *JSONStore) GetConversationMessages(conversationID string) ([]models.Message, error) {
	var msgs []models.Message
	for _, m := range s.allMessages() {
		if m.ConversationID == conversationID {
			msgs = append(msgs, m)
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	return msgs, nil
}
