package store

import (
	"errors"

	"github.com/branchapp/branch/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username taken")
)

type Store interface {
	// User operations
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)

	// Conversation operations
	//
	// FindOrCreateConversation matches on the participant pair, which the
	// caller must have sorted. The returned bool is true when conv was
	// persisted rather than matched against an existing record.
	FindOrCreateConversation(conv *models.Conversation) (*models.Conversation, bool, error)
	GetConversation(id string) (*models.Conversation, error)
	GetUserConversations(userID string) ([]models.Conversation, error)

	// Message operations
	SaveMessage(msg *models.Message) error
	GetConversationMessages(conversationID string) ([]models.Message, error)
}
