package repository

import (
	"context"

	"safeline/internal/domain/entity"
)

// ConversationRepository persists two-party threads and their message
// subcollections. The same interface backs the regular chat collection and
// the support channel collection.
type ConversationRepository interface {
	// Upsert merge-sets the conversation summary document. Fields not set on
	// the entity are preserved; participants are always rewritten from the ID.
	Upsert(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByParticipant(ctx context.Context, phone string) ([]*entity.Conversation, error)

	AppendMessage(ctx context.Context, conversationID string, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	DeleteMessage(ctx context.Context, conversationID, messageID string) error

	// DeleteWithMessages removes every message first, then the conversation
	// document itself.
	DeleteWithMessages(ctx context.Context, conversationID string) error

	// Rekey moves a conversation and all of its messages under a new derived
	// ID, deleting the old documents.
	Rekey(ctx context.Context, oldID, newID string) error

	// ListenMessages streams the full newest-first message list on every
	// change until ctx is cancelled. The returned channel is closed when the
	// listener stops.
	ListenMessages(ctx context.Context, conversationID string) (<-chan []*entity.Message, error)

	// ListenByParticipant streams the participant's conversation list on
	// every change until ctx is cancelled.
	ListenByParticipant(ctx context.Context, phone string) (<-chan []*entity.Conversation, error)
}
