package usecase

import (
	"context"
	"log"
	"time"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	ws "safeline/internal/infrastructure/websocket"
	"safeline/pkg/errors"
)

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	profileRepo      repository.ProfileRepository
	wsManager        *ws.Manager
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	profileRepo repository.ProfileRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		profileRepo:      profileRepo,
		wsManager:        wsManager,
	}
}

type SendMessageInput struct {
	RecipientPhone string
	Text           string
}

// SendMessage appends a message to the conversation between sender and
// recipient, creating the conversation implicitly on first contact, and
// updates the denormalized summary.
func (uc *ChatUseCase) SendMessage(ctx context.Context, sender string, input SendMessageInput) (*entity.Message, error) {
	if sender == input.RecipientPhone {
		log.Printf("SendMessage Error: User %s attempted to message themselves", sender)
		return nil, errors.BadRequest("You cannot send a message to yourself", nil)
	}

	senderName, err := uc.senderName(ctx, sender)
	if err != nil {
		return nil, err
	}

	conversationID := entity.ConversationIDFor(sender, input.RecipientPhone)
	message := &entity.Message{
		Text:      input.Text,
		User:      entity.MessageUser{Phone: sender, Name: senderName},
		CreatedAt: time.Now(),
	}

	if err := uc.conversationRepo.AppendMessage(ctx, conversationID, message); err != nil {
		log.Printf("SendMessage Error: Failed to create message in %s: %v", conversationID, err)
		return nil, err
	}

	if err := uc.conversationRepo.Upsert(ctx, &entity.Conversation{
		ID:              conversationID,
		LastMessage:     message.Text,
		LastMessageDate: message.CreatedAt,
	}); err != nil {
		log.Printf("SendMessage Error: Failed to update conversation %s: %v", conversationID, err)
		return nil, err
	}

	if uc.wsManager != nil {
		uc.wsManager.SendToUser(input.RecipientPhone, ws.Event{
			Type: "message:new",
			Payload: map[string]interface{}{
				"conversation_id": conversationID,
				"message":         message,
			},
		})
	}

	return message, nil
}

// ListConversations returns every thread the user participates in.
func (uc *ChatUseCase) ListConversations(ctx context.Context, phone string) ([]*entity.Conversation, error) {
	return uc.conversationRepo.ListByParticipant(ctx, phone)
}

// GetMessages returns a conversation's messages newest first.
func (uc *ChatUseCase) GetMessages(ctx context.Context, phone, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	if !entity.HasParticipant(conversationID, phone) {
		return nil, 0, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

// DeleteConversation removes the thread and every message in it, messages
// first, then the conversation document.
func (uc *ChatUseCase) DeleteConversation(ctx context.Context, phone, conversationID string) error {
	if !entity.HasParticipant(conversationID, phone) {
		return errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.conversationRepo.DeleteWithMessages(ctx, conversationID)
}

func (uc *ChatUseCase) DeleteMessage(ctx context.Context, phone, conversationID, messageID string) error {
	if !entity.HasParticipant(conversationID, phone) {
		return errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.conversationRepo.DeleteMessage(ctx, conversationID, messageID)
}

// ListenMessages opens a live feed of the conversation's messages. The feed
// stops when ctx is cancelled; callers own the cancellation.
func (uc *ChatUseCase) ListenMessages(ctx context.Context, phone, conversationID string) (<-chan []*entity.Message, error) {
	if !entity.HasParticipant(conversationID, phone) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return uc.conversationRepo.ListenMessages(ctx, conversationID)
}

// ListenConversations opens a live feed of the user's conversation list.
func (uc *ChatUseCase) ListenConversations(ctx context.Context, phone string) (<-chan []*entity.Conversation, error) {
	return uc.conversationRepo.ListenByParticipant(ctx, phone)
}

func (uc *ChatUseCase) senderName(ctx context.Context, sender string) (string, error) {
	profile, err := uc.profileRepo.GetByPhone(ctx, sender)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return "Unknown", nil
		}
		return "", err
	}
	if profile.Name == "" {
		return "Unknown", nil
	}
	return profile.Name, nil
}
