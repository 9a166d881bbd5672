package usecase

import (
	"context"
	"log"
	"time"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	"safeline/pkg/errors"
)

// SupportUseCase is the customer-support channel: one thread per user against
// a fixed support line, stored in its own collection with the same shape as
// regular conversations.
type SupportUseCase struct {
	supportRepo repository.ConversationRepository
	profileRepo repository.ProfileRepository
	supportLine string
}

func NewSupportUseCase(
	supportRepo repository.ConversationRepository,
	profileRepo repository.ProfileRepository,
	supportLine string,
) *SupportUseCase {
	return &SupportUseCase{
		supportRepo: supportRepo,
		profileRepo: profileRepo,
		supportLine: supportLine,
	}
}

func (uc *SupportUseCase) threadID(phone string) string {
	return entity.ConversationIDFor(phone, uc.supportLine)
}

func (uc *SupportUseCase) SendMessage(ctx context.Context, sender, text string) (*entity.Message, error) {
	senderName := "Unknown"
	if profile, err := uc.profileRepo.GetByPhone(ctx, sender); err == nil && profile.Name != "" {
		senderName = profile.Name
	}

	conversationID := uc.threadID(sender)
	message := &entity.Message{
		Text:      text,
		User:      entity.MessageUser{Phone: sender, Name: senderName},
		CreatedAt: time.Now(),
	}

	if err := uc.supportRepo.AppendMessage(ctx, conversationID, message); err != nil {
		log.Printf("Support SendMessage Error: Failed to create message in %s: %v", conversationID, err)
		return nil, err
	}

	if err := uc.supportRepo.Upsert(ctx, &entity.Conversation{
		ID:              conversationID,
		LastMessage:     message.Text,
		LastMessageDate: message.CreatedAt,
	}); err != nil {
		log.Printf("Support SendMessage Error: Failed to update thread %s: %v", conversationID, err)
		return nil, err
	}

	return message, nil
}

func (uc *SupportUseCase) GetMessages(ctx context.Context, phone string, limit, offset int) ([]*entity.Message, int64, error) {
	return uc.supportRepo.ListMessages(ctx, uc.threadID(phone), limit, offset)
}

func (uc *SupportUseCase) DeleteThread(ctx context.Context, phone string) error {
	return uc.supportRepo.DeleteWithMessages(ctx, uc.threadID(phone))
}

func (uc *SupportUseCase) DeleteMessage(ctx context.Context, phone, messageID string) error {
	if messageID == "" {
		return errors.BadRequest("Message id is required", nil)
	}
	return uc.supportRepo.DeleteMessage(ctx, uc.threadID(phone), messageID)
}

// ListenMessages opens a live feed of the user's support thread.
func (uc *SupportUseCase) ListenMessages(ctx context.Context, phone string) (<-chan []*entity.Message, error) {
	return uc.supportRepo.ListenMessages(ctx, uc.threadID(phone))
}
