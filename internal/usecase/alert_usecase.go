package usecase

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	ws "safeline/internal/infrastructure/websocket"
	"safeline/pkg/errors"
	"safeline/pkg/utils"
)

// HelpText is the fixed first message of an emergency alert.
const HelpText = "Help Needed, I am in danger. Here is My Current Location"

// AlertUseCase fans an emergency broadcast out to every emergency contact of
// the sender. Contacts with an existing conversation get the message appended
// there; contacts without one get a conversation created for them. Delivery
// is best effort: the first failed write aborts the remaining fan-out and
// nothing already written is rolled back.
type AlertUseCase struct {
	conversationRepo repository.ConversationRepository
	contactRepo      repository.ContactRepository
	profileRepo      repository.ProfileRepository
	wsManager        *ws.Manager
}

func NewAlertUseCase(
	conversationRepo repository.ConversationRepository,
	contactRepo repository.ContactRepository,
	profileRepo repository.ProfileRepository,
	wsManager *ws.Manager,
) *AlertUseCase {
	return &AlertUseCase{
		conversationRepo: conversationRepo,
		contactRepo:      contactRepo,
		profileRepo:      profileRepo,
		wsManager:        wsManager,
	}
}

// broadcastPlan is the result of one reconciliation pass: the sender's
// existing threads and the contacts that have none yet.
type broadcastPlan struct {
	sender      string
	senderName  string
	existing    []*entity.Conversation
	uncontacted []string
}

// SendAlert broadcasts the fixed help text followed by a location link to
// every emergency contact of the sender.
func (uc *AlertUseCase) SendAlert(ctx context.Context, sender string, latitude, longitude float64) error {
	plan, err := uc.reconcile(ctx, sender)
	if err != nil {
		return err
	}

	locationURL := utils.MapURL(latitude, longitude)
	for _, body := range []string{HelpText, locationURL} {
		if err := uc.broadcast(ctx, plan, body); err != nil {
			return err
		}
	}

	uc.notifyRecipients(plan, locationURL)

	log.Printf("Alert from %s delivered to %d existing and %d new conversations",
		sender, len(plan.existing), len(plan.uncontacted))
	return nil
}

// ShareLocation broadcasts only the location link.
func (uc *AlertUseCase) ShareLocation(ctx context.Context, sender string, latitude, longitude float64) error {
	plan, err := uc.reconcile(ctx, sender)
	if err != nil {
		return err
	}

	locationURL := utils.MapURL(latitude, longitude)
	if err := uc.broadcast(ctx, plan, locationURL); err != nil {
		return err
	}

	uc.notifyRecipients(plan, locationURL)

	log.Printf("Location from %s shared to %d existing and %d new conversations",
		sender, len(plan.existing), len(plan.uncontacted))
	return nil
}

// reconcile resolves the sender's display name, loads their conversations and
// emergency contacts, and partitions the contacts into those already covered
// by an existing conversation and those that need one created.
func (uc *AlertUseCase) reconcile(ctx context.Context, sender string) (*broadcastPlan, error) {
	senderName, err := uc.resolveSenderName(ctx, sender)
	if err != nil {
		return nil, err
	}

	existing, err := uc.conversationRepo.ListByParticipant(ctx, sender)
	if err != nil {
		log.Printf("reconcile Error: Failed to list conversations for %s: %v", sender, err)
		return nil, err
	}

	contacts, err := uc.contactRepo.ListByOwner(ctx, sender)
	if err != nil {
		log.Printf("reconcile Error: Failed to list emergency contacts for %s: %v", sender, err)
		return nil, err
	}

	return &broadcastPlan{
		sender:      sender,
		senderName:  senderName,
		existing:    existing,
		uncontacted: partitionUncontacted(contacts, existing, sender),
	}, nil
}

// partitionUncontacted returns the contact phones that appear in no existing
// conversation with the sender. A contact equal to the sender is never a
// broadcast target and is dropped before partitioning; duplicate contact
// entries collapse to one.
func partitionUncontacted(contacts []*entity.EmergencyContact, existing []*entity.Conversation, sender string) []string {
	seen := make(map[string]bool)

	var uncontacted []string
	for _, contact := range contacts {
		if contact.Phone == sender || seen[contact.Phone] {
			continue
		}
		seen[contact.Phone] = true

		contacted := false
		for _, conversation := range existing {
			if entity.HasParticipant(conversation.ID, contact.Phone) && entity.HasParticipant(conversation.ID, sender) {
				contacted = true
				break
			}
		}
		if !contacted {
			uncontacted = append(uncontacted, contact.Phone)
		}
	}

	return uncontacted
}

// broadcast delivers one message body to every existing conversation and to a
// fresh conversation per uncontacted contact. Each target gets a write pair
// (message append, then summary upsert); the pairs fan out concurrently and
// are awaited together before returning.
func (uc *AlertUseCase) broadcast(ctx context.Context, plan *broadcastPlan, body string) error {
	now := time.Now()

	if err := uc.broadcastToExisting(ctx, plan, body, now); err != nil {
		return err
	}
	return uc.broadcastToNew(ctx, plan, body, now)
}

func (uc *AlertUseCase) broadcastToExisting(ctx context.Context, plan *broadcastPlan, body string, timestamp time.Time) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, conversation := range plan.existing {
		conversation := conversation
		g.Go(func() error {
			return uc.deliver(ctx, conversation.ID, plan, body, timestamp)
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("broadcastToExisting Error: %v", err)
		return errors.Internal("Failed to broadcast to existing conversations", err)
	}
	return nil
}

func (uc *AlertUseCase) broadcastToNew(ctx context.Context, plan *broadcastPlan, body string, timestamp time.Time) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, contact := range plan.uncontacted {
		conversationID := entity.ConversationIDFor(plan.sender, contact)
		g.Go(func() error {
			// Conversation document first, then the message. A crash in
			// between leaves an empty conversation, which is a valid state.
			if err := uc.conversationRepo.Upsert(ctx, &entity.Conversation{
				ID:              conversationID,
				LastMessage:     body,
				LastMessageDate: timestamp,
			}); err != nil {
				return err
			}
			return uc.conversationRepo.AppendMessage(ctx, conversationID, &entity.Message{
				Text:      body,
				User:      entity.MessageUser{Phone: plan.sender, Name: plan.senderName},
				CreatedAt: timestamp,
			})
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("broadcastToNew Error: %v", err)
		return errors.Internal("Failed to broadcast to new conversations", err)
	}
	return nil
}

// deliver appends the message and then upserts the conversation summary. The
// summary is a denormalized cache of the newest message; a reader can observe
// it stale between the two writes.
func (uc *AlertUseCase) deliver(ctx context.Context, conversationID string, plan *broadcastPlan, body string, timestamp time.Time) error {
	if err := uc.conversationRepo.AppendMessage(ctx, conversationID, &entity.Message{
		Text:      body,
		User:      entity.MessageUser{Phone: plan.sender, Name: plan.senderName},
		CreatedAt: timestamp,
	}); err != nil {
		return err
	}

	return uc.conversationRepo.Upsert(ctx, &entity.Conversation{
		ID:              conversationID,
		LastMessage:     body,
		LastMessageDate: timestamp,
	})
}

func (uc *AlertUseCase) resolveSenderName(ctx context.Context, sender string) (string, error) {
	profile, err := uc.profileRepo.GetByPhone(ctx, sender)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return "Unknown", nil
		}
		log.Printf("resolveSenderName Error: Failed to get profile for %s: %v", sender, err)
		return "", err
	}
	if profile.Name == "" {
		return "Unknown", nil
	}
	return profile.Name, nil
}

// notifyRecipients pushes a best-effort event to every connected recipient.
func (uc *AlertUseCase) notifyRecipients(plan *broadcastPlan, locationURL string) {
	if uc.wsManager == nil {
		return
	}

	recipients := make(map[string]bool)
	for _, conversation := range plan.existing {
		if other := conversation.OtherParticipant(plan.sender); other != "" {
			recipients[other] = true
		}
	}
	for _, contact := range plan.uncontacted {
		recipients[contact] = true
	}

	for phone := range recipients {
		uc.wsManager.SendToUser(phone, ws.Event{
			Type: "alert",
			Payload: map[string]interface{}{
				"from":     plan.sender,
				"name":     plan.senderName,
				"location": locationURL,
			},
		})
	}
}
