package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"safeline/internal/domain/entity"
	"safeline/pkg/errors"
)

// In-memory stand-ins for the Firestore repositories.

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	failWrites    bool
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *fakeConversationRepo) Upsert(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errors.Internal("store unavailable", nil)
	}

	existing, ok := r.conversations[conversation.ID]
	if !ok {
		existing = &entity.Conversation{ID: conversation.ID}
		r.conversations[conversation.ID] = existing
	}
	existing.Participants = entity.ParticipantsOf(conversation.ID)
	if conversation.LastMessage != "" {
		existing.LastMessage = conversation.LastMessage
	}
	if !conversation.LastMessageDate.IsZero() {
		existing.LastMessageDate = conversation.LastMessageDate
	}
	return nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (r *fakeConversationRepo) ListByParticipant(ctx context.Context, phone string) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Conversation
	for _, conversation := range r.conversations {
		if entity.HasParticipant(conversation.ID, phone) {
			result = append(result, conversation)
		}
	}
	return result, nil
}

func (r *fakeConversationRepo) AppendMessage(ctx context.Context, conversationID string, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errors.Internal("store unavailable", nil)
	}
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages[conversationID] = append(r.messages[conversationID], message)
	return nil
}

func (r *fakeConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := r.messages[conversationID]
	return messages, int64(len(messages)), nil
}

func (r *fakeConversationRepo) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := r.messages[conversationID]
	for i, message := range messages {
		if message.ID == messageID {
			r.messages[conversationID] = append(messages[:i], messages[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *fakeConversationRepo) DeleteWithMessages(ctx context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, conversationID)
	delete(r.conversations, conversationID)
	return nil
}

func (r *fakeConversationRepo) Rekey(ctx context.Context, oldID, newID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[oldID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	moved := &entity.Conversation{
		ID:              newID,
		Participants:    entity.ParticipantsOf(newID),
		LastMessage:     conversation.LastMessage,
		LastMessageDate: conversation.LastMessageDate,
	}
	r.conversations[newID] = moved
	r.messages[newID] = r.messages[oldID]
	delete(r.conversations, oldID)
	delete(r.messages, oldID)
	return nil
}

func (r *fakeConversationRepo) ListenMessages(ctx context.Context, conversationID string) (<-chan []*entity.Message, error) {
	out := make(chan []*entity.Message, 1)
	r.mu.Lock()
	out <- r.messages[conversationID]
	r.mu.Unlock()
	close(out)
	return out, nil
}

func (r *fakeConversationRepo) ListenByParticipant(ctx context.Context, phone string) (<-chan []*entity.Conversation, error) {
	conversations, _ := r.ListByParticipant(ctx, phone)
	out := make(chan []*entity.Conversation, 1)
	out <- conversations
	close(out)
	return out, nil
}

func (r *fakeConversationRepo) messageCount(conversationID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages[conversationID])
}

type fakeContactRepo struct {
	mu       sync.Mutex
	contacts map[string]*entity.EmergencyContact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[string]*entity.EmergencyContact)}
}

func (r *fakeContactRepo) Create(ctx context.Context, contact *entity.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	r.contacts[contact.ID] = contact
	return nil
}

func (r *fakeContactRepo) GetByID(ctx context.Context, id string) (*entity.EmergencyContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.contacts[id]
	if !ok {
		return nil, errors.NotFound("Emergency contact", nil)
	}
	return contact, nil
}

func (r *fakeContactRepo) ListByOwner(ctx context.Context, userPhone string) ([]*entity.EmergencyContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.EmergencyContact
	for _, contact := range r.contacts {
		if contact.UserPhone == userPhone {
			result = append(result, contact)
		}
	}
	return result, nil
}

func (r *fakeContactRepo) Update(ctx context.Context, contact *entity.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[contact.ID] = contact
	return nil
}

func (r *fakeContactRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contacts, id)
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (r *fakeProfileRepo) GetByPhone(ctx context.Context, phone string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[phone]
	if !ok {
		return nil, errors.NotFound("Profile", nil)
	}
	return profile, nil
}

func (r *fakeProfileRepo) Set(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.Phone] = profile
	return nil
}

func (r *fakeProfileRepo) Delete(ctx context.Context, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, phone)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Phone] = user
	return nil
}

func (r *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[phone]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Phone] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, phone)
	return nil
}
