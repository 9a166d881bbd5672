package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeline/internal/domain/entity"
	"safeline/pkg/utils"
)

func newAlertFixture() (*AlertUseCase, *fakeConversationRepo, *fakeContactRepo, *fakeProfileRepo) {
	conversationRepo := newFakeConversationRepo()
	contactRepo := newFakeContactRepo()
	profileRepo := newFakeProfileRepo()
	uc := NewAlertUseCase(conversationRepo, contactRepo, profileRepo, nil)
	return uc, conversationRepo, contactRepo, profileRepo
}

func TestSendAlertBroadcastsToExistingAndNewConversations(t *testing.T) {
	uc, conversationRepo, contactRepo, profileRepo := newAlertFixture()
	ctx := context.Background()

	profileRepo.Set(ctx, &entity.Profile{Phone: "+1000", Name: "Aisha"})
	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "A", Phone: "+2000", UserPhone: "+1000"})
	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "B", Phone: "+3000", UserPhone: "+1000"})

	existingID := entity.ConversationIDFor("+1000", "+2000")
	require.NoError(t, conversationRepo.Upsert(ctx, &entity.Conversation{ID: existingID}))

	require.NoError(t, uc.SendAlert(ctx, "+1000", 31.5204, 74.3587))

	locationURL := utils.MapURL(31.5204, 74.3587)

	// Existing conversation gets both bodies appended.
	messages, _, err := conversationRepo.ListMessages(ctx, existingID, 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, HelpText, messages[0].Text)
	assert.Equal(t, locationURL, messages[1].Text)
	assert.Equal(t, "Aisha", messages[0].User.Name)
	assert.Equal(t, "+1000", messages[0].User.Phone)

	existing, err := conversationRepo.GetByID(ctx, existingID)
	require.NoError(t, err)
	assert.Equal(t, locationURL, existing.LastMessage)

	// Uncontacted contact gets a fresh conversation under the derived ID.
	newID := entity.ConversationIDFor("+1000", "+3000")
	created, err := conversationRepo.GetByID(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, []string{"+1000", "+3000"}, created.Participants)
	assert.Equal(t, locationURL, created.LastMessage)

	newMessages, _, err := conversationRepo.ListMessages(ctx, newID, 0, 0)
	require.NoError(t, err)
	require.Len(t, newMessages, 2)
	assert.Equal(t, HelpText, newMessages[0].Text)
	assert.Equal(t, locationURL, newMessages[1].Text)
}

func TestShareLocationSendsOnlyLocationURL(t *testing.T) {
	uc, conversationRepo, contactRepo, _ := newAlertFixture()
	ctx := context.Background()

	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "A", Phone: "+2000", UserPhone: "+1000"})

	require.NoError(t, uc.ShareLocation(ctx, "+1000", 31.5204, 74.3587))

	newID := entity.ConversationIDFor("+1000", "+2000")
	messages, _, err := conversationRepo.ListMessages(ctx, newID, 0, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, utils.MapURL(31.5204, 74.3587), messages[0].Text)
	// No profile configured: sender name falls back.
	assert.Equal(t, "Unknown", messages[0].User.Name)
}

func TestSendAlertWithNoContactsIsANoop(t *testing.T) {
	uc, conversationRepo, _, _ := newAlertFixture()
	ctx := context.Background()

	require.NoError(t, uc.SendAlert(ctx, "+1000", 1, 2))

	conversations, err := conversationRepo.ListByParticipant(ctx, "+1000")
	require.NoError(t, err)
	assert.Empty(t, conversations)
}

func TestSendAlertNeverTargetsSelf(t *testing.T) {
	uc, conversationRepo, contactRepo, _ := newAlertFixture()
	ctx := context.Background()

	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "Me", Phone: "+1000", UserPhone: "+1000"})

	require.NoError(t, uc.SendAlert(ctx, "+1000", 1, 2))

	conversations, err := conversationRepo.ListByParticipant(ctx, "+1000")
	require.NoError(t, err)
	assert.Empty(t, conversations)
}

func TestSendAlertScopesContactsToSender(t *testing.T) {
	uc, conversationRepo, contactRepo, _ := newAlertFixture()
	ctx := context.Background()

	// Contact belongs to a different user and must not be broadcast to.
	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "Other", Phone: "+4000", UserPhone: "+9999"})

	require.NoError(t, uc.SendAlert(ctx, "+1000", 1, 2))

	conversations, err := conversationRepo.ListByParticipant(ctx, "+1000")
	require.NoError(t, err)
	assert.Empty(t, conversations)
}

func TestRepeatedAlertDoesNotDuplicateConversations(t *testing.T) {
	uc, conversationRepo, contactRepo, _ := newAlertFixture()
	ctx := context.Background()

	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "A", Phone: "+2000", UserPhone: "+1000"})

	require.NoError(t, uc.SendAlert(ctx, "+1000", 1, 2))
	require.NoError(t, uc.SendAlert(ctx, "+1000", 1, 2))

	conversations, err := conversationRepo.ListByParticipant(ctx, "+1000")
	require.NoError(t, err)
	require.Len(t, conversations, 1)

	// Conversation identity is stable; messages accumulate.
	id := entity.ConversationIDFor("+1000", "+2000")
	assert.Equal(t, 4, conversationRepo.messageCount(id))
}

func TestDuplicateContactEntriesCollapse(t *testing.T) {
	uc, conversationRepo, contactRepo, _ := newAlertFixture()
	ctx := context.Background()

	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "A", Phone: "+2000", UserPhone: "+1000"})
	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "A again", Phone: "+2000", UserPhone: "+1000"})

	require.NoError(t, uc.ShareLocation(ctx, "+1000", 1, 2))

	id := entity.ConversationIDFor("+1000", "+2000")
	assert.Equal(t, 1, conversationRepo.messageCount(id))
}

func TestSendAlertPropagatesStoreFailure(t *testing.T) {
	uc, conversationRepo, contactRepo, _ := newAlertFixture()
	ctx := context.Background()

	contactRepo.Create(ctx, &entity.EmergencyContact{Name: "A", Phone: "+2000", UserPhone: "+1000"})
	conversationRepo.failWrites = true

	err := uc.SendAlert(ctx, "+1000", 1, 2)
	assert.Error(t, err)
}

func TestPartitionUncontacted(t *testing.T) {
	contacts := []*entity.EmergencyContact{
		{Phone: "+2000"},
		{Phone: "+3000"},
		{Phone: "+1000"}, // the sender
	}
	existing := []*entity.Conversation{
		{ID: entity.ConversationIDFor("+1000", "+2000")},
		{ID: entity.ConversationIDFor("+5000", "+6000")}, // unrelated pair
	}

	uncontacted := partitionUncontacted(contacts, existing, "+1000")
	assert.Equal(t, []string{"+3000"}, uncontacted)
}
