package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationIDForIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationIDFor("+1000", "+2000"), ConversationIDFor("+2000", "+1000"))
	assert.Equal(t, "+1000_+2000", ConversationIDFor("+2000", "+1000"))
}

func TestConversationIDForIsStable(t *testing.T) {
	first := ConversationIDFor("+923001234567", "+923007654321")
	second := ConversationIDFor("+923001234567", "+923007654321")
	assert.Equal(t, first, second)
}

func TestParticipantsOfRoundTripsTheID(t *testing.T) {
	id := ConversationIDFor("+2000", "+1000")
	assert.Equal(t, []string{"+1000", "+2000"}, ParticipantsOf(id))
}

func TestHasParticipant(t *testing.T) {
	id := ConversationIDFor("+1000", "+2000")
	assert.True(t, HasParticipant(id, "+1000"))
	assert.True(t, HasParticipant(id, "+2000"))
	assert.False(t, HasParticipant(id, "+3000"))
	// A phone that is a prefix of a participant does not match.
	assert.False(t, HasParticipant(id, "+100"))
}

func TestOtherParticipant(t *testing.T) {
	c := &Conversation{ID: ConversationIDFor("+1000", "+2000")}
	assert.Equal(t, "+2000", c.OtherParticipant("+1000"))
	assert.Equal(t, "+1000", c.OtherParticipant("+2000"))
	assert.Equal(t, "+1000", c.OtherParticipant("+9999"))
}
