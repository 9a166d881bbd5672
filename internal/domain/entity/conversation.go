package entity

import (
	"sort"
	"strings"
	"time"
)

// Conversation is a two-party thread. Its document ID is the sorted join of
// the two participant phone numbers, and the Participants field is derived
// from the ID on every write; the ID is the source of truth.
type Conversation struct {
	ID              string    `json:"id" firestore:"-"`
	Participants    []string  `json:"participants" firestore:"participants"`
	LastMessage     string    `json:"last_message" firestore:"lastMessage"`
	LastMessageDate time.Time `json:"last_message_date" firestore:"lastMessageDate"`
}

// ConversationIDFor derives the canonical conversation ID for a pair of
// participants: lexicographic sort, joined with "_". Every caller that
// creates or looks up a conversation must go through this function.
func ConversationIDFor(a, b string) string {
	participants := []string{a, b}
	sort.Strings(participants)
	return strings.Join(participants, "_")
}

// ParticipantsOf recovers the participant pair encoded in a conversation ID.
func ParticipantsOf(conversationID string) []string {
	return strings.Split(conversationID, "_")
}

// HasParticipant reports whether the conversation ID encodes the given phone.
func HasParticipant(conversationID, phone string) bool {
	for _, p := range ParticipantsOf(conversationID) {
		if p == phone {
			return true
		}
	}
	return false
}

// OtherParticipant returns the first participant that is not the given phone.
func (c *Conversation) OtherParticipant(phone string) string {
	for _, p := range ParticipantsOf(c.ID) {
		if p != phone {
			return p
		}
	}
	return ""
}
