package entity

import "time"

type Message struct {
	ID        string      `json:"_id" firestore:"_id"`
	Text      string      `json:"text" firestore:"text"`
	User      MessageUser `json:"user" firestore:"user"`
	CreatedAt time.Time   `json:"createdAt" firestore:"createdAt"`
}

// MessageUser identifies the sender as stored on each message document.
type MessageUser struct {
	Phone string `json:"_id" firestore:"_id"`
	Name  string `json:"name" firestore:"name"`
}
