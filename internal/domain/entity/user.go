package entity

import "time"

type User struct {
	Phone        string    `json:"phone" firestore:"phone"`
	PasswordHash string    `json:"-" firestore:"password"`
	Role         string    `json:"role" firestore:"role"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}
