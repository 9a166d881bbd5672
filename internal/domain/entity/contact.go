package entity

// EmergencyContact is a person a user wants notified in an emergency.
// UserPhone scopes visibility: every read must filter on it.
type EmergencyContact struct {
	ID        string `json:"id" firestore:"-"`
	Name      string `json:"name" firestore:"name"`
	Phone     string `json:"phone" firestore:"phone"`
	UserPhone string `json:"user_phone" firestore:"userPhone"`
}
