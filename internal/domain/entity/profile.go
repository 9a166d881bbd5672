package entity

// Profile holds the personal details a user submits once and replaces
// wholesale on every edit. It is keyed by the user's phone number.
type Profile struct {
	Phone    string `json:"phone" firestore:"-"`
	Name     string `json:"name" firestore:"name"`
	CNIC     string `json:"cnic" firestore:"cnic"`
	Email    string `json:"email" firestore:"email"`
	District string `json:"district" firestore:"district"`
	Gender   string `json:"gender" firestore:"gender"`
	Age      string `json:"age" firestore:"age"`
	Address  string `json:"address" firestore:"address"`
}
