package entity

// Resource is a directory entry for a safety service (police station,
// shelter, helpline) in a given city.
type Resource struct {
	ID     string `json:"id" firestore:"-"`
	City   string `json:"city" firestore:"city"`
	Type   string `json:"type" firestore:"type"`
	Name   string `json:"name" firestore:"name"`
	Number string `json:"number" firestore:"number"`
}
