package domain

// Category is a simple reference entity managed alongside users and roles.
// Name is required; nothing in the security core depends on it.
type Category struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}
