package domain

// User identity supplied by the identity provider
type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar string  `json:"avatar"`
	Phone  *string `json:"phone,omitempty"`
}
