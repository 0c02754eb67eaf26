package model

// UserID identifies one of the two fixed users. No other identities exist;
// users are renamed, never created or destroyed.
type UserID string

const (
	User1 UserID = "user1"
	User2 UserID = "user2"
)

// Valid reports whether id names one of the two fixed users.
func (id UserID) Valid() bool {
	return id == User1 || id == User2
}

// Other returns the opposite user.
func (id UserID) Other() UserID {
	if id == User1 {
		return User2
	}
	return User1
}

type User struct {
	ID   UserID `json:"id"`
	Name string `json:"name"`
}

// DefaultUsers seeds the fixed pair on first read.
func DefaultUsers() []User {
	return []User{
		{ID: User1, Name: "User 1"},
		{ID: User2, Name: "User 2"},
	}
}
